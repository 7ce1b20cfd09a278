package entity

import "time"

// Project is a portfolio entry. ID and Slug never change after creation.
type Project struct {
	ID           string
	Slug         string
	Title        LocalizedString
	Description  LocalizedString
	Content      LocalizedString
	CoverImage   *string
	Gallery      []string
	DemoURL      *string
	RepoURL      *string
	DisplayOrder int
	Published    bool
	Technologies []Skill
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
}

// ProjectInput is the admin form for creating or updating a project.
// Slug is only honored on create.
type ProjectInput struct {
	Slug         string
	Title        LocalizedString
	Description  LocalizedString
	Content      LocalizedString
	CoverImage   *string
	Gallery      []string
	DemoURL      *string
	RepoURL      *string
	DisplayOrder int
	Published    bool
	SkillIDs     []string
}

// ProjectSkill is one row of the project/skill association.
type ProjectSkill struct {
	ProjectID string
	SkillID   string
}
