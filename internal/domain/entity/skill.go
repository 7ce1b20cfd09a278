package entity

import "time"

type SkillType string

const (
	SkillFrontend SkillType = "frontend"
	SkillBackend  SkillType = "backend"
	SkillTool     SkillType = "tool"
	SkillOther    SkillType = "other"
)

// ParseSkillType maps unknown or empty tags to SkillOther.
func ParseSkillType(s string) SkillType {
	switch SkillType(s) {
	case SkillFrontend, SkillBackend, SkillTool:
		return SkillType(s)
	default:
		return SkillOther
	}
}

type Skill struct {
	ID           string
	Name         string
	Slug         *string
	Icon         *string
	Description  *LocalizedString
	Type         SkillType
	Featured     bool
	DisplayOrder int
	CreatedAt    *time.Time
}

// SkillInput is the admin form for a skill. Slug is only honored on create.
type SkillInput struct {
	Name         string
	Slug         *string
	Icon         *string
	Description  *LocalizedString
	Type         SkillType
	Featured     bool
	DisplayOrder int
}
