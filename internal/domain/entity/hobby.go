package entity

import "time"

type Hobby struct {
	ID           string
	Slug         *string
	Name         LocalizedString
	Description  LocalizedString
	Content      LocalizedString
	Icon         *string
	CoverImage   *string
	Gallery      []string
	DisplayOrder int
	CreatedAt    *time.Time
}

type HobbyInput struct {
	Slug         *string
	Name         LocalizedString
	Description  LocalizedString
	Content      LocalizedString
	Icon         *string
	CoverImage   *string
	Gallery      []string
	DisplayOrder int
}
