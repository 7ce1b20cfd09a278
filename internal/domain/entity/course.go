package entity

import "time"

type Course struct {
	ID             string
	Slug           *string
	Name           LocalizedString
	Institution    LocalizedString
	Description    *LocalizedString
	CertificateURL *string
	CompletionDate *time.Time
	DisplayOrder   int
	CreatedAt      *time.Time
}

type CourseInput struct {
	Slug           *string
	Name           LocalizedString
	Institution    LocalizedString
	Description    *LocalizedString
	CertificateURL *string
	CompletionDate *time.Time
	DisplayOrder   int
}
