package entity

import "time"

// Profile is the site owner's singleton record.
type Profile struct {
	ID           string
	FullName     string
	Headline     LocalizedString
	Bio          LocalizedString
	AvatarURL    *string
	CVURLEs      *string
	CVURLEn      *string
	GithubURL    *string
	LinkedinURL  *string
	TwitterURL   *string
	InstagramURL *string
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
}

// ProfilePatch carries only the fields a caller wants to change; nil means untouched.
type ProfilePatch struct {
	FullName     *string
	Headline     *LocalizedString
	Bio          *LocalizedString
	AvatarURL    *string
	CVURLEs      *string
	CVURLEn      *string
	GithubURL    *string
	LinkedinURL  *string
	TwitterURL   *string
	InstagramURL *string
}

// IsEmpty reports whether the patch touches nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.FullName == nil && p.Headline == nil && p.Bio == nil && p.AvatarURL == nil &&
		p.CVURLEs == nil && p.CVURLEn == nil && p.GithubURL == nil && p.LinkedinURL == nil &&
		p.TwitterURL == nil && p.InstagramURL == nil
}
