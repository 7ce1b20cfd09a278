package handlers

import (
	"time"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/search"
)

// LocalizedText carries the text resolved for the request language next to
// every stored translation.
type LocalizedText struct {
	Text         string                 `json:"text"`
	Translations entity.LocalizedString `json:"translations"`
}

// resolver binds the negotiated language and the fallback for one request.
type resolver struct {
	lang     string
	fallback string
}

func (r resolver) text(s entity.LocalizedString) LocalizedText {
	return LocalizedText{Text: s.Resolve(r.lang, r.fallback), Translations: s}
}

func (r resolver) textPtr(s *entity.LocalizedString) *LocalizedText {
	if s == nil {
		return nil
	}
	t := r.text(*s)
	return &t
}

type SkillView struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Slug         *string        `json:"slug"`
	Icon         *string        `json:"icon"`
	Description  *LocalizedText `json:"description"`
	Type         string         `json:"type"`
	Featured     bool           `json:"featured"`
	DisplayOrder int            `json:"display_order"`
	CreatedAt    *time.Time     `json:"created_at,omitempty"`
}

func (r resolver) skill(s entity.Skill) SkillView {
	return SkillView{
		ID:           s.ID,
		Name:         s.Name,
		Slug:         s.Slug,
		Icon:         s.Icon,
		Description:  r.textPtr(s.Description),
		Type:         string(s.Type),
		Featured:     s.Featured,
		DisplayOrder: s.DisplayOrder,
		CreatedAt:    s.CreatedAt,
	}
}

func (r resolver) skills(in []entity.Skill) []SkillView {
	out := make([]SkillView, len(in))
	for i, s := range in {
		out[i] = r.skill(s)
	}
	return out
}

type ProjectView struct {
	ID           string        `json:"id"`
	Slug         string        `json:"slug"`
	Title        LocalizedText `json:"title"`
	Description  LocalizedText `json:"description"`
	Content      LocalizedText `json:"content"`
	CoverImage   *string       `json:"cover_image"`
	Gallery      []string      `json:"gallery"`
	DemoURL      *string       `json:"demo_url"`
	RepoURL      *string       `json:"repo_url"`
	DisplayOrder int           `json:"display_order"`
	Published    bool          `json:"published"`
	Technologies []SkillView   `json:"technologies"`
	CreatedAt    *time.Time    `json:"created_at,omitempty"`
	UpdatedAt    *time.Time    `json:"updated_at,omitempty"`
}

func (r resolver) project(p entity.Project) ProjectView {
	gallery := p.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return ProjectView{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        r.text(p.Title),
		Description:  r.text(p.Description),
		Content:      r.text(p.Content),
		CoverImage:   p.CoverImage,
		Gallery:      gallery,
		DemoURL:      p.DemoURL,
		RepoURL:      p.RepoURL,
		DisplayOrder: p.DisplayOrder,
		Published:    p.Published,
		Technologies: r.skills(p.Technologies),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r resolver) projects(in []entity.Project) []ProjectView {
	out := make([]ProjectView, len(in))
	for i, p := range in {
		out[i] = r.project(p)
	}
	return out
}

// ProjectHitView is a search result; it carries no project body.
type ProjectHitView struct {
	ID           string        `json:"id"`
	Slug         string        `json:"slug"`
	Title        LocalizedText `json:"title"`
	Description  LocalizedText `json:"description"`
	Technologies []string      `json:"technologies"`
	CoverImage   *string       `json:"cover_image"`
}

func (r resolver) hits(in []search.ProjectDocument) []ProjectHitView {
	out := make([]ProjectHitView, len(in))
	for i, d := range in {
		techs := d.Technologies
		if techs == nil {
			techs = []string{}
		}
		out[i] = ProjectHitView{
			ID:           d.ID,
			Slug:         d.Slug,
			Title:        r.text(d.Title),
			Description:  r.text(d.Description),
			Technologies: techs,
			CoverImage:   d.CoverImage,
		}
	}
	return out
}

type HobbyView struct {
	ID           string        `json:"id"`
	Slug         *string       `json:"slug"`
	Name         LocalizedText `json:"name"`
	Description  LocalizedText `json:"description"`
	Content      LocalizedText `json:"content"`
	Icon         *string       `json:"icon"`
	CoverImage   *string       `json:"cover_image"`
	Gallery      []string      `json:"gallery"`
	DisplayOrder int           `json:"display_order"`
}

func (r resolver) hobby(h entity.Hobby) HobbyView {
	gallery := h.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return HobbyView{
		ID:           h.ID,
		Slug:         h.Slug,
		Name:         r.text(h.Name),
		Description:  r.text(h.Description),
		Content:      r.text(h.Content),
		Icon:         h.Icon,
		CoverImage:   h.CoverImage,
		Gallery:      gallery,
		DisplayOrder: h.DisplayOrder,
	}
}

func (r resolver) hobbies(in []entity.Hobby) []HobbyView {
	out := make([]HobbyView, len(in))
	for i, h := range in {
		out[i] = r.hobby(h)
	}
	return out
}

type CourseView struct {
	ID             string         `json:"id"`
	Slug           *string        `json:"slug"`
	Name           LocalizedText  `json:"name"`
	Institution    LocalizedText  `json:"institution"`
	Description    *LocalizedText `json:"description"`
	CertificateURL *string        `json:"certificate_url"`
	CompletionDate *string        `json:"completion_date"`
	DisplayOrder   int            `json:"display_order"`
}

func (r resolver) course(c entity.Course) CourseView {
	var done *string
	if c.CompletionDate != nil {
		d := c.CompletionDate.Format("2006-01-02")
		done = &d
	}
	return CourseView{
		ID:             c.ID,
		Slug:           c.Slug,
		Name:           r.text(c.Name),
		Institution:    r.text(c.Institution),
		Description:    r.textPtr(c.Description),
		CertificateURL: c.CertificateURL,
		CompletionDate: done,
		DisplayOrder:   c.DisplayOrder,
	}
}

func (r resolver) courses(in []entity.Course) []CourseView {
	out := make([]CourseView, len(in))
	for i, c := range in {
		out[i] = r.course(c)
	}
	return out
}

type ProfileView struct {
	ID           string        `json:"id"`
	FullName     string        `json:"full_name"`
	Headline     LocalizedText `json:"headline"`
	Bio          LocalizedText `json:"bio"`
	AvatarURL    *string       `json:"avatar_url"`
	CVURL        *string       `json:"cv_url"`
	CVURLEs      *string       `json:"cv_url_es"`
	CVURLEn      *string       `json:"cv_url_en"`
	GithubURL    *string       `json:"github_url"`
	LinkedinURL  *string       `json:"linkedin_url"`
	TwitterURL   *string       `json:"twitter_url"`
	InstagramURL *string       `json:"instagram_url"`
	UpdatedAt    *time.Time    `json:"updated_at,omitempty"`
}

func (r resolver) profile(p entity.Profile) ProfileView {
	// cv_url follows the request language, else whichever exists
	cv, other := p.CVURLEs, p.CVURLEn
	if r.lang == "en" {
		cv, other = p.CVURLEn, p.CVURLEs
	}
	if cv == nil {
		cv = other
	}
	return ProfileView{
		ID:           p.ID,
		FullName:     p.FullName,
		Headline:     r.text(p.Headline),
		Bio:          r.text(p.Bio),
		AvatarURL:    p.AvatarURL,
		CVURL:        cv,
		CVURLEs:      p.CVURLEs,
		CVURLEn:      p.CVURLEn,
		GithubURL:    p.GithubURL,
		LinkedinURL:  p.LinkedinURL,
		TwitterURL:   p.TwitterURL,
		InstagramURL: p.InstagramURL,
		UpdatedAt:    p.UpdatedAt,
	}
}

type MessageView struct {
	ID        string     `json:"id"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	Content   string     `json:"content"`
	Read      bool       `json:"read"`
	CreatedAt *time.Time `json:"created_at"`
}

func messageViews(in []entity.Message) []MessageView {
	out := make([]MessageView, len(in))
	for i, m := range in {
		out[i] = MessageView{ID: m.ID, FullName: m.FullName, Email: m.Email, Content: m.Content, Read: m.Read, CreatedAt: m.CreatedAt}
	}
	return out
}
