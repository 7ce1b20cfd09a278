// Package mapper converts between persisted records and domain entities.
// Every function here is pure and tolerates missing optional data.
package mapper

import (
	"time"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/pkg/helpers"
)

func localized(p *entity.LocalizedString) entity.LocalizedString {
	if p == nil {
		return entity.LocalizedString{}
	}
	return *p
}

func optLocalized(p *entity.LocalizedString) *entity.LocalizedString {
	if p == nil || p.Len() == 0 {
		return nil
	}
	c := p.Clone()
	return &c
}

func stringList(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// localizedValue keeps SQL NULL for absent optional translations.
func localizedValue(p *entity.LocalizedString) any {
	if p == nil {
		return nil
	}
	return *p
}

func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func ProjectToDomain(r ProjectRecord) entity.Project {
	p := entity.Project{
		ID:           r.ID,
		Slug:         r.Slug,
		Title:        localized(r.Title),
		Description:  localized(r.Description),
		Content:      localized(r.Content),
		CoverImage:   r.CoverImage,
		Gallery:      stringList(r.Gallery),
		DemoURL:      r.DemoURL,
		RepoURL:      r.RepoURL,
		DisplayOrder: intOr(r.DisplayOrder, 0),
		Published:    boolOr(r.Published, false),
		Technologies: make([]entity.Skill, 0, len(r.ProjectSkills)),
		CreatedAt:    helpers.ParseTimePtr(r.CreatedAt),
		UpdatedAt:    helpers.ParseTimePtr(r.UpdatedAt),
	}
	for _, ps := range r.ProjectSkills {
		if ps.Skills == nil {
			continue
		}
		p.Technologies = append(p.Technologies, SkillToDomain(*ps.Skills))
	}
	return p
}

func ProjectsToDomain(rs []ProjectRecord) []entity.Project {
	out := make([]entity.Project, 0, len(rs))
	for _, r := range rs {
		out = append(out, ProjectToDomain(r))
	}
	return out
}

func SkillToDomain(r SkillRecord) entity.Skill {
	return entity.Skill{
		ID:           r.ID,
		Name:         r.Name,
		Slug:         r.Slug,
		Icon:         r.Icon,
		Description:  optLocalized(r.Description),
		Type:         entity.ParseSkillType(strOr(r.Type, "")),
		Featured:     boolOr(r.Featured, false),
		DisplayOrder: intOr(r.DisplayOrder, 0),
		CreatedAt:    helpers.ParseTimePtr(r.CreatedAt),
	}
}

func SkillsToDomain(rs []SkillRecord) []entity.Skill {
	out := make([]entity.Skill, 0, len(rs))
	for _, r := range rs {
		out = append(out, SkillToDomain(r))
	}
	return out
}

func HobbyToDomain(r HobbyRecord) entity.Hobby {
	return entity.Hobby{
		ID:           r.ID,
		Slug:         r.Slug,
		Name:         localized(r.Name),
		Description:  localized(r.Description),
		Content:      localized(r.Content),
		Icon:         r.Icon,
		CoverImage:   r.CoverImage,
		Gallery:      stringList(r.Gallery),
		DisplayOrder: intOr(r.DisplayOrder, 0),
		CreatedAt:    helpers.ParseTimePtr(r.CreatedAt),
	}
}

func HobbiesToDomain(rs []HobbyRecord) []entity.Hobby {
	out := make([]entity.Hobby, 0, len(rs))
	for _, r := range rs {
		out = append(out, HobbyToDomain(r))
	}
	return out
}

func CourseToDomain(r CourseRecord) entity.Course {
	return entity.Course{
		ID:             r.ID,
		Slug:           r.Slug,
		Name:           localized(r.Name),
		Institution:    localized(r.Institution),
		Description:    optLocalized(r.Description),
		CertificateURL: r.CertificateURL,
		CompletionDate: helpers.ParseTimePtr(r.CompletionDate),
		DisplayOrder:   intOr(r.DisplayOrder, 0),
		CreatedAt:      helpers.ParseTimePtr(r.CreatedAt),
	}
}

func CoursesToDomain(rs []CourseRecord) []entity.Course {
	out := make([]entity.Course, 0, len(rs))
	for _, r := range rs {
		out = append(out, CourseToDomain(r))
	}
	return out
}

func ProfileToDomain(r ProfileRecord) entity.Profile {
	return entity.Profile{
		ID:           r.ID,
		FullName:     strOr(r.FullName, ""),
		Headline:     localized(r.Headline),
		Bio:          localized(r.Bio),
		AvatarURL:    r.AvatarURL,
		CVURLEs:      r.CVURLEs,
		CVURLEn:      r.CVURLEn,
		GithubURL:    r.GithubURL,
		LinkedinURL:  r.LinkedinURL,
		TwitterURL:   r.TwitterURL,
		InstagramURL: r.InstagramURL,
		CreatedAt:    helpers.ParseTimePtr(r.CreatedAt),
		UpdatedAt:    helpers.ParseTimePtr(r.UpdatedAt),
	}
}

func MessageToDomain(r MessageRecord) entity.Message {
	return entity.Message{
		ID:        r.ID,
		FullName:  r.FullName,
		Email:     r.Email,
		Content:   r.Content,
		Read:      boolOr(r.Read, false),
		CreatedAt: helpers.ParseTimePtr(r.CreatedAt),
	}
}

func AdminUserToDomain(r AdminUserRecord) entity.AdminUser {
	u := entity.AdminUser{
		ID:          r.ID,
		Email:       r.Email,
		Password:    r.PasswordHash,
		DisplayName: strOr(r.DisplayName, ""),
	}
	if t := helpers.ParseTimePtr(r.CreatedAt); t != nil {
		u.CreatedAt = *t
	}
	if t := helpers.ParseTimePtr(r.UpdatedAt); t != nil {
		u.UpdatedAt = *t
	}
	return u
}
