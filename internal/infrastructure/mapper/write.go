package mapper

import (
	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
)

// Write-side mappers produce column/value sets for insert and update.

// ProjectInputToRecord builds the project row. includeSlug is false on update
// so the slug stays immutable. Skill ids go to the join table, not here.
func ProjectInputToRecord(in entity.ProjectInput, includeSlug bool) map[string]any {
	rec := map[string]any{
		"title":         in.Title,
		"description":   in.Description,
		"content":       in.Content,
		"cover_image":   in.CoverImage,
		"gallery":       stringList(in.Gallery),
		"demo_url":      in.DemoURL,
		"repo_url":      in.RepoURL,
		"display_order": in.DisplayOrder,
		"published":     in.Published,
	}
	if includeSlug {
		rec["slug"] = in.Slug
	}
	return rec
}

// ProjectSkillRows builds one join row per skill id, keeping input order.
func ProjectSkillRows(projectID string, skillIDs []string) []map[string]any {
	rows := make([]map[string]any, 0, len(skillIDs))
	for _, id := range skillIDs {
		rows = append(rows, map[string]any{"project_id": projectID, "skill_id": id})
	}
	return rows
}

// SkillInputToRecord, HobbyInputToRecord and CourseInputToRecord follow the
// project rule: the slug column is only written when includeSlug is set.
func SkillInputToRecord(in entity.SkillInput, includeSlug bool) map[string]any {
	t := in.Type
	if t == "" {
		t = entity.SkillOther
	}
	rec := map[string]any{
		"name":          in.Name,
		"icon":          in.Icon,
		"description":   localizedValue(in.Description),
		"type":          string(t),
		"featured":      in.Featured,
		"display_order": in.DisplayOrder,
	}
	return withSlug(rec, in.Slug, includeSlug)
}

func HobbyInputToRecord(in entity.HobbyInput, includeSlug bool) map[string]any {
	rec := map[string]any{
		"name":          in.Name,
		"description":   in.Description,
		"content":       in.Content,
		"icon":          in.Icon,
		"cover_image":   in.CoverImage,
		"gallery":       stringList(in.Gallery),
		"display_order": in.DisplayOrder,
	}
	return withSlug(rec, in.Slug, includeSlug)
}

func CourseInputToRecord(in entity.CourseInput, includeSlug bool) map[string]any {
	rec := map[string]any{
		"name":            in.Name,
		"institution":     in.Institution,
		"description":     localizedValue(in.Description),
		"certificate_url": in.CertificateURL,
		"completion_date": dateValue(in.CompletionDate),
		"display_order":   in.DisplayOrder,
	}
	return withSlug(rec, in.Slug, includeSlug)
}

func withSlug(rec map[string]any, slug *string, include bool) map[string]any {
	if include {
		rec["slug"] = slug
	}
	return rec
}

// ProfilePatchToRecord emits only the keys present in the patch.
func ProfilePatchToRecord(p entity.ProfilePatch) map[string]any {
	rec := map[string]any{}
	if p.FullName != nil {
		rec["full_name"] = *p.FullName
	}
	if p.Headline != nil {
		rec["headline"] = *p.Headline
	}
	if p.Bio != nil {
		rec["bio"] = *p.Bio
	}
	setStr := func(key string, v *string) {
		if v != nil {
			rec[key] = *v
		}
	}
	setStr("avatar_url", p.AvatarURL)
	setStr("cv_url_es", p.CVURLEs)
	setStr("cv_url_en", p.CVURLEn)
	setStr("github_url", p.GithubURL)
	setStr("linkedin_url", p.LinkedinURL)
	setStr("twitter_url", p.TwitterURL)
	setStr("instagram_url", p.InstagramURL)
	return rec
}

func ContactMessageToRecord(m entity.ContactMessage) map[string]any {
	return map[string]any{
		"full_name": m.FullName,
		"email":     m.Email,
		"content":   m.Content,
		"read":      false,
	}
}
