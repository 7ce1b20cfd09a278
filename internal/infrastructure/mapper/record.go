package mapper

import "github.com/oksasatya/portfolio-backend/internal/domain/entity"

// Records mirror persisted rows. Nullable columns are pointers; timestamps
// stay as the ISO-8601 strings the store emits.

type ProjectRecord struct {
	ID            string                  `json:"id"`
	Slug          string                  `json:"slug"`
	Title         *entity.LocalizedString `json:"title"`
	Description   *entity.LocalizedString `json:"description"`
	Content       *entity.LocalizedString `json:"content"`
	CoverImage    *string                 `json:"cover_image"`
	Gallery       []string                `json:"gallery"`
	DemoURL       *string                 `json:"demo_url"`
	RepoURL       *string                 `json:"repo_url"`
	DisplayOrder  *int                    `json:"display_order"`
	Published     *bool                   `json:"published"`
	ProjectSkills []ProjectSkillRecord    `json:"project_skills"`
	CreatedAt     *string                 `json:"created_at"`
	UpdatedAt     *string                 `json:"updated_at"`
}

// ProjectSkillRecord is a join row, optionally wrapping the embedded skill.
type ProjectSkillRecord struct {
	ProjectID string       `json:"project_id"`
	SkillID   string       `json:"skill_id"`
	Skills    *SkillRecord `json:"skills"`
}

type SkillRecord struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Slug         *string                 `json:"slug"`
	Icon         *string                 `json:"icon"`
	Description  *entity.LocalizedString `json:"description"`
	Type         *string                 `json:"type"`
	Featured     *bool                   `json:"featured"`
	DisplayOrder *int                    `json:"display_order"`
	CreatedAt    *string                 `json:"created_at"`
}

type HobbyRecord struct {
	ID           string                  `json:"id"`
	Slug         *string                 `json:"slug"`
	Name         *entity.LocalizedString `json:"name"`
	Description  *entity.LocalizedString `json:"description"`
	Content      *entity.LocalizedString `json:"content"`
	Icon         *string                 `json:"icon"`
	CoverImage   *string                 `json:"cover_image"`
	Gallery      []string                `json:"gallery"`
	DisplayOrder *int                    `json:"display_order"`
	CreatedAt    *string                 `json:"created_at"`
}

type CourseRecord struct {
	ID             string                  `json:"id"`
	Slug           *string                 `json:"slug"`
	Name           *entity.LocalizedString `json:"name"`
	Institution    *entity.LocalizedString `json:"institution"`
	Description    *entity.LocalizedString `json:"description"`
	CertificateURL *string                 `json:"certificate_url"`
	CompletionDate *string                 `json:"completion_date"`
	DisplayOrder   *int                    `json:"display_order"`
	CreatedAt      *string                 `json:"created_at"`
}

type ProfileRecord struct {
	ID           string                  `json:"id"`
	FullName     *string                 `json:"full_name"`
	Headline     *entity.LocalizedString `json:"headline"`
	Bio          *entity.LocalizedString `json:"bio"`
	AvatarURL    *string                 `json:"avatar_url"`
	CVURLEs      *string                 `json:"cv_url_es"`
	CVURLEn      *string                 `json:"cv_url_en"`
	GithubURL    *string                 `json:"github_url"`
	LinkedinURL  *string                 `json:"linkedin_url"`
	TwitterURL   *string                 `json:"twitter_url"`
	InstagramURL *string                 `json:"instagram_url"`
	CreatedAt    *string                 `json:"created_at"`
	UpdatedAt    *string                 `json:"updated_at"`
}

type MessageRecord struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	Content   string  `json:"content"`
	Read      *bool   `json:"read"`
	CreatedAt *string `json:"created_at"`
}

type AdminUserRecord struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"password_hash"`
	DisplayName  *string `json:"display_name"`
	CreatedAt    *string `json:"created_at"`
	UpdatedAt    *string `json:"updated_at"`
}
