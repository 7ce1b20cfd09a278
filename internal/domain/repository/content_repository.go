package repository

import (
	"context"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
)

// Single-entity lookups return (nil, nil) when nothing matches. Any other
// failure is returned as an error and is never retried here.

// ProjectRepository is the public read contract for projects.
type ProjectRepository interface {
	// ListPublished returns published projects by display order ascending.
	ListPublished(ctx context.Context) ([]entity.Project, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*entity.Project, error)
	// ListBySkill returns published projects associated with the skill.
	ListBySkill(ctx context.Context, skillID string) ([]entity.Project, error)
}

// SkillRepository lists are ordered by name.
type SkillRepository interface {
	List(ctx context.Context) ([]entity.Skill, error)
	ListFeatured(ctx context.Context) ([]entity.Skill, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Skill, error)
}

type HobbyRepository interface {
	List(ctx context.Context) ([]entity.Hobby, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Hobby, error)
}

type CourseRepository interface {
	List(ctx context.Context) ([]entity.Course, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Course, error)
}

// ProfileRepository reads and writes the singleton profile row.
type ProfileRepository interface {
	Get(ctx context.Context) (*entity.Profile, error)
	Upsert(ctx context.Context, patch entity.ProfilePatch) (*entity.Profile, error)
}

// MessageRepository only accepts messages; reading them is an admin concern.
type MessageRepository interface {
	Send(ctx context.Context, msg entity.ContactMessage) error
}
