package cache

import (
	"context"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/domain/repository"
)

type ProjectRepository struct {
	next  repository.ProjectRepository
	store *Store
}

func NewProjectRepository(next repository.ProjectRepository, store *Store) *ProjectRepository {
	return &ProjectRepository{next: next, store: store}
}

func (r *ProjectRepository) ListPublished(ctx context.Context) ([]entity.Project, error) {
	return remember(ctx, r.store, Key("projects"), r.next.ListPublished)
}

func (r *ProjectRepository) GetPublishedBySlug(ctx context.Context, slug string) (*entity.Project, error) {
	return remember(ctx, r.store, Key("projects", "slug", slug), func(ctx context.Context) (*entity.Project, error) {
		return r.next.GetPublishedBySlug(ctx, slug)
	})
}

func (r *ProjectRepository) ListBySkill(ctx context.Context, skillID string) ([]entity.Project, error) {
	return remember(ctx, r.store, Key("projects", "skill", skillID), func(ctx context.Context) ([]entity.Project, error) {
		return r.next.ListBySkill(ctx, skillID)
	})
}

type SkillRepository struct {
	next  repository.SkillRepository
	store *Store
}

func NewSkillRepository(next repository.SkillRepository, store *Store) *SkillRepository {
	return &SkillRepository{next: next, store: store}
}

func (r *SkillRepository) List(ctx context.Context) ([]entity.Skill, error) {
	return remember(ctx, r.store, Key("skills"), r.next.List)
}

func (r *SkillRepository) ListFeatured(ctx context.Context) ([]entity.Skill, error) {
	return remember(ctx, r.store, Key("skills", "featured"), r.next.ListFeatured)
}

func (r *SkillRepository) GetBySlug(ctx context.Context, slug string) (*entity.Skill, error) {
	return remember(ctx, r.store, Key("skills", "slug", slug), func(ctx context.Context) (*entity.Skill, error) {
		return r.next.GetBySlug(ctx, slug)
	})
}

type HobbyRepository struct {
	next  repository.HobbyRepository
	store *Store
}

func NewHobbyRepository(next repository.HobbyRepository, store *Store) *HobbyRepository {
	return &HobbyRepository{next: next, store: store}
}

func (r *HobbyRepository) List(ctx context.Context) ([]entity.Hobby, error) {
	return remember(ctx, r.store, Key("hobbies"), r.next.List)
}

func (r *HobbyRepository) GetBySlug(ctx context.Context, slug string) (*entity.Hobby, error) {
	return remember(ctx, r.store, Key("hobbies", "slug", slug), func(ctx context.Context) (*entity.Hobby, error) {
		return r.next.GetBySlug(ctx, slug)
	})
}

type CourseRepository struct {
	next  repository.CourseRepository
	store *Store
}

func NewCourseRepository(next repository.CourseRepository, store *Store) *CourseRepository {
	return &CourseRepository{next: next, store: store}
}

func (r *CourseRepository) List(ctx context.Context) ([]entity.Course, error) {
	return remember(ctx, r.store, Key("courses"), r.next.List)
}

func (r *CourseRepository) GetBySlug(ctx context.Context, slug string) (*entity.Course, error) {
	return remember(ctx, r.store, Key("courses", "slug", slug), func(ctx context.Context) (*entity.Course, error) {
		return r.next.GetBySlug(ctx, slug)
	})
}

// ProfileRepository caches reads; Upsert writes through and purges.
type ProfileRepository struct {
	next  repository.ProfileRepository
	store *Store
}

func NewProfileRepository(next repository.ProfileRepository, store *Store) *ProfileRepository {
	return &ProfileRepository{next: next, store: store}
}

func (r *ProfileRepository) Get(ctx context.Context) (*entity.Profile, error) {
	return remember(ctx, r.store, Key("profile"), r.next.Get)
}

func (r *ProfileRepository) Upsert(ctx context.Context, patch entity.ProfilePatch) (*entity.Profile, error) {
	p, err := r.next.Upsert(ctx, patch)
	if err != nil {
		return nil, err
	}
	if err := r.store.Purge(ctx); err != nil {
		r.store.warn(err, "cache purge failed", Key("profile"))
	}
	return p, nil
}

var (
	_ repository.ProjectRepository = (*ProjectRepository)(nil)
	_ repository.SkillRepository   = (*SkillRepository)(nil)
	_ repository.HobbyRepository   = (*HobbyRepository)(nil)
	_ repository.CourseRepository  = (*CourseRepository)(nil)
	_ repository.ProfileRepository = (*ProfileRepository)(nil)
)
