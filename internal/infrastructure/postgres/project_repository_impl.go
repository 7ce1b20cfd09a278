package postgres

import (
	"context"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/domain/repository"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/mapper"
)

type ProjectRepository struct {
	db Client
}

func NewProjectRepository(db Client) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) list(ctx context.Context, q *Query) ([]entity.Project, error) {
	raws, err := r.db.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	recs, err := decodeAll[mapper.ProjectRecord](raws)
	if err != nil {
		return nil, err
	}
	return mapper.ProjectsToDomain(recs), nil
}

func (r *ProjectRepository) ListPublished(ctx context.Context) ([]entity.Project, error) {
	q := From(TableProjects).Embed(ProjectSkills).Eq("published", true).Order("display_order")
	return r.list(ctx, q)
}

func (r *ProjectRepository) GetPublishedBySlug(ctx context.Context, slug string) (*entity.Project, error) {
	q := From(TableProjects).Embed(ProjectSkills).Eq("slug", slug).Eq("published", true)
	raw, err := r.db.SelectSingle(ctx, q)
	return selectOne(q, raw, err, mapper.ProjectToDomain)
}

func (r *ProjectRepository) ListBySkill(ctx context.Context, skillID string) ([]entity.Project, error) {
	q := From(TableProjects).Embed(ProjectSkills).Related(ProjectSkills, skillID).Eq("published", true).Order("display_order")
	return r.list(ctx, q)
}

// ListAll includes unpublished projects; the admin console reads through it.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]entity.Project, error) {
	return r.list(ctx, From(TableProjects).Embed(ProjectSkills).Order("display_order"))
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	q := From(TableProjects).Embed(ProjectSkills).Eq("id", id)
	raw, err := r.db.SelectSingle(ctx, q)
	return selectOne(q, raw, err, mapper.ProjectToDomain)
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
