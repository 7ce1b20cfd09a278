package postgres

import (
	"context"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/domain/repository"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/mapper"
)

type SkillRepository struct {
	db Client
}

func NewSkillRepository(db Client) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) list(ctx context.Context, q *Query) ([]entity.Skill, error) {
	raws, err := r.db.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	recs, err := decodeAll[mapper.SkillRecord](raws)
	if err != nil {
		return nil, err
	}
	return mapper.SkillsToDomain(recs), nil
}

func (r *SkillRepository) List(ctx context.Context) ([]entity.Skill, error) {
	return r.list(ctx, From(TableSkills).Order("name"))
}

func (r *SkillRepository) ListFeatured(ctx context.Context) ([]entity.Skill, error) {
	return r.list(ctx, From(TableSkills).Eq("featured", true).Order("name"))
}

func (r *SkillRepository) GetBySlug(ctx context.Context, slug string) (*entity.Skill, error) {
	q := From(TableSkills).Eq("slug", slug)
	raw, err := r.db.SelectSingle(ctx, q)
	return selectOne(q, raw, err, mapper.SkillToDomain)
}

func (r *SkillRepository) GetByID(ctx context.Context, id string) (*entity.Skill, error) {
	q := From(TableSkills).Eq("id", id)
	raw, err := r.db.SelectSingle(ctx, q)
	return selectOne(q, raw, err, mapper.SkillToDomain)
}

var _ repository.SkillRepository = (*SkillRepository)(nil)
