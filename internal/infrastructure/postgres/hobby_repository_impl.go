package postgres

import (
	"context"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/domain/repository"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/mapper"
)

type HobbyRepository struct {
	db Client
}

func NewHobbyRepository(db Client) *HobbyRepository {
	return &HobbyRepository{db: db}
}

func (r *HobbyRepository) List(ctx context.Context) ([]entity.Hobby, error) {
	raws, err := r.db.Select(ctx, From(TableHobbies).Order("display_order"))
	if err != nil {
		return nil, err
	}
	recs, err := decodeAll[mapper.HobbyRecord](raws)
	if err != nil {
		return nil, err
	}
	return mapper.HobbiesToDomain(recs), nil
}

func (r *HobbyRepository) GetBySlug(ctx context.Context, slug string) (*entity.Hobby, error) {
	q := From(TableHobbies).Eq("slug", slug)
	raw, err := r.db.SelectSingle(ctx, q)
	return selectOne(q, raw, err, mapper.HobbyToDomain)
}

func (r *HobbyRepository) GetByID(ctx context.Context, id string) (*entity.Hobby, error) {
	q := From(TableHobbies).Eq("id", id)
	raw, err := r.db.SelectSingle(ctx, q)
	return selectOne(q, raw, err, mapper.HobbyToDomain)
}

var _ repository.HobbyRepository = (*HobbyRepository)(nil)
