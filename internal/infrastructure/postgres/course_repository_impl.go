package postgres

import (
	"context"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/domain/repository"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/mapper"
)

type CourseRepository struct {
	db Client
}

func NewCourseRepository(db Client) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) List(ctx context.Context) ([]entity.Course, error) {
	raws, err := r.db.Select(ctx, From(TableCourses).Order("display_order"))
	if err != nil {
		return nil, err
	}
	recs, err := decodeAll[mapper.CourseRecord](raws)
	if err != nil {
		return nil, err
	}
	return mapper.CoursesToDomain(recs), nil
}

func (r *CourseRepository) GetBySlug(ctx context.Context, slug string) (*entity.Course, error) {
	q := From(TableCourses).Eq("slug", slug)
	raw, err := r.db.SelectSingle(ctx, q)
	return selectOne(q, raw, err, mapper.CourseToDomain)
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	q := From(TableCourses).Eq("id", id)
	raw, err := r.db.SelectSingle(ctx, q)
	return selectOne(q, raw, err, mapper.CourseToDomain)
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
