package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/domain/repository"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/mapper"
)

var errAdminNotFound = errors.New("admin user not found")

type AdminUserRepository struct {
	db Client
}

func NewAdminUserRepository(db Client) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

func (r *AdminUserRepository) Create(ctx context.Context, u *entity.AdminUser) error {
	raws, err := r.db.Insert(ctx, TableAdminUsers, Values{
		"email":         u.Email,
		"password_hash": u.Password,
		"display_name":  u.DisplayName,
	})
	if err != nil {
		return err
	}
	rec, err := decodeOne[mapper.AdminUserRecord](raws[0])
	if err != nil {
		return err
	}
	*u = mapper.AdminUserToDomain(rec)
	return nil
}

func (r *AdminUserRepository) GetByID(ctx context.Context, id string) (*entity.AdminUser, error) {
	q := From(TableAdminUsers).Eq("id", id)
	raw, err := r.db.SelectSingle(ctx, q)
	return selectOne(q, raw, err, mapper.AdminUserToDomain)
}

func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	q := From(TableAdminUsers).Eq("email", email)
	raw, err := r.db.SelectSingle(ctx, q)
	return selectOne(q, raw, err, mapper.AdminUserToDomain)
}

func (r *AdminUserRepository) Update(ctx context.Context, u *entity.AdminUser) error {
	u.UpdatedAt = time.Now().UTC()
	n, err := r.db.Update(ctx, From(TableAdminUsers).Eq("id", u.ID), Values{
		"email":         u.Email,
		"password_hash": u.Password,
		"display_name":  u.DisplayName,
		"updated_at":    u.UpdatedAt,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update %s: %w", u.ID, errAdminNotFound)
	}
	return nil
}

var _ repository.AdminUserRepository = (*AdminUserRepository)(nil)
