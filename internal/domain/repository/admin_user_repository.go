package repository

import (
	"context"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
)

// AdminUserRepository defines the storage of admin console accounts.
type AdminUserRepository interface {
	Create(ctx context.Context, u *entity.AdminUser) error
	GetByID(ctx context.Context, id string) (*entity.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	Update(ctx context.Context, u *entity.AdminUser) error
}
