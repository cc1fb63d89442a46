package repository

import (
	"context"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
)

// UserRepository is the credential store contract consumed by the auth
// service. Find methods return (nil, nil) when no row matches. Save must
// surface a duplicate-identifier error when a unique constraint fires, even
// if the advisory Exists pre-checks passed; the database constraint is the
// actual uniqueness guarantee under concurrent registrations.
type UserRepository interface {
	Save(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByNationalID(ctx context.Context, nationalID string) (*entity.User, error)
	FindByHandle(ctx context.Context, handle string) (*entity.User, error)
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
	ExistsByHandle(ctx context.Context, handle string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
