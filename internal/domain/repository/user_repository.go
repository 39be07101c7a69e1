package repository

import (
	"context"

	"github.com/accountd/accountd/internal/domain/entity"
)

// UserRepository is the storage contract the use cases depend on. Finders
// return (nil, nil) when nothing matches; Update of an unknown id fails with
// entity.ErrUserNotFound. Any other error is a storage error and propagates
// to the caller unchanged.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByEmailValidationToken(ctx context.Context, token string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
}
