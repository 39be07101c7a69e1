package application

import (
	"context"

	"github.com/accountd/accountd/internal/domain/entity"
	repo "github.com/accountd/accountd/internal/domain/repository"
)

// DisableUser logically deletes an account. The entity's Disable is
// idempotent; the use case is not: a second disable is rejected so callers
// learn the account was already gone.
type DisableUser struct {
	Repo repo.UserRepository
}

func (uc *DisableUser) Execute(ctx context.Context, userID string) (*entity.PublicUser, error) {
	u, err := uc.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, entity.ErrUserNotFound
	}
	if u.Disabled() {
		return nil, entity.ErrUserDisabled
	}

	u.Disable()

	saved, err := uc.Repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	return saved.Public(), nil
}
