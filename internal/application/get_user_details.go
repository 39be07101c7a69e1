package application

import (
	"context"

	"github.com/accountd/accountd/internal/domain/entity"
	repo "github.com/accountd/accountd/internal/domain/repository"
)

// GetUserDetails returns the public projection of a single account.
type GetUserDetails struct {
	Repo repo.UserRepository
}

func (uc *GetUserDetails) Execute(ctx context.Context, userID string) (*entity.PublicUser, error) {
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
	return u.Public(), nil
}
