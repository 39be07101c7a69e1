package application

import (
	"context"

	"github.com/accountd/accountd/internal/domain/entity"
	repo "github.com/accountd/accountd/internal/domain/repository"
)

// ValidateEmail redeems a single-use validation token. A present-but-expired
// token is rejected the same way an unknown one is, so the error never tells
// a caller whether a token ever existed.
type ValidateEmail struct {
	Repo repo.UserRepository
}

func (uc *ValidateEmail) Execute(ctx context.Context, token string) (*entity.PublicUser, error) {
	if token == "" {
		return nil, entity.NewValidationError("validation token is required")
	}

	u, err := uc.Repo.FindByEmailValidationToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsEmailValidationTokenValid() {
		return nil, entity.NewValidationError("invalid or expired validation token")
	}

	u.ValidateEmail()

	saved, err := uc.Repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	return saved.Public(), nil
}
