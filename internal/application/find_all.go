package application

import (
	"context"

	"github.com/accountd/accountd/internal/domain/entity"
	repo "github.com/accountd/accountd/internal/domain/repository"
)

// FindAllUsers lists every stored account as its public projection. An empty
// store yields an empty slice, not nil.
type FindAllUsers struct {
	Repo repo.UserRepository
}

func (uc *FindAllUsers) Execute(ctx context.Context) ([]*entity.PublicUser, error) {
	users, err := uc.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
