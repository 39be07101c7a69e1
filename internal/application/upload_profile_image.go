package application

import (
	"context"

	"github.com/accountd/accountd/internal/domain/entity"
	repo "github.com/accountd/accountd/internal/domain/repository"
)

// UploadProfileImage records the stored path of an uploaded image on the
// account. The file itself was already persisted by the transport layer
// through the FileStore port; this use case only mutates and saves the
// aggregate.
type UploadProfileImage struct {
	Repo repo.UserRepository
}

func (uc *UploadProfileImage) Execute(ctx context.Context, userID, imagePath string) (*entity.PublicUser, error) {
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

	u.SetProfileImage(imagePath)
	u.Touch()

	saved, err := uc.Repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	return saved.Public(), nil
}
