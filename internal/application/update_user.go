package application

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/accountd/accountd/internal/domain/entity"
	repo "github.com/accountd/accountd/internal/domain/repository"
)

// UpdateUser applies a partial update to an account. Nil input fields keep
// their prior values. All checks, including the email-collision lookup and
// the password-length rule, run before any persistence call.
type UpdateUser struct {
	Repo   repo.UserRepository
	Hasher PasswordHasher
}

// UpdateUserInput distinguishes "absent" (nil) from an explicit value, so an
// empty ProfileImage can clear the stored path.
type UpdateUserInput struct {
	Name         *string
	Email        *string
	Password     *string
	ProfileImage *string
}

func (uc *UpdateUser) Execute(ctx context.Context, userID string, in UpdateUserInput) (*entity.PublicUser, error) {
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
	if !u.EmailValidated() {
		return nil, entity.ErrEmailNotValidated
	}

	if in.Email != nil {
		newEmail := strings.ToLower(strings.TrimSpace(*in.Email))
		if newEmail != u.Email() {
			other, err := uc.Repo.FindByEmail(ctx, newEmail)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, entity.ErrEmailAlreadyInUse
			}
		}
		if err := u.SetEmail(newEmail); err != nil {
			return nil, err
		}
	}
	if in.Name != nil {
		if err := u.SetName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Password != nil {
		if utf8.RuneCountInString(strings.TrimSpace(*in.Password)) < 8 {
			return nil, entity.NewValidationError("password must be at least 8 characters long")
		}
		if err := u.SetPassword(*in.Password, uc.Hasher.Hash); err != nil {
			return nil, err
		}
	}
	if in.ProfileImage != nil {
		u.SetProfileImage(*in.ProfileImage)
	}
	u.Touch()

	saved, err := uc.Repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	return saved.Public(), nil
}
