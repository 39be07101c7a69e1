package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/accountd/accountd/internal/domain/entity"
	repo "github.com/accountd/accountd/internal/domain/repository"
)

// SignIn authenticates an account and issues a signed bearer token.
//
// The check order is fixed: existence, disabled, email-validated, password.
// Reordering would leak password validity for accounts the caller should only
// ever see state errors for.
type SignIn struct {
	Repo   repo.UserRepository
	Hasher PasswordHasher
	Signer TokenSigner
	Logger *logrus.Logger
}

type SignInInput struct {
	Email    string
	Password string
}

type SignInResult struct {
	Token string             `json:"token"`
	User  *entity.PublicUser `json:"user"`
}

func (uc *SignIn) Execute(ctx context.Context, in SignInInput) (*SignInResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	u, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, entity.ErrInvalidCredentials
	}
	if u.Disabled() {
		return nil, entity.ErrUserDisabled
	}
	if !u.EmailValidated() {
		return nil, entity.ErrEmailNotValidated
	}
	if !uc.Hasher.Compare(in.Password, u.Password()) {
		return nil, entity.ErrInvalidCredentials
	}

	token, _, err := uc.Signer.Sign(u.ID(), u.Email())
	if err != nil {
		if uc.Logger != nil {
			uc.Logger.WithError(err).WithField("user_id", u.ID()).Error("token signing failed")
		}
		return nil, err
	}
	return &SignInResult{Token: token, User: u.Public()}, nil
}
