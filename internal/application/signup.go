package application

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/accountd/accountd/internal/domain/entity"
	repo "github.com/accountd/accountd/internal/domain/repository"
)

// SignUp registers a new account: rejects duplicate emails before hashing or
// persisting anything, stores the bcrypt digest, issues an email-validation
// token, and mails the validation link. A mail failure propagates; the caller
// decides what a half-registered account means.
type SignUp struct {
	Repo   repo.UserRepository
	Hasher PasswordHasher
	Mail   EmailSender
	Logger *logrus.Logger

	AppURL string // base URL embedded in the validation link
	From   string // sender address for the validation email
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

func (uc *SignUp) Execute(ctx context.Context, in SignUpInput) (*entity.PublicUser, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if uc.Logger != nil {
		uc.Logger.WithFields(logrus.Fields{"name": in.Name, "email": email}).Info("sign up started")
	}

	existing, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, entity.ErrEmailAlreadyInUse
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Password)) < 8 {
		return nil, entity.NewValidationError("password must be at least 8 characters long")
	}
	digest, err := uc.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := entity.New(entity.Params{Name: in.Name, Email: email, Password: digest})
	if err != nil {
		return nil, err
	}
	token := u.RequestEmailValidationToken()

	saved, err := uc.Repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/api/users/validate-email?token=%s", uc.AppURL, token)
	html := fmt.Sprintf(`<h1>Email Validation</h1>
<p>Please click the link below to validate your email address:</p>
<a href="%s">%s</a>
<p>This link will expire in 24 hours.</p>`, link, link)

	if err := uc.Mail.Send(ctx, uc.From, saved.Email(), "Email validation", html); err != nil {
		if uc.Logger != nil {
			uc.Logger.WithError(err).WithField("email", saved.Email()).Error("validation email failed")
		}
		return nil, err
	}

	return saved.Public(), nil
}
