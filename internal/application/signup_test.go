package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountd/accountd/internal/application"
	"github.com/accountd/accountd/internal/domain/entity"
)

func newSignUp(repo *spyRepo, hasher *fakeHasher, mail *fakeMailer) *application.SignUp {
	return &application.SignUp{
		Repo:   repo,
		Hasher: hasher,
		Mail:   mail,
		AppURL: "http://localhost:8080",
		From:   "no-reply@example.com",
	}
}

func TestSignUp(t *testing.T) {
	repo := newSpyRepo()
	hasher := &fakeHasher{}
	mail := &fakeMailer{}
	uc := newSignUp(repo, hasher, mail)

	pub, err := uc.Execute(context.Background(), application.SignUpInput{
		Name:     "Ann Lee",
		Email:    "Ann@Example.COM",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pub.ID)
	require.Equal(t, "ann@example.com", pub.Email)
	require.False(t, pub.EmailValidated)
	require.False(t, pub.Disabled)

	stored, err := repo.FindByID(context.Background(), pub.ID)
	require.NoError(t, err)
	require.Equal(t, "hashed:password123", stored.Password())
	require.Len(t, stored.EmailValidationToken(), 32)
	require.True(t, stored.IsEmailValidationTokenValid())

	require.Len(t, mail.sent, 1)
	require.Equal(t, "no-reply@example.com", mail.sent[0].From)
	require.Equal(t, "ann@example.com", mail.sent[0].To)
	require.Contains(t, mail.sent[0].HTML,
		"http://localhost:8080/api/users/validate-email?token="+stored.EmailValidationToken())
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	repo := newSpyRepo()
	hasher := &fakeHasher{}
	uc := newSignUp(repo, hasher, &fakeMailer{})
	seedUser(t, repo, "ann@example.com", "password123", true)

	creates := repo.creates
	_, err := uc.Execute(context.Background(), application.SignUpInput{
		Name:     "Other Ann",
		Email:    "ANN@example.com",
		Password: "different-pass",
	})
	require.ErrorIs(t, err, entity.ErrEmailAlreadyInUse)

	// rejected before any hashing or persistence
	require.Zero(t, hasher.hashCalls)
	require.Equal(t, creates, repo.creates)
}

func TestSignUp_ShortPassword(t *testing.T) {
	repo := newSpyRepo()
	hasher := &fakeHasher{}
	uc := newSignUp(repo, hasher, &fakeMailer{})

	_, err := uc.Execute(context.Background(), application.SignUpInput{
		Name:     "Ann Lee",
		Email:    "ann@example.com",
		Password: "short",
	})
	require.Error(t, err)

	// the minimum counts characters, not bytes
	_, err = uc.Execute(context.Background(), application.SignUpInput{
		Name:     "Ann Lee",
		Email:    "ann@example.com",
		Password: "五文字の秘密",
	})
	require.Error(t, err)

	require.Zero(t, hasher.hashCalls)
	require.Zero(t, repo.creates)
}

func TestSignUp_InvalidFields(t *testing.T) {
	uc := newSignUp(newSpyRepo(), &fakeHasher{}, &fakeMailer{})

	_, err := uc.Execute(context.Background(), application.SignUpInput{
		Name: "A", Email: "ann@example.com", Password: "password123",
	})
	require.Error(t, err)

	_, err = uc.Execute(context.Background(), application.SignUpInput{
		Name: "Ann Lee", Email: "not-an-email", Password: "password123",
	})
	require.Error(t, err)
}

func TestSignUp_MailFailurePropagates(t *testing.T) {
	wantErr := errors.New("smtp unreachable")
	uc := newSignUp(newSpyRepo(), &fakeHasher{}, &fakeMailer{err: wantErr})

	_, err := uc.Execute(context.Background(), application.SignUpInput{
		Name:     "Ann Lee",
		Email:    "ann@example.com",
		Password: "password123",
	})
	require.ErrorIs(t, err, wantErr)
}
