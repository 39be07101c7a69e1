package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountd/accountd/internal/application"
	"github.com/accountd/accountd/internal/domain/entity"
)

func TestSignIn(t *testing.T) {
	repo := newSpyRepo()
	u := seedUser(t, repo, "ann@example.com", "password123", true)
	uc := &application.SignIn{Repo: repo, Hasher: &fakeHasher{}, Signer: &fakeSigner{}}

	res, err := uc.Execute(context.Background(), application.SignInInput{
		Email:    "ANN@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, "token-for:"+u.ID(), res.Token)
	require.Equal(t, u.ID(), res.User.ID)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	uc := &application.SignIn{Repo: newSpyRepo(), Hasher: &fakeHasher{}, Signer: &fakeSigner{}}

	_, err := uc.Execute(context.Background(), application.SignInInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	require.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestSignIn_WrongPassword(t *testing.T) {
	repo := newSpyRepo()
	seedUser(t, repo, "ann@example.com", "password123", true)
	uc := &application.SignIn{Repo: repo, Hasher: &fakeHasher{}, Signer: &fakeSigner{}}

	_, err := uc.Execute(context.Background(), application.SignInInput{
		Email:    "ann@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestSignIn_EmailNotValidated(t *testing.T) {
	repo := newSpyRepo()
	seedUser(t, repo, "ann@example.com", "password123", false)
	uc := &application.SignIn{Repo: repo, Hasher: &fakeHasher{}, Signer: &fakeSigner{}}

	_, err := uc.Execute(context.Background(), application.SignInInput{
		Email:    "ann@example.com",
		Password: "password123",
	})
	require.ErrorIs(t, err, entity.ErrEmailNotValidated)
}

// A disabled account reports disabled first, even when the email is not
// validated and the password is wrong.
func TestSignIn_CheckOrder(t *testing.T) {
	repo := newSpyRepo()
	u := seedUser(t, repo, "ann@example.com", "password123", false)
	u.Disable()
	_, err := repo.Update(context.Background(), u)
	require.NoError(t, err)

	uc := &application.SignIn{Repo: repo, Hasher: &fakeHasher{}, Signer: &fakeSigner{}}
	_, err = uc.Execute(context.Background(), application.SignInInput{
		Email:    "ann@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, entity.ErrUserDisabled)
}

func TestSignUpThenSignInFlow(t *testing.T) {
	repo := newSpyRepo()
	hasher := &fakeHasher{}
	signUp := newSignUp(repo, hasher, &fakeMailer{})
	signIn := &application.SignIn{Repo: repo, Hasher: hasher, Signer: &fakeSigner{}}
	validate := &application.ValidateEmail{Repo: repo}

	ctx := context.Background()
	pub, err := signUp.Execute(ctx, application.SignUpInput{
		Name:     "Ann Lee",
		Email:    "ann@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	in := application.SignInInput{Email: "ann@example.com", Password: "password123"}

	// sign-in is blocked until the email is validated
	_, err = signIn.Execute(ctx, in)
	require.ErrorIs(t, err, entity.ErrEmailNotValidated)

	stored, err := repo.FindByID(ctx, pub.ID)
	require.NoError(t, err)
	_, err = validate.Execute(ctx, stored.EmailValidationToken())
	require.NoError(t, err)

	res, err := signIn.Execute(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	in.Password = "wrong-password"
	_, err = signIn.Execute(ctx, in)
	require.ErrorIs(t, err, entity.ErrInvalidCredentials)
}
