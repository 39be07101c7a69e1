package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/accountd/accountd/internal/domain/entity"
	"github.com/accountd/accountd/internal/domain/repository"
	"github.com/accountd/accountd/internal/infrastructure/memory"
)

// fakeHasher produces reversible digests so tests can assert what was hashed
// without paying the bcrypt cost.
type fakeHasher struct {
	hashCalls int
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	h.hashCalls++
	return "hashed:" + plain, nil
}

func (h *fakeHasher) Compare(plain, digest string) bool {
	return digest == "hashed:"+plain
}

type fakeSigner struct {
	err error
}

func (s *fakeSigner) Sign(userID, email string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "token-for:" + userID, time.Now().Add(24 * time.Hour), nil
}

func (s *fakeSigner) Verify(token string) (string, string, error) {
	id, ok := strings.CutPrefix(token, "token-for:")
	if !ok {
		return "", "", errors.New("bad token")
	}
	return id, "", nil
}

type sentEmail struct {
	From, To, Subject, HTML string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, from, to, subject, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{From: from, To: to, Subject: subject, HTML: html})
	return nil
}

// spyRepo counts writes so tests can assert nothing was persisted on a
// rejected request.
type spyRepo struct {
	repository.UserRepository
	creates int
	updates int
}

func (r *spyRepo) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	r.creates++
	return r.UserRepository.Create(ctx, u)
}

func (r *spyRepo) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	r.updates++
	return r.UserRepository.Update(ctx, u)
}

func newSpyRepo() *spyRepo {
	return &spyRepo{UserRepository: memory.NewUserRepository()}
}

// seedUser stores an account directly, bypassing the sign-up flow.
func seedUser(t *testing.T, repo repository.UserRepository, email, password string, validated bool) *entity.User {
	t.Helper()
	u, err := entity.New(entity.Params{
		Name:           "Ann Lee",
		Email:          email,
		Password:       "hashed:" + password,
		EmailValidated: validated,
	})
	require.NoError(t, err)
	saved, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	return saved
}
