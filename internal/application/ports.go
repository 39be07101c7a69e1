package application

import (
	"context"
	"io"
	"time"
)

// Capability interfaces consumed by the use cases. Concrete implementations
// live under pkg/ and internal/infrastructure; tests supply explicit fakes.

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, digest string) bool
}

// TokenSigner issues and verifies the signed bearer token handed out on
// sign-in. Claims are the user id and email.
type TokenSigner interface {
	Sign(userID, email string) (token string, expiresAt time.Time, err error)
	Verify(token string) (userID, email string, err error)
}

// EmailSender delivers (or enqueues) an HTML email.
type EmailSender interface {
	Send(ctx context.Context, from, to, subject, html string) error
}

// FileStore persists an uploaded file and returns the path stored on the
// user's profile.
type FileStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}
