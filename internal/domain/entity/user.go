package entity

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	validationTokenLength = 32
	validationTokenTTL    = 24 * time.Hour
	tokenAlphabet         = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Intentionally loose: local@domain.tld with no whitespace. Real deliverability
// is proven by the validation email, not the pattern.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is the aggregate root for the account domain. Every field is validated
// on assignment; an instance that exists is an instance that is valid.
// Password always holds an already-hashed credential.
type User struct {
	id             string
	name           string
	email          string
	password       string
	emailValidated bool
	disabled       bool
	createdAt      time.Time
	updatedAt      time.Time

	emailValidationToken string
	tokenValidThru       time.Time

	profileImage string
}

// Params carries the raw field set used to construct or reconstruct a User.
// EmailValidated and Disabled accept a bool, numeric 0/1, or "true"/"false",
// mirroring the mixed representations stored by the supported backends.
type Params struct {
	ID                            string
	Name                          string
	Email                         string
	Password                      string
	EmailValidated                any
	Disabled                      any
	CreatedAt                     time.Time
	UpdatedAt                     time.Time
	EmailValidationToken          string
	EmailValidationTokenValidThru time.Time
	ProfileImage                  string
}

// ParseFlag decodes the boolean forms accepted on account records. Anything
// outside bool, 0/1, or "true"/"false" is an explicit validation failure,
// never a silent truthiness coercion.
func ParseFlag(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case int:
		if t == 0 || t == 1 {
			return t == 1, nil
		}
	case int64:
		if t == 0 || t == 1 {
			return t == 1, nil
		}
	case float64:
		if t == 0 || t == 1 {
			return t == 1, nil
		}
	case string:
		if t == "true" {
			return true, nil
		}
		if t == "false" {
			return false, nil
		}
	}
	return false, NewValidationError("flag must be a boolean, 1/0, or \"true\"/\"false\"")
}

// New builds a User, failing fast on the first invalid field. Unspecified
// flags default to false, zero timestamps default to now.
func New(p Params) (*User, error) {
	u := &User{id: p.ID}
	if err := u.SetName(p.Name); err != nil {
		return nil, err
	}
	if err := u.SetEmail(p.Email); err != nil {
		return nil, err
	}
	u.password = p.Password

	if p.EmailValidated != nil {
		v, err := ParseFlag(p.EmailValidated)
		if err != nil {
			return nil, NewValidationError("emailValidated must be a boolean, 1/0, or \"true\"/\"false\"")
		}
		u.emailValidated = v
	}
	if p.Disabled != nil {
		v, err := ParseFlag(p.Disabled)
		if err != nil {
			return nil, NewValidationError("disabled must be a boolean, 1/0, or \"true\"/\"false\"")
		}
		u.disabled = v
	}

	now := time.Now()
	u.createdAt = p.CreatedAt
	if u.createdAt.IsZero() {
		u.createdAt = now
	}
	u.updatedAt = p.UpdatedAt
	if u.updatedAt.IsZero() {
		u.updatedAt = now
	}

	u.emailValidationToken = p.EmailValidationToken
	u.tokenValidThru = p.EmailValidationTokenValidThru
	u.profileImage = p.ProfileImage
	return u, nil
}

func (u *User) ID() string          { return u.id }
func (u *User) Name() string        { return u.name }
func (u *User) Email() string       { return u.email }
func (u *User) Password() string    { return u.password }
func (u *User) EmailValidated() bool { return u.emailValidated }
func (u *User) Disabled() bool      { return u.disabled }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
func (u *User) ProfileImage() string { return u.profileImage }

func (u *User) EmailValidationToken() string { return u.emailValidationToken }

func (u *User) EmailValidationTokenValidThru() time.Time { return u.tokenValidThru }

// SetID is called by storage once an identifier has been assigned.
func (u *User) SetID(id string) { u.id = id }

func (u *User) SetName(name string) error {
	trimmed := strings.TrimSpace(name)
	// counted in runes, not bytes, so multibyte names measure correctly
	if utf8.RuneCountInString(trimmed) < 2 {
		return NewValidationError("name must be a string with at least 2 characters")
	}
	u.name = trimmed
	return nil
}

// SetEmail validates and normalizes the address to lowercase.
func (u *User) SetEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return NewValidationError("invalid email format")
	}
	u.email = strings.ToLower(email)
	return nil
}

// SetPassword hashes plain through hash and stores the digest. The plaintext
// never touches a struct field.
func (u *User) SetPassword(plain string, hash func(string) (string, error)) error {
	if utf8.RuneCountInString(plain) < 8 {
		return NewValidationError("password must be at least 8 characters long")
	}
	if hash == nil {
		return NewValidationError("password hashing function is required")
	}
	digest, err := hash(plain)
	if err != nil {
		return err
	}
	u.password = digest
	return nil
}

// SetHashedPassword assigns an already-hashed credential, e.g. when
// reconstructing from storage.
func (u *User) SetHashedPassword(digest string) { u.password = digest }

func (u *User) SetProfileImage(path string) { u.profileImage = path }

// Touch bumps UpdatedAt. Lifecycle methods call it themselves; callers doing
// targeted field mutation use it directly.
func (u *User) Touch() { u.updatedAt = time.Now() }

// Disable marks the account as logically deleted. Idempotent here; the
// guard against disabling twice lives in the use case.
func (u *User) Disable() {
	u.disabled = true
	u.Touch()
}

func (u *User) Enable() {
	u.disabled = false
	u.Touch()
}

// ValidateEmail marks the address as proven and retires the token. Token and
// expiry are always cleared together.
func (u *User) ValidateEmail() {
	u.emailValidated = true
	u.emailValidationToken = ""
	u.tokenValidThru = time.Time{}
	u.Touch()
}

// RequestEmailValidationToken issues a fresh single-use token valid for 24
// hours and returns it. The random source is uniform but deliberately not
// cryptographic: the token proves mailbox access, it is not a credential.
func (u *User) RequestEmailValidationToken() string {
	b := make([]byte, validationTokenLength)
	for i := range b {
		b[i] = tokenAlphabet[rand.IntN(len(tokenAlphabet))]
	}
	u.emailValidationToken = string(b)
	u.tokenValidThru = time.Now().Add(validationTokenTTL)
	u.Touch()
	return u.emailValidationToken
}

// IsEmailValidationTokenValid reports whether a token is present and its
// expiry is strictly in the future.
func (u *User) IsEmailValidationTokenValid() bool {
	if u.emailValidationToken == "" || u.tokenValidThru.IsZero() {
		return false
	}
	return u.tokenValidThru.After(time.Now())
}
