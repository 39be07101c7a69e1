package entity

import "time"

// Record is the full persisted representation of a user. It round-trips
// through every storage backend and is never returned over the API.
type Record struct {
	ID                            string     `json:"id"`
	Name                          string     `json:"name"`
	Email                         string     `json:"email"`
	Password                      string     `json:"password"`
	EmailValidated                bool       `json:"email_validated"`
	Disabled                      bool       `json:"disabled"`
	CreatedAt                     time.Time  `json:"created_at"`
	UpdatedAt                     time.Time  `json:"updated_at"`
	EmailValidationToken          *string    `json:"email_validation_token"`
	EmailValidationTokenValidThru *time.Time `json:"email_validation_token_valid_thru"`
	ProfileImage                  *string    `json:"profile_image"`
}

// PublicUser is the projection safe to return over the API: no password, no
// validation-token internals. API payloads are camelCase; the snake_case
// Record exists only for storage.
type PublicUser struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	EmailValidated bool      `json:"emailValidated"`
	Disabled       bool      `json:"disabled"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	ProfileImage   string    `json:"profileImage,omitempty"`
}

// Record serializes every field for a persistence round-trip.
func (u *User) Record() Record {
	r := Record{
		ID:             u.id,
		Name:           u.name,
		Email:          u.email,
		Password:       u.password,
		EmailValidated: u.emailValidated,
		Disabled:       u.disabled,
		CreatedAt:      u.createdAt,
		UpdatedAt:      u.updatedAt,
	}
	if u.emailValidationToken != "" {
		tok := u.emailValidationToken
		r.EmailValidationToken = &tok
	}
	if !u.tokenValidThru.IsZero() {
		thru := u.tokenValidThru
		r.EmailValidationTokenValidThru = &thru
	}
	if u.profileImage != "" {
		img := u.profileImage
		r.ProfileImage = &img
	}
	return r
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:             u.id,
		Name:           u.name,
		Email:          u.email,
		EmailValidated: u.emailValidated,
		Disabled:       u.disabled,
		CreatedAt:      u.createdAt,
		UpdatedAt:      u.updatedAt,
		ProfileImage:   u.profileImage,
	}
}

// FromRecord rebuilds the aggregate from its persisted form, running the same
// validation as New.
func FromRecord(r Record) (*User, error) {
	p := Params{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		Password:       r.Password,
		EmailValidated: r.EmailValidated,
		Disabled:       r.Disabled,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.EmailValidationToken != nil {
		p.EmailValidationToken = *r.EmailValidationToken
	}
	if r.EmailValidationTokenValidThru != nil {
		p.EmailValidationTokenValidThru = *r.EmailValidationTokenValidThru
	}
	if r.ProfileImage != nil {
		p.ProfileImage = *r.ProfileImage
	}
	return New(p)
}
