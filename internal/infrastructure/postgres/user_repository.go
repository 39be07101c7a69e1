package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accountd/accountd/internal/domain/entity"
	"github.com/accountd/accountd/internal/domain/repository"
)

const userColumns = `id, name, email, password_hash, email_validated, disabled,
	created_at, updated_at, email_validation_token, email_validation_token_valid_thru, profile_image`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	rec := u.Record()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, email_validated, disabled,
			email_validation_token, email_validation_token_valid_thru, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, rec.Name, rec.Email, rec.Password, rec.EmailValidated, rec.Disabled,
		rec.EmailValidationToken, rec.EmailValidationTokenValidThru, rec.ProfileImage)

	var id string
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.ID, rec.CreatedAt, rec.UpdatedAt = id, createdAt, updatedAt
	return entity.FromRecord(rec)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	rec := u.Record()
	rec.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, email_validated = $4, disabled = $5,
			updated_at = $6, email_validation_token = $7,
			email_validation_token_valid_thru = $8, profile_image = $9
		WHERE id = $10
	`, rec.Name, rec.Email, rec.Password, rec.EmailValidated, rec.Disabled,
		rec.UpdatedAt, rec.EmailValidationToken, rec.EmailValidationTokenValidThru,
		rec.ProfileImage, rec.ID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, entity.ErrUserNotFound
	}
	return entity.FromRecord(rec)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) FindByEmailValidationToken(ctx context.Context, token string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email_validation_token = $1`, token)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var rec entity.Record
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Password,
		&rec.EmailValidated, &rec.Disabled, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmailValidationToken, &rec.EmailValidationTokenValidThru,
		&rec.ProfileImage); err != nil {
		return nil, err
	}
	return entity.FromRecord(rec)
}

var _ repository.UserRepository = (*UserRepository)(nil)
