package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/accountd/accountd/internal/domain/entity"
	"github.com/accountd/accountd/internal/domain/repository"
)

// UserRepository is the in-memory reference implementation. Records are
// stored by value so callers never share entity state with the map.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.Record
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entity.Record)}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.SetID(uuid.NewString())
	r.users[u.ID()] = u.Record()
	return u, nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID()]; !ok {
		return nil, entity.ErrUserNotFound
	}
	u.Touch()
	r.users[u.ID()] = u.Record()
	return u, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return entity.FromRecord(rec)
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.users {
		if rec.Email == email {
			return entity.FromRecord(rec)
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByEmailValidationToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.users {
		if rec.EmailValidationToken != nil && *rec.EmailValidationToken == token {
			return entity.FromRecord(rec)
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.User, 0, len(r.users))
	for _, rec := range r.users {
		u, err := entity.FromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// guards against interface drift
var _ repository.UserRepository = (*UserRepository)(nil)
