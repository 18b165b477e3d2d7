package bolt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	boltdb "go.etcd.io/bbolt"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// storedUser carries the password hash, which the domain type hides from JSON.
type storedUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u storedUser) toDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

type userRepository struct {
	store *Store
}

// NewUserRepository returns a bbolt-backed user repository.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var found *domain.User
	err := r.store.db.View(func(tx *boltdb.Tx) error {
		raw := tx.Bucket(bucketUsers).Get([]byte(id))
		if raw == nil {
			return nil
		}
		var stored storedUser
		if err := json.Unmarshal(raw, &stored); err != nil {
			return err
		}
		found = stored.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrUserNotFound
	}
	return found, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u storedUser) bool { return u.Email == email })
}

func (r *userRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	return r.find(func(u storedUser) bool { return u.Email == email || u.Username == username })
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	return r.store.db.Update(func(tx *boltdb.Tx) error {
		bucket := tx.Bucket(bucketUsers)

		// Uniqueness on email and username, mirroring the SQL constraints.
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var existing storedUser
			if err := json.Unmarshal(v, &existing); err != nil {
				continue
			}
			if existing.Email == user.Email || existing.Username == user.Username {
				return domain.ErrUserExists
			}
		}

		payload, err := json.Marshal(storedUser{
			ID:           user.ID,
			Username:     user.Username,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
			CreatedAt:    user.CreatedAt,
		})
		if err != nil {
			return err
		}
		return bucket.Put([]byte(user.ID), payload)
	})
}

func (r *userRepository) find(match func(storedUser) bool) (*domain.User, error) {
	var found *domain.User
	err := r.store.db.View(func(tx *boltdb.Tx) error {
		cursor := tx.Bucket(bucketUsers).Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var stored storedUser
			if err := json.Unmarshal(v, &stored); err != nil {
				continue
			}
			if match(stored) {
				found = stored.toDomain()
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrUserNotFound
	}
	return found, nil
}
