package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/usecase/auth"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email || user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return domain.ErrUserExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

const testSecret = "test-secret"

func newUseCase(repo *fakeUserRepo) *auth.UseCase {
	return auth.New(repo, testSecret, 7*24*time.Hour, nil)
}

func TestRegister_IssuesVerifiableToken(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo)

	token, user, err := uc.Register(context.Background(), "alice", "alice@x.com", "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, user)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "pw123", user.PasswordHash)

	claims, err := uc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo)

	_, first, err := uc.Register(context.Background(), "alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	_, _, err = uc.Register(context.Background(), "someone-else", "alice@x.com", "other")
	assert.ErrorIs(t, err, domain.ErrUserExists)

	// The first account is unaffected.
	kept, err := repo.GetByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, kept.ID)
	assert.Equal(t, "alice", kept.Username)
	assert.Len(t, repo.users, 1)
}

func TestRegister_DuplicateUsernameConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo)

	_, _, err := uc.Register(context.Background(), "alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	_, _, err = uc.Register(context.Background(), "alice", "other@x.com", "pw456")
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLogin_Succeeds(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo)

	_, registered, err := uc.Register(context.Background(), "alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	token, user, err := uc.Login(context.Background(), "alice@x.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := uc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo)

	_, _, err := uc.Register(context.Background(), "alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	_, _, err = uc.Login(context.Background(), "nobody@x.com", "pw123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = uc.Login(context.Background(), "alice@x.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_GuestProvisionsOnce(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo)

	token, user, err := uc.Login(context.Background(), domain.GuestEmail, domain.GuestPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, domain.GuestUsername, user.Username)
	assert.True(t, user.IsGuest())
	assert.Len(t, repo.users, 1)

	// Repeated guest logins reuse the same record.
	_, again, err := uc.Login(context.Background(), domain.GuestEmail, domain.GuestPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Len(t, repo.users, 1)
}

func TestVerifyToken_MissingToken(t *testing.T) {
	uc := newUseCase(newFakeUserRepo())

	_, err := uc.VerifyToken("")
	assert.ErrorIs(t, err, domain.ErrMissingToken)
}

func TestVerifyToken_RejectsTampering(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo)

	token, _, err := uc.Register(context.Background(), "alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	// Flip the last character of the signature.
	tampered := token[:len(token)-1]
	if token[len(token)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}
	_, err = uc.VerifyToken(tampered)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = uc.VerifyToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyToken_RejectsForeignSignature(t *testing.T) {
	uc := newUseCase(newFakeUserRepo())

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "u1",
		"username": "mallory",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := foreign.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = uc.VerifyToken(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyToken_RejectsExpired(t *testing.T) {
	uc := newUseCase(newFakeUserRepo())

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "u1",
		"username": "alice",
		"exp":      time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = uc.VerifyToken(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
