package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// Claims is the authenticated identity embedded in every token.
type Claims struct {
	UserID   string
	Username string
}

// UseCase implements registration, login and token verification. Tokens are
// stateless HS256 JWTs; there is no server-side session store and no
// revocation, so a token stays valid until its natural expiry.
type UseCase struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

func New(users repository.UserRepository, secret string, tokenTTL time.Duration, logger *zap.Logger) *UseCase {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register creates a new user and issues a token for it. Fails with a
// conflict when a user with the same email or username already exists.
func (uc *UseCase) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	if _, err := uc.users.GetByEmailOrUsername(ctx, email, username); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return "", nil, domain.ErrUserExists
		}
		return "", nil, err
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return token, user, nil
}

// Login verifies credentials and issues a token. The guest credential pair
// always succeeds and lazily provisions the guest user record.
func (uc *UseCase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == domain.GuestEmail && password == domain.GuestPassword {
		return uc.guestLogin(ctx)
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// VerifyToken validates the token signature and expiry and extracts the
// embedded identity claims.
func (uc *UseCase) VerifyToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, domain.ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return uc.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	userID, _ := mapClaims["user_id"].(string)
	username, _ := mapClaims["username"].(string)
	if userID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &Claims{UserID: userID, Username: username}, nil
}

func (uc *UseCase) guestLogin(ctx context.Context) (string, *domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, domain.GuestEmail)
	if errors.Is(err, domain.ErrUserNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(domain.GuestPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			return "", nil, hashErr
		}
		user = &domain.User{
			Username:     domain.GuestUsername,
			Email:        domain.GuestEmail,
			PasswordHash: string(hash),
		}
		err = uc.users.Create(ctx, user)
		if errors.Is(err, domain.ErrUserExists) {
			// Lost the provisioning race to a concurrent guest login.
			user, err = uc.users.GetByEmail(ctx, domain.GuestEmail)
		}
		if err == nil {
			uc.logger.Info("guest user provisioned", zap.String("user_id", user.ID))
		}
	}
	if err != nil {
		return "", nil, err
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (uc *UseCase) issueToken(user *domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(uc.tokenTTL).Unix(),
	})
	return token.SignedString(uc.secret)
}
