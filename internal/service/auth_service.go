package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/product-inventory/internal/apperr"
	"github.com/iliyamo/product-inventory/internal/auth"
	"github.com/iliyamo/product-inventory/internal/model"
	"github.com/iliyamo/product-inventory/internal/repository"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// AuthService implements registration, login and token lifecycle. It is
// constructed once at startup and holds no per-request state; tokens are
// stateless, so revocation before natural expiry is impossible by design.
type AuthService struct {
	Users      UserStore
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthService(users UserStore, secret string, ttl time.Duration, cost int) *AuthService {
	return &AuthService{Users: users, Secret: secret, TokenTTL: ttl, BcryptCost: cost}
}

// Register hashes the password, persists the user and issues a token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (model.User, string, error) {
	hash, err := auth.HashPassword(password, s.BcryptCost)
	if err != nil {
		return model.User{}, "", apperr.Internal("USER_CREATE_ERROR", "failed to create user", err)
	}

	u, err := s.Users.Create(ctx, username, email, hash)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return model.User{}, "", apperr.Conflict("USERNAME_EXISTS", "username already exists")
		case errors.Is(err, repository.ErrEmailExists):
			return model.User{}, "", apperr.Conflict("EMAIL_EXISTS", "email already exists")
		}
		return model.User{}, "", apperr.Internal("USER_CREATE_ERROR", "failed to create user", err)
	}

	tok, err := auth.IssueToken(s.Secret, u, s.TokenTTL)
	if err != nil {
		return model.User{}, "", apperr.Internal("TOKEN_ISSUE_ERROR", "failed to issue token", err)
	}
	return u, tok, nil
}

// Login verifies credentials and issues a token. Unknown usernames and
// wrong passwords produce the same response so the two are not
// distinguishable from outside.
func (s *AuthService) Login(ctx context.Context, username, password string) (model.User, string, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, "", apperr.Unauthorized("INVALID_CREDENTIALS", "invalid username or password")
		}
		return model.User{}, "", apperr.Internal("USER_FETCH_ERROR", "failed to load user", err)
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, "", apperr.Unauthorized("INVALID_CREDENTIALS", "invalid username or password")
	}

	tok, err := auth.IssueToken(s.Secret, u, s.TokenTTL)
	if err != nil {
		return model.User{}, "", apperr.Internal("TOKEN_ISSUE_ERROR", "failed to issue token", err)
	}
	return u, tok, nil
}

// Authenticate verifies a bearer token and confirms the identity still
// exists. Used by the authentication gate; a verified token whose user
// has since disappeared is rejected the same way an invalid one is.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (model.User, auth.Claims, error) {
	claims, err := auth.VerifyToken(s.Secret, raw)
	if err != nil {
		return model.User{}, auth.Claims{}, tokenError(err)
	}

	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, auth.Claims{}, apperr.Unauthorized(apperr.CodeAuthInvalid, "user no longer exists")
		}
		return model.User{}, auth.Claims{}, apperr.Internal("USER_FETCH_ERROR", "failed to load user", err)
	}
	return u, claims, nil
}

// Refresh verifies the presented token, re-reads the current identity
// state and issues a fresh token with a new expiry.
func (s *AuthService) Refresh(ctx context.Context, raw string) (model.User, string, error) {
	u, _, err := s.Authenticate(ctx, raw)
	if err != nil {
		return model.User{}, "", err
	}
	tok, err := auth.IssueToken(s.Secret, u, s.TokenTTL)
	if err != nil {
		return model.User{}, "", apperr.Internal("TOKEN_ISSUE_ERROR", "failed to issue token", err)
	}
	return u, tok, nil
}

// tokenError maps credential-layer verification failures onto the two
// distinguishable 401 responses.
func tokenError(err error) *apperr.Error {
	if errors.Is(err, auth.ErrTokenExpired) {
		return apperr.Unauthorized(apperr.CodeTokenExpired, "token has expired")
	}
	return apperr.Unauthorized(apperr.CodeAuthInvalid, "invalid token")
}
