package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"mycask-api/internal/model"
)

// UserStore is the identity boundary the auth service depends on. Lookups
// return records regardless of the active flag; the service decides what an
// inactive account means per flow. Create must surface duplicate-key
// violations as model.ErrDuplicateEmail / model.ErrDuplicateUsername so
// concurrent registrations can be reported precisely.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, u model.NewUser) (model.User, error)
}

type AuthService struct {
	users UserStore
	codec *TokenCodec
}

func NewAuthService(users UserStore, codec *TokenCodec) *AuthService {
	return &AuthService{users: users, codec: codec}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.PublicUser, error) {
	email := strings.TrimSpace(req.Email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		slog.Error("registration lookup failed", "error", err)
		return model.PublicUser{}, errRegistrationFailed()
	}
	if exists {
		return model.PublicUser{}, errDuplicateEmail()
	}

	username := normalizeOptional(req.Username)
	if username != nil {
		taken, err := s.users.ExistsByUsername(ctx, *username)
		if err != nil {
			slog.Error("registration lookup failed", "error", err)
			return model.PublicUser{}, errRegistrationFailed()
		}
		if taken {
			return model.PublicUser{}, errDuplicateUsername()
		}
	}

	if valid, reason := ValidatePasswordStrength(req.Password); !valid {
		return model.PublicUser{}, errWeakPassword(reason)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		slog.Error("password hashing failed", "error", err)
		return model.PublicUser{}, errRegistrationFailed()
	}

	user, err := s.users.Create(ctx, model.NewUser{
		Email:        email,
		PasswordHash: hash,
		Username:     username,
		FirstName:    normalizeOptional(req.FirstName),
		LastName:     normalizeOptional(req.LastName),
	})
	if err != nil {
		// A duplicate at insert time means we lost a race with a concurrent
		// registration; the pre-checks above cannot prevent it.
		switch {
		case errors.Is(err, model.ErrDuplicateUsername):
			return model.PublicUser{}, errDuplicateUsername()
		case errors.Is(err, model.ErrDuplicateEmail):
			return model.PublicUser{}, errDuplicateConflict()
		default:
			slog.Error("user creation failed", "error", err)
			return model.PublicUser{}, errRegistrationFailed()
		}
	}

	return user.Public(), nil
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (model.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			slog.Error("login lookup failed", "error", err)
		}
		return model.TokenPair{}, errInvalidCredentials()
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return model.TokenPair{}, errInvalidCredentials()
	}

	// Checked after credential verification on purpose: a caller probing a
	// nonexistent account cannot tell "wrong password" from "disabled", but
	// the genuine owner learns the account is disabled.
	if !user.IsActive {
		return model.TokenPair{}, errInactiveAccount()
	}

	return s.issueTokenPair(user.Email)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.codec.DecodeAs(refreshToken, TokenTypeRefresh)
	if err != nil {
		return model.TokenPair{}, errInvalidRefreshToken()
	}
	if claims.Subject == "" {
		return model.TokenPair{}, errInvalidRefreshToken()
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenPair{}, errInvalidRefreshToken()
		}
		slog.Error("refresh lookup failed", "error", err)
		return model.TokenPair{}, errRefreshFailed()
	}
	if !user.IsActive {
		return model.TokenPair{}, errInvalidRefreshToken()
	}

	// Rotation without revocation: the presented refresh token stays
	// structurally valid until its natural expiry.
	return s.issueTokenPair(user.Email)
}

// Authenticate resolves a bearer access token to its user record. The
// record may belong to an inactive account; callers that need an active one
// add RequireActive on top.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (model.User, error) {
	claims, err := s.codec.DecodeAs(accessToken, TokenTypeAccess)
	if err != nil {
		return model.User{}, errUnauthenticated()
	}
	if claims.Subject == "" {
		return model.User{}, errUnauthenticated()
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			slog.Error("authentication lookup failed", "error", err)
		}
		return model.User{}, errUnauthenticated()
	}

	return user, nil
}

// RequireActive gates an authenticated user on the active flag. A valid
// token for a disabled account is a forbidden outcome, not an
// unauthenticated one.
func (s *AuthService) RequireActive(user model.User) error {
	if !user.IsActive {
		return errForbidden()
	}
	return nil
}

func (s *AuthService) issueTokenPair(subject string) (model.TokenPair, error) {
	accessToken, err := s.codec.Encode(subject, TokenTypeAccess)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.codec.Encode(subject, TokenTypeRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
