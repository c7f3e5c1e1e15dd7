package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tasktab/tasktab/internal/tasktab/domain"
	"github.com/tasktab/tasktab/internal/tasktab/store"
	"github.com/tasktab/tasktab/pkg/cryptox"
	"github.com/tasktab/tasktab/pkg/idx"
	"github.com/tasktab/tasktab/pkg/jwtx"
	"github.com/tasktab/tasktab/pkg/slogx"
)

const maxHandleLength = 50

// AuthService is the decision point for "who is this caller": it verifies
// credentials against the user store and issues identity tokens.
type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration
}

// Register creates a new user and issues a token bound to it.
func (s *AuthService) Register(ctx context.Context, handle, secret string) (domain.User, string, error) {
	if err := validateHandle(handle); err != nil {
		return domain.User{}, "", err
	}
	if secret == "" {
		return domain.User{}, "", validationError("secret is required")
	}

	// Pre-check for a friendlier error; the UNIQUE index on handle is the
	// actual source of truth when two registrations race.
	_, err := s.Store.Users().GetUserByHandle(ctx, handle)
	if err == nil {
		return domain.User{}, "", ErrHandleTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, "", fmt.Errorf("lookup handle: %w", err)
	}

	hash, err := cryptox.HashSecret(secret)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash secret: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:         idx.New().String(),
		Handle:     handle,
		SecretHash: hash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrHandleTaken
		}
		return domain.User{}, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(user, now)
	if err != nil {
		return domain.User{}, "", err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies a handle/secret pair and issues a token on success. Unknown
// handles and wrong secrets are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, handle, secret string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login failed: unknown handle")
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("lookup handle: %w", err)
	}

	if err := cryptox.VerifySecret(secret, user.SecretHash); err != nil {
		log.Info("login failed: secret mismatch", "user_id", user.ID)
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user, time.Now().UTC())
	if err != nil {
		return domain.User{}, "", err
	}

	return user, token, nil
}

// Profile returns the user's record and aggregate task statistics.
func (s *AuthService) Profile(ctx context.Context, userID string) (domain.User, domain.UserStats, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, domain.UserStats{}, err
	}

	stats, err := s.Store.Users().UserStats(ctx, userID)
	if err != nil {
		return domain.User{}, domain.UserStats{}, fmt.Errorf("user stats: %w", err)
	}

	return user, stats, nil
}

func (s *AuthService) issueToken(u domain.User, now time.Time) (string, error) {
	claims := jwtx.NewIdentityClaims(u.ID, u.Handle, s.Issuer, s.TokenTTL, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func validateHandle(handle string) error {
	if handle == "" {
		return validationError("handle is required")
	}
	if utf8.RuneCountInString(handle) > maxHandleLength {
		return validationError(fmt.Sprintf("handle must be at most %d characters", maxHandleLength))
	}
	return nil
}
