package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/store"
)

const (
	// TokenBytes is the amount of randomness in a token.
	TokenBytes = 16
	// TokenLength is the length of the hex-encoded token.
	TokenLength = TokenBytes * 2
)

// TokenAuthority defines operations for issuing and resolving access tokens.
type TokenAuthority interface {
	// Issue returns a fresh random token. It does not persist anything.
	Issue() (string, error)

	// Validate resolves token to its owning user.
	// Returns ErrTokenNotFound if the token is malformed or unknown.
	Validate(ctx context.Context, token string) (*domain.User, error)
}

// StoreTokenAuthority implements TokenAuthority on top of a UserStore.
type StoreTokenAuthority struct {
	users  store.UserStore
	random io.Reader
	logger *slog.Logger
}

// Ensure StoreTokenAuthority implements TokenAuthority
var _ TokenAuthority = (*StoreTokenAuthority)(nil)

// NewTokenAuthority creates a TokenAuthority that draws from crypto/rand.
func NewTokenAuthority(users store.UserStore, logger *slog.Logger) *StoreTokenAuthority {
	return newTokenAuthority(users, rand.Reader, logger)
}

func newTokenAuthority(users store.UserStore, random io.Reader, logger *slog.Logger) *StoreTokenAuthority {
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("users cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreTokenAuthority{
		users:  users,
		random: random,
		logger: logger.With(slog.String("component", "token_authority")),
	}
}

// Issue implements TokenAuthority.Issue
func (a *StoreTokenAuthority) Issue() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := io.ReadFull(a.random, buf); err != nil {
		a.logger.Error("failed to read random bytes", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}
	return hex.EncodeToString(buf), nil
}

// Validate implements TokenAuthority.Validate
func (a *StoreTokenAuthority) Validate(ctx context.Context, token string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	if !IsWellFormed(token) {
		log.Debug("rejected malformed token", slog.Int("length", len(token)))
		return nil, ErrTokenNotFound
	}

	user, err := a.users.GetByToken(ctx, token)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("token does not belong to any user")
			return nil, ErrTokenNotFound
		}
		log.Error("failed to look up token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}

	return user, nil
}

// IsWellFormed reports whether token could have been produced by Issue.
func IsWellFormed(token string) bool {
	if len(token) != TokenLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
