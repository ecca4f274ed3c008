package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasklist-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store and sets user.ID.
	// Returns ErrTokenExists if the token is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByToken retrieves the user owning the given token.
	// Returns ErrUserNotFound if no user has that token.
	GetByToken(ctx context.Context, token string) (*domain.User, error)

	// Delete removes a user by ID. The caller must have removed the user's
	// tasks first, inside the same transaction.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
