package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasklist-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every read and write except Create is scoped by owner: a task that exists
// under a different owner is reported as ErrTaskNotFound.
type TaskStore interface {
	// Create inserts a task and sets task.ID from the store-assigned identifier.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// SetURI writes the canonical uri of a freshly created task.
	// Returns ErrTaskNotFound if the task does not exist.
	SetURI(ctx context.Context, id int64, uri string) error

	// GetForOwner retrieves a task by ID if it belongs to ownerID.
	GetForOwner(ctx context.Context, ownerID, id int64) (*domain.Task, error)

	// ListByOwner returns all tasks of ownerID ordered by ID.
	// Returns an empty slice if there are none.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)

	// Update persists title, description and done of an owned task.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID if it belongs to ownerID.
	Delete(ctx context.Context, ownerID, id int64) error

	// DeleteByOwner removes every task of ownerID and returns how many were removed.
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
