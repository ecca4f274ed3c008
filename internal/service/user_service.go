package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// MaxTokenAttempts bounds how many fresh tokens CreateUser tries when the
// store reports a collision.
const MaxTokenAttempts = 3

// UserService provides registration, lookup and removal of task-list owners.
type UserService interface {
	// CreateUser registers a new owner and returns its access token.
	CreateUser(ctx context.Context) (string, error)

	// GetUser returns the owner's tasks in summary form.
	GetUser(ctx context.Context, token string) ([]domain.TaskSummary, error)

	// DeleteUser removes the owner together with all of its tasks.
	DeleteUser(ctx context.Context, token string) error
}

type userServiceImpl struct {
	userStore  store.UserStore
	taskStore  store.TaskStore
	transactor store.Transactor
	tokens     auth.TokenAuthority
	logger     *slog.Logger
}

// NewUserService creates a new UserService
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	taskStore store.TaskStore,
	transactor store.Transactor,
	tokens auth.TokenAuthority,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, NewUserServiceError("create_service", "userStore cannot be nil", nil)
	}
	if taskStore == nil {
		return nil, NewUserServiceError("create_service", "taskStore cannot be nil", nil)
	}
	if transactor == nil {
		return nil, NewUserServiceError("create_service", "transactor cannot be nil", nil)
	}
	if tokens == nil {
		return nil, NewUserServiceError("create_service", "tokens cannot be nil", nil)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore:  userStore,
		taskStore:  taskStore,
		transactor: transactor,
		tokens:     tokens,
		logger:     logger.With("component", "user_service"),
	}, nil
}

// CreateUser implements UserService.CreateUser
// Each attempt runs in its own transaction because a unique violation aborts
// the transaction it happens in.
func (s *userServiceImpl) CreateUser(ctx context.Context) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var lastErr error
	for attempt := 1; attempt <= MaxTokenAttempts; attempt++ {
		token, err := s.tokens.Issue()
		if err != nil {
			log.Error("failed to issue token", "error", err)
			return "", NewUserServiceError("create_user", "failed to issue token", err)
		}

		user, err := domain.NewUser(token)
		if err != nil {
			return "", NewUserServiceError("create_user", "failed to create user object", err)
		}

		err = s.transactor.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
			return s.userStore.WithTx(tx).Create(ctx, user)
		})
		if err == nil {
			log.Info("user created successfully", "user_id", user.ID)
			return token, nil
		}

		if !errors.Is(err, store.ErrTokenExists) {
			log.Error("failed to save user", "error", err)
			return "", NewUserServiceError("create_user", "failed to save user", err)
		}

		log.Warn("token collision, retrying", "attempt", attempt)
		lastErr = err
	}

	log.Error("exhausted token attempts", "attempts", MaxTokenAttempts)
	return "", NewUserServiceError("create_user", "could not allocate a unique token", lastErr)
}

// GetUser implements UserService.GetUser
func (s *userServiceImpl) GetUser(ctx context.Context, token string) ([]domain.TaskSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	owner, err := resolveOwner(ctx, s.userStore, token, log)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			return nil, err
		}
		log.Error("failed to resolve owner", "error", err)
		return nil, NewUserServiceError("get_user", "failed to resolve owner", err)
	}

	tasks, err := s.taskStore.ListByOwner(ctx, owner.ID)
	if err != nil {
		log.Error("failed to list tasks", "error", err, "user_id", owner.ID)
		return nil, NewUserServiceError("get_user", "failed to list tasks", err)
	}

	summaries := make([]domain.TaskSummary, 0, len(tasks))
	for _, task := range tasks {
		summaries = append(summaries, task.Summary())
	}
	return summaries, nil
}

// DeleteUser implements UserService.DeleteUser
// Tasks are removed before the user in the same transaction so no orphan
// task is ever visible.
func (s *userServiceImpl) DeleteUser(ctx context.Context, token string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var removed int64
	var ownerID int64
	err := s.transactor.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		owner, err := resolveOwner(ctx, s.userStore.WithTx(tx), token, log)
		if err != nil {
			if errors.Is(err, ErrOwnerNotFound) {
				return err
			}
			return NewUserServiceError("delete_user", "failed to resolve owner", err)
		}
		ownerID = owner.ID

		removed, err = s.taskStore.WithTx(tx).DeleteByOwner(ctx, owner.ID)
		if err != nil {
			return NewUserServiceError("delete_user", "failed to delete tasks", err)
		}

		if err := s.userStore.WithTx(tx).Delete(ctx, owner.ID); err != nil {
			if store.IsNotFoundError(err) {
				return ErrOwnerNotFound
			}
			return NewUserServiceError("delete_user", "failed to delete user", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			return err
		}
		log.Error("failed to delete user", "error", err)
		var serviceErr *UserServiceError
		if errors.As(err, &serviceErr) {
			return err
		}
		return NewUserServiceError("delete_user", "transaction failed", err)
	}

	log.Info("user deleted successfully",
		"user_id", ownerID,
		"tasks_removed", removed)
	return nil
}
