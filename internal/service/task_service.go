package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// TaskService defines the operations on the tasks of a single owner.
// The owner is always identified by its access token.
type TaskService interface {
	// ListTasks returns every task of the owner in summary form (no id).
	ListTasks(ctx context.Context, token string) ([]domain.TaskSummary, error)

	// ListTasksDetailed returns every task of the owner including its id.
	ListTasksDetailed(ctx context.Context, token string) ([]domain.TaskDetail, error)

	// GetTask returns one task of the owner in summary form.
	GetTask(ctx context.Context, token string, taskID int64) (*domain.TaskSummary, error)

	// CreateTask persists a new task with done=false and materializes its uri.
	CreateTask(ctx context.Context, token, title string, description *string) (*domain.TaskDetail, error)

	// UpdateTask applies a partial update. A nil patch means the request had no
	// usable body and is rejected; an empty patch is a no-op.
	UpdateTask(ctx context.Context, token string, taskID int64, patch *domain.TaskPatch) (*domain.TaskUpdate, error)

	// DeleteTask removes one task of the owner.
	DeleteTask(ctx context.Context, token string, taskID int64) error
}

type taskServiceImpl struct {
	userStore  store.UserStore
	taskStore  store.TaskStore
	transactor store.Transactor
	baseURL    string
	logger     *slog.Logger
}

// NewTaskService creates a new TaskService.
// baseURL is the API root every task uri is built from, e.g. "http://host/api/v1/".
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	userStore store.UserStore,
	taskStore store.TaskStore,
	transactor store.Transactor,
	baseURL string,
	logger *slog.Logger,
) (TaskService, error) {
	if userStore == nil {
		return nil, NewTaskServiceError("create_service", "userStore cannot be nil", nil)
	}
	if taskStore == nil {
		return nil, NewTaskServiceError("create_service", "taskStore cannot be nil", nil)
	}
	if transactor == nil {
		return nil, NewTaskServiceError("create_service", "transactor cannot be nil", nil)
	}
	if baseURL == "" {
		return nil, NewTaskServiceError("create_service", "baseURL cannot be empty", nil)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		userStore:  userStore,
		taskStore:  taskStore,
		transactor: transactor,
		baseURL:    baseURL,
		logger:     logger.With("component", "task_service"),
	}, nil
}

func (s *taskServiceImpl) listOwned(ctx context.Context, op, token string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	owner, err := resolveOwner(ctx, s.userStore, token, log)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			return nil, err
		}
		return nil, NewTaskServiceError(op, "failed to resolve owner", err)
	}

	tasks, err := s.taskStore.ListByOwner(ctx, owner.ID)
	if err != nil {
		log.Error("failed to list tasks",
			"error", err,
			"user_id", owner.ID)
		return nil, NewTaskServiceError(op, "failed to list tasks", err)
	}

	return tasks, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, token string) ([]domain.TaskSummary, error) {
	tasks, err := s.listOwned(ctx, "list_tasks", token)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.TaskSummary, 0, len(tasks))
	for _, task := range tasks {
		summaries = append(summaries, task.Summary())
	}
	return summaries, nil
}

// ListTasksDetailed implements TaskService.ListTasksDetailed
func (s *taskServiceImpl) ListTasksDetailed(ctx context.Context, token string) ([]domain.TaskDetail, error) {
	tasks, err := s.listOwned(ctx, "list_tasks_detailed", token)
	if err != nil {
		return nil, err
	}

	details := make([]domain.TaskDetail, 0, len(tasks))
	for _, task := range tasks {
		details = append(details, task.Detail())
	}
	return details, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, token string, taskID int64) (*domain.TaskSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	owner, err := resolveOwner(ctx, s.userStore, token, log)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			return nil, err
		}
		return nil, NewTaskServiceError("get_task", "failed to resolve owner", err)
	}

	task, err := s.taskStore.GetForOwner(ctx, owner.ID, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for owner",
				"task_id", taskID,
				"user_id", owner.ID)
			return nil, ErrTaskNotFound
		}
		log.Error("failed to get task",
			"error", err,
			"task_id", taskID)
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	summary := task.Summary()
	return &summary, nil
}

// CreateTask implements TaskService.CreateTask
// The insert and the uri write share one transaction, so a task never exists without its uri.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	token, title string,
	description *string,
) (*domain.TaskDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created *domain.Task
	err := s.transactor.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		owner, err := resolveOwner(ctx, s.userStore.WithTx(tx), token, log)
		if err != nil {
			if errors.Is(err, ErrOwnerNotFound) {
				return err
			}
			return NewTaskServiceError("create_task", "failed to resolve owner", err)
		}

		task, err := domain.NewTask(owner.ID, title, description)
		if err != nil {
			log.Debug("rejected invalid task", "error", err)
			return invalidInput(err)
		}

		txStore := s.taskStore.WithTx(tx)
		if err := txStore.Create(ctx, task); err != nil {
			return NewTaskServiceError("create_task", "failed to save task", err)
		}

		uri := domain.TaskURI(s.baseURL, task.ID)
		if err := txStore.SetURI(ctx, task.ID, uri); err != nil {
			return NewTaskServiceError("create_task", "failed to save task uri", err)
		}
		task.URI = uri

		created = task
		return nil
	})
	if err != nil {
		return nil, s.logFailure(log, "create_task", err)
	}

	log.Info("task created successfully",
		"task_id", created.ID,
		"user_id", created.UserID)

	detail := created.Detail()
	return &detail, nil
}

// UpdateTask implements TaskService.UpdateTask
// Checks run in order: owner, task existence, body presence, field validity.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	token string,
	taskID int64,
	patch *domain.TaskPatch,
) (*domain.TaskUpdate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := s.transactor.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		owner, err := resolveOwner(ctx, s.userStore.WithTx(tx), token, log)
		if err != nil {
			if errors.Is(err, ErrOwnerNotFound) {
				return err
			}
			return NewTaskServiceError("update_task", "failed to resolve owner", err)
		}

		txStore := s.taskStore.WithTx(tx)
		task, err := txStore.GetForOwner(ctx, owner.ID, taskID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrTaskNotFound
			}
			return NewTaskServiceError("update_task", "failed to retrieve task", err)
		}

		if patch == nil {
			return ErrInvalidInput
		}

		if err := task.Apply(*patch); err != nil {
			log.Debug("rejected invalid update", "error", err, "task_id", taskID)
			return invalidInput(err)
		}

		if !patch.IsEmpty() {
			if err := txStore.Update(ctx, task); err != nil {
				return NewTaskServiceError("update_task", "failed to save task", err)
			}
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, s.logFailure(log, "update_task", err)
	}

	log.Info("task updated successfully",
		"task_id", updated.ID,
		"user_id", updated.UserID)

	view := updated.UpdateView()
	return &view, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, token string, taskID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.transactor.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		owner, err := resolveOwner(ctx, s.userStore.WithTx(tx), token, log)
		if err != nil {
			if errors.Is(err, ErrOwnerNotFound) {
				return err
			}
			return NewTaskServiceError("delete_task", "failed to resolve owner", err)
		}

		if err := s.taskStore.WithTx(tx).Delete(ctx, owner.ID, taskID); err != nil {
			if store.IsNotFoundError(err) {
				return ErrTaskNotFound
			}
			return NewTaskServiceError("delete_task", "failed to delete task", err)
		}
		return nil
	})
	if err != nil {
		return s.logFailure(log, "delete_task", err)
	}

	log.Info("task deleted successfully", "task_id", taskID)
	return nil
}

// logFailure logs err at a level matching its kind and returns it, wrapping
// transaction-level failures that did not originate in the unit of work.
func (s *taskServiceImpl) logFailure(log *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, ErrOwnerNotFound), errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrInvalidInput):
		log.Debug("task operation rejected", "operation", op, "error", err)
		return err
	}

	log.Error("task operation failed", "operation", op, "error", err)
	var serviceErr *TaskServiceError
	if errors.As(err, &serviceErr) {
		return err
	}
	return NewTaskServiceError(op, "transaction failed", err)
}
