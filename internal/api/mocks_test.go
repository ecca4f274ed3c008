package api

import (
	"context"

	"github.com/phrazzld/tasklist-api/internal/domain"
)

// mockTaskService is a function-field implementation of service.TaskService.
type mockTaskService struct {
	ListTasksFn         func(ctx context.Context, token string) ([]domain.TaskSummary, error)
	ListTasksDetailedFn func(ctx context.Context, token string) ([]domain.TaskDetail, error)
	GetTaskFn           func(ctx context.Context, token string, taskID int64) (*domain.TaskSummary, error)
	CreateTaskFn        func(ctx context.Context, token, title string, description *string) (*domain.TaskDetail, error)
	UpdateTaskFn        func(ctx context.Context, token string, taskID int64, patch *domain.TaskPatch) (*domain.TaskUpdate, error)
	DeleteTaskFn        func(ctx context.Context, token string, taskID int64) error
}

func (m *mockTaskService) ListTasks(ctx context.Context, token string) ([]domain.TaskSummary, error) {
	return m.ListTasksFn(ctx, token)
}

func (m *mockTaskService) ListTasksDetailed(ctx context.Context, token string) ([]domain.TaskDetail, error) {
	return m.ListTasksDetailedFn(ctx, token)
}

func (m *mockTaskService) GetTask(ctx context.Context, token string, taskID int64) (*domain.TaskSummary, error) {
	return m.GetTaskFn(ctx, token, taskID)
}

func (m *mockTaskService) CreateTask(
	ctx context.Context,
	token, title string,
	description *string,
) (*domain.TaskDetail, error) {
	return m.CreateTaskFn(ctx, token, title, description)
}

func (m *mockTaskService) UpdateTask(
	ctx context.Context,
	token string,
	taskID int64,
	patch *domain.TaskPatch,
) (*domain.TaskUpdate, error) {
	return m.UpdateTaskFn(ctx, token, taskID, patch)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, token string, taskID int64) error {
	return m.DeleteTaskFn(ctx, token, taskID)
}

// mockUserService is a function-field implementation of service.UserService.
type mockUserService struct {
	CreateUserFn func(ctx context.Context) (string, error)
	GetUserFn    func(ctx context.Context, token string) ([]domain.TaskSummary, error)
	DeleteUserFn func(ctx context.Context, token string) error
}

func (m *mockUserService) CreateUser(ctx context.Context) (string, error) {
	return m.CreateUserFn(ctx)
}

func (m *mockUserService) GetUser(ctx context.Context, token string) ([]domain.TaskSummary, error) {
	return m.GetUserFn(ctx, token)
}

func (m *mockUserService) DeleteUser(ctx context.Context, token string) error {
	return m.DeleteUserFn(ctx, token)
}
