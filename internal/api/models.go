package api

import (
	"github.com/phrazzld/tasklist-api/internal/domain"
)

// CreateTaskRequest defines the payload for creating a task.
// Title is a pointer so that an absent title and a null title are both rejected.
type CreateTaskRequest struct {
	Title       *string `json:"title"       validate:"required,min=1,max=50"`
	Description *string `json:"description"`
}

// CreateUserResponse is returned after registering a new owner.
type CreateUserResponse struct {
	Result bool   `json:"result"`
	Token  string `json:"token"`
}

// UserTasksResponse lists an owner's tasks in summary form.
type UserTasksResponse struct {
	Result bool                 `json:"result"`
	Tasks  []domain.TaskSummary `json:"tasks"`
}
