package api

import (
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/service"
)

// UserHandler handles owner registration, lookup and removal.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser handles POST /api/v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	token, err := h.userService.CreateUser(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateUserResponse{
		Result: true,
		Token:  token,
	})
}

// GetUser handles GET /api/v1/users/{token}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.userService.GetUser(r.Context(), getToken(r))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserTasksResponse{
		Result: true,
		Tasks:  tasks,
	})
}

// DeleteUser handles DELETE /api/v1/users/{token}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.DeleteUser(r.Context(), getToken(r)); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithResult(w, r, http.StatusOK)
}
