package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasklist-api/internal/api/middleware"
	"github.com/phrazzld/tasklist-api/internal/service"
)

// TaskIDParam is the route parameter holding the numeric task id.
const TaskIDParam = "id"

// getToken returns the access token from the route.
func getToken(r *http.Request) string {
	return chi.URLParam(r, middleware.TokenParam)
}

// getTaskID parses the task id from the route. An id that is not a positive
// 64-bit integer cannot name any task, so it is reported as ErrTaskNotFound.
func getTaskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, TaskIDParam), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrTaskNotFound
	}
	return id, nil
}
