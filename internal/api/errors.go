package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/service"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Anything not recognised is a server error.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Unknown or malformed token
	case errors.Is(err, auth.ErrTokenNotFound),
		errors.Is(err, service.ErrOwnerNotFound):
		return http.StatusForbidden

	// Missing or foreign task
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	// Bad request content
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError writes the failure response matching err.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithFailure(w, r, MapErrorToStatusCode(err), err)
}

// NotFound answers unmatched routes, including task ids that are not integers.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithFailure(w, r, http.StatusNotFound, nil)
}

// MethodNotAllowed answers known paths requested with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithFailure(w, r, http.StatusMethodNotAllowed, nil)
}
