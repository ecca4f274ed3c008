package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/redact"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
)

// TokenParam is the route parameter holding the access token.
const TokenParam = "token"

// OwnershipGuard rejects requests whose path token does not resolve to a user.
// It must wrap every per-token route so that a bad token is answered with 403
// before any resource lookup can reveal whether a task id exists.
type OwnershipGuard struct {
	authority auth.TokenAuthority
}

// NewOwnershipGuard creates a new OwnershipGuard with the given token authority.
func NewOwnershipGuard(authority auth.TokenAuthority) *OwnershipGuard {
	return &OwnershipGuard{
		authority: authority,
	}
}

// Require resolves the {token} route parameter and adds the owning user to
// the request context.
func (g *OwnershipGuard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		token := chi.URLParam(r, TokenParam)

		user, err := g.authority.Validate(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenNotFound) {
				shared.RespondWithFailure(w, r, http.StatusForbidden, err)
				return
			}
			log.Error("failed to validate token", slog.String("error", redact.Error(err)))
			shared.RespondWithFailure(w, r, http.StatusInternalServerError, err)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser extracts the user placed in the context by Require.
func GetUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(shared.UserContextKey).(*domain.User)
	return user, ok && user != nil
}
