package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// resolveOwner looks up the user owning token through users, which may be
// bound to a transaction. Unknown tokens yield ErrOwnerNotFound.
func resolveOwner(
	ctx context.Context,
	users store.UserStore,
	token string,
	log *slog.Logger,
) (*domain.User, error) {
	owner, err := users.GetByToken(ctx, token)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("token does not resolve to an owner")
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	return owner, nil
}
