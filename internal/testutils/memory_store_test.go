package testutils_test

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/phrazzld/tasklist-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, s *testutils.MemoryStore, token string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(token)
	require.NoError(t, err)
	require.NoError(t, s.Users().Create(context.Background(), user))
	return user
}

func createTask(t *testing.T, s *testutils.MemoryStore, ownerID int64, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(ownerID, title, nil)
	require.NoError(t, err)
	require.NoError(t, s.Tasks().Create(context.Background(), task))
	return task
}

func TestMemoryStore_Users(t *testing.T) {
	ctx := context.Background()
	s := testutils.NewMemoryStore()

	user := createUser(t, s, "token-a")
	assert.Equal(t, int64(1), user.ID)

	got, err := s.Users().GetByToken(ctx, "token-a")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	dup, err := domain.NewUser("token-a")
	require.NoError(t, err)
	assert.ErrorIs(t, s.Users().Create(ctx, dup), store.ErrTokenExists)

	_, err = s.Users().GetByToken(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	require.NoError(t, s.Users().Delete(ctx, user.ID))
	assert.ErrorIs(t, s.Users().Delete(ctx, user.ID), store.ErrUserNotFound)
	assert.Equal(t, 0, s.UserCount())
}

func TestMemoryStore_ForeignKeys(t *testing.T) {
	ctx := context.Background()
	s := testutils.NewMemoryStore()

	orphan, err := domain.NewTask(99, "orphan", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Tasks().Create(ctx, orphan), store.ErrInvalidEntity)

	user := createUser(t, s, "token-a")
	createTask(t, s, user.ID, "keep me")
	assert.ErrorIs(t, s.Users().Delete(ctx, user.ID), store.ErrInvalidEntity)
}

func TestMemoryStore_TasksAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	s := testutils.NewMemoryStore()

	a := createUser(t, s, "token-a")
	b := createUser(t, s, "token-b")
	first := createTask(t, s, a.ID, "first")
	second := createTask(t, s, a.ID, "second")
	createTask(t, s, b.ID, "other")

	list, err := s.Tasks().ListByOwner(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	empty := createUser(t, s, "token-c")
	list, err = s.Tasks().ListByOwner(ctx, empty.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = s.Tasks().GetForOwner(ctx, b.ID, first.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.ErrorIs(t, s.Tasks().Delete(ctx, b.ID, first.ID), store.ErrTaskNotFound)

	removed, err := s.Tasks().DeleteByOwner(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.Equal(t, 1, s.TaskCount())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := testutils.NewMemoryStore()
	user := createUser(t, s, "token-a")
	task := createTask(t, s, user.ID, "title")

	got, err := s.Tasks().GetForOwner(ctx, user.ID, task.ID)
	require.NoError(t, err)
	got.Title = "changed"

	again, err := s.Tasks().GetForOwner(ctx, user.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "title", again.Title)
}

func TestMemoryStore_UpdateAndSetURI(t *testing.T) {
	ctx := context.Background()
	s := testutils.NewMemoryStore()
	user := createUser(t, s, "token-a")
	task := createTask(t, s, user.ID, "title")

	require.NoError(t, s.Tasks().SetURI(ctx, task.ID, "http://localhost/api/v1/tasks/1"))
	assert.ErrorIs(t, s.Tasks().SetURI(ctx, 42, "x"), store.ErrTaskNotFound)

	task.Done = true
	task.URI = "ignored"
	require.NoError(t, s.Tasks().Update(ctx, task))

	got, err := s.Tasks().GetForOwner(ctx, user.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)
	assert.Equal(t, "http://localhost/api/v1/tasks/1", got.URI)
}

func TestMemoryStore_RunInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := testutils.NewMemoryStore()
	user := createUser(t, s, "token-a")

	boom := errors.New("boom")
	err := s.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		createTask(t, s, user.ID, "lost")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.TaskCount())

	assert.Panics(t, func() {
		_ = s.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
			createTask(t, s, user.ID, "lost too")
			panic("boom")
		})
	})
	assert.Equal(t, 0, s.TaskCount())

	err = s.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.Tasks().WithTx(tx).Create(ctx, &domain.Task{UserID: user.ID, Title: "kept"})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.TaskCount())
}

func TestMemoryStore_FailNext(t *testing.T) {
	ctx := context.Background()
	s := testutils.NewMemoryStore()
	user := createUser(t, s, "token-a")
	task := createTask(t, s, user.ID, "title")

	injected := errors.New("disk full")
	s.FailNext(testutils.OpSetURI, injected)
	assert.ErrorIs(t, s.Tasks().SetURI(ctx, task.ID, "x"), injected)
	assert.NoError(t, s.Tasks().SetURI(ctx, task.ID, "x"))
}

func TestTestSlogHandler(t *testing.T) {
	handler := testutils.NewTestSlogHandler()
	log := slog.New(handler).With("component", "test")

	log.Info("first", "n", 1)
	log.Warn("second")

	entries := handler.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "first", entries[0]["message"])
	assert.Equal(t, "test", entries[0]["component"])
	assert.Equal(t, int64(1), entries[0]["n"])
	assert.Equal(t, "WARN", entries[1]["level"])

	handler.Clear()
	assert.Empty(t, handler.Entries())
}
