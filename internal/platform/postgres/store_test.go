package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskRowColumns = []string{
	"id", "user_id", "title", "description", "done", "uri", "created_at", "updated_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func strPtr(s string) *string { return &s }

func TestNewStores_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { NewPostgresUserStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresTaskStore(nil, nil) })
}

func TestPostgresUserStore_Create(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)
	token := "0123456789abcdef0123456789abcdef"

	t.Run("success sets id", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(token, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		user, err := domain.NewUser(token)
		require.NoError(t, err)
		require.NoError(t, s.Create(context.Background(), user))
		assert.Equal(t, int64(7), user.ID)
	})

	t.Run("unique violation maps to ErrTokenExists", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(token, sqlmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_token_key"})

		user, err := domain.NewUser(token)
		require.NoError(t, err)
		err = s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrTokenExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("empty token is rejected before the query", func(t *testing.T) {
		err := s.Create(context.Background(), &domain.User{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_GetByToken(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("known").
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "created_at"}).
			AddRow(int64(3), "known", now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("broken").
		WillReturnError(errors.New("connection reset"))

	user, err := s.GetByToken(context.Background(), "known")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "known", user.Token)

	_, err = s.GetByToken(context.Background(), "unknown")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = s.GetByToken(context.Background(), "broken")
	require.Error(t, err)
	assert.False(t, store.IsNotFoundError(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_Delete(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "tasks_user_id_fkey"})

	assert.NoError(t, s.Delete(context.Background(), 1))
	assert.ErrorIs(t, s.Delete(context.Background(), 2), store.ErrUserNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), 3), store.ErrInvalidEntity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_Create(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresTaskStore(db, nil)

	t.Run("success sets id", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
			WithArgs(int64(5), "Buy milk", "two litres", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		task, err := domain.NewTask(5, "Buy milk", strPtr("two litres"))
		require.NoError(t, err)
		require.NoError(t, s.Create(context.Background(), task))
		assert.Equal(t, int64(42), task.ID)
	})

	t.Run("nil description is stored as NULL", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
			WithArgs(int64(5), "Walk", nil, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(43)))

		task, err := domain.NewTask(5, "Walk", nil)
		require.NoError(t, err)
		require.NoError(t, s.Create(context.Background(), task))
	})

	t.Run("missing owner maps to ErrInvalidEntity", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		task, err := domain.NewTask(99, "Orphan", nil)
		require.NoError(t, err)
		assert.ErrorIs(t, s.Create(context.Background(), task), store.ErrInvalidEntity)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_SetURI(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresTaskStore(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET uri = $1 WHERE id = $2")).
		WithArgs("http://h/api/v1/tasks/1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET uri = $1 WHERE id = $2")).
		WithArgs("http://h/api/v1/tasks/2", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.SetURI(context.Background(), 1, "http://h/api/v1/tasks/1"))
	assert.ErrorIs(t, s.SetURI(context.Background(), 2, "http://h/api/v1/tasks/2"), store.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_GetForOwner(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresTaskStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(1), int64(5)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(int64(1), int64(5), "Read", nil, true, "http://h/api/v1/tasks/1", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(1), int64(6)).
		WillReturnError(sql.ErrNoRows)

	task, err := s.GetForOwner(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, "Read", task.Title)
	assert.Nil(t, task.Description)
	assert.True(t, task.Done)
	assert.Equal(t, "http://h/api/v1/tasks/1", task.URI)

	_, err = s.GetForOwner(context.Background(), 6, 1)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_ListByOwner(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresTaskStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(int64(1), int64(5), "a", "first", false, "u1", now, now).
			AddRow(int64(2), int64(5), "b", nil, true, nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
		WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns))

	tasks, err := s.ListByOwner(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.NotNil(t, tasks[0].Description)
	assert.Equal(t, "first", *tasks[0].Description)
	assert.Nil(t, tasks[1].Description)
	assert.Equal(t, "", tasks[1].URI)

	empty, err := s.ListByOwner(context.Background(), 6)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_Update(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresTaskStore(db, nil)

	task := &domain.Task{ID: 1, UserID: 5, Title: "New", Done: true, UpdatedAt: time.Now().UTC()}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks")).
		WithArgs("New", nil, true, sqlmock.AnyArg(), int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.Update(context.Background(), task))
	assert.ErrorIs(t, s.Update(context.Background(), task), store.ErrTaskNotFound)

	invalid := &domain.Task{ID: 1, UserID: 5}
	assert.ErrorIs(t, s.Update(context.Background(), invalid), domain.ErrValidation)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_Delete(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresTaskStore(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(1), int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.Delete(context.Background(), 5, 1))
	assert.ErrorIs(t, s.Delete(context.Background(), 6, 1), store.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_DeleteByOwner(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresTaskStore(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE user_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := s.DeleteByOwner(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStores_WithTx(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE user_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	users := NewPostgresUserStore(db, nil)
	tasks := NewPostgresTaskStore(db, nil)

	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tasks.WithTx(tx).DeleteByOwner(ctx, 5); err != nil {
			return err
		}
		return users.WithTx(tx).Delete(ctx, 5)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
