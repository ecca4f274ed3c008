package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// Operation names accepted by MemoryStore.FailNext.
const (
	OpCreateUser    = "users.create"
	OpDeleteUser    = "users.delete"
	OpCreateTask    = "tasks.create"
	OpSetURI        = "tasks.set_uri"
	OpUpdateTask    = "tasks.update"
	OpDeleteTask    = "tasks.delete"
	OpDeleteByOwner = "tasks.delete_by_owner"
)

// MemoryStore is an in-memory Resource Store. It mirrors the PostgreSQL
// constraints the services rely on: unique tokens, tasks must reference an
// existing user, and a user with tasks cannot be deleted.
//
// RunInTx serializes transactions and restores a snapshot when the unit of
// work fails, so rollback behaviour can be asserted end to end.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	nextUserID int64
	nextTaskID int64
	users      map[int64]domain.User
	tokens     map[string]int64
	tasks      map[int64]domain.Task
	failures   map[string]error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]domain.User),
		tokens:   make(map[string]int64),
		tasks:    make(map[int64]domain.Task),
		failures: make(map[string]error),
	}
}

var _ store.Transactor = (*MemoryStore)(nil)

// Users returns the store.UserStore view of s.
func (s *MemoryStore) Users() store.UserStore { return &memoryUserStore{s: s} }

// Tasks returns the store.TaskStore view of s.
func (s *MemoryStore) Tasks() store.TaskStore { return &memoryTaskStore{s: s} }

// FailNext makes the next call of op return err.
func (s *MemoryStore) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// UserCount returns the number of stored users.
func (s *MemoryStore) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// TaskCount returns the number of stored tasks.
func (s *MemoryStore) TaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

type snapshot struct {
	users  map[int64]domain.User
	tokens map[string]int64
	tasks  map[int64]domain.Task
}

func (s *MemoryStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		users:  make(map[int64]domain.User, len(s.users)),
		tokens: make(map[string]int64, len(s.tokens)),
		tasks:  make(map[int64]domain.Task, len(s.tasks)),
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.tokens {
		snap.tokens[k] = v
	}
	for k, v := range s.tasks {
		snap.tasks[k] = v
	}
	return snap
}

func (s *MemoryStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// ids are not reused after a rollback, as with a database sequence
	s.users = snap.users
	s.tokens = snap.tokens
	s.tasks = snap.tasks
}

// RunInTx implements store.Transactor. fn receives a nil *sql.Tx; the
// memory stores ignore it in WithTx.
func (s *MemoryStore) RunInTx(ctx context.Context, fn store.TxFn) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			// ALLOW-PANIC: Propagating caught panic from transaction
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(ctx, nil)
}

// takeFailure must be called with mu held.
func (s *MemoryStore) takeFailure(op string) error {
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return err
}

func cloneTask(t domain.Task) *domain.Task {
	if t.Description != nil {
		description := *t.Description
		t.Description = &description
	}
	return &t
}

type memoryUserStore struct {
	s *MemoryStore
}

var _ store.UserStore = (*memoryUserStore)(nil)

func (u *memoryUserStore) Create(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(OpCreateUser); err != nil {
		return err
	}
	if _, taken := s.tokens[user.Token]; taken {
		return store.ErrTokenExists
	}

	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = *user
	s.tokens[user.Token] = user.ID
	return nil
}

func (u *memoryUserStore) GetByToken(_ context.Context, token string) (*domain.User, error) {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.tokens[token]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (u *memoryUserStore) Delete(_ context.Context, id int64) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(OpDeleteUser); err != nil {
		return err
	}
	user, ok := s.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	for _, task := range s.tasks {
		if task.UserID == id {
			return fmt.Errorf("%w: user %d still owns tasks", store.ErrInvalidEntity, id)
		}
	}

	delete(s.users, id)
	delete(s.tokens, user.Token)
	return nil
}

func (u *memoryUserStore) WithTx(_ *sql.Tx) store.UserStore { return u }

type memoryTaskStore struct {
	s *MemoryStore
}

var _ store.TaskStore = (*memoryTaskStore)(nil)

func (m *memoryTaskStore) Create(_ context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(OpCreateTask); err != nil {
		return err
	}
	if _, ok := s.users[task.UserID]; !ok {
		return fmt.Errorf("%w: user with ID %d not found", store.ErrInvalidEntity, task.UserID)
	}

	s.nextTaskID++
	task.ID = s.nextTaskID
	s.tasks[task.ID] = *cloneTask(*task)
	return nil
}

func (m *memoryTaskStore) SetURI(_ context.Context, id int64, uri string) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(OpSetURI); err != nil {
		return err
	}
	task, ok := s.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	task.URI = uri
	s.tasks[id] = task
	return nil
}

func (m *memoryTaskStore) GetForOwner(_ context.Context, ownerID, id int64) (*domain.Task, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (m *memoryTaskStore) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Task, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := []*domain.Task{}
	for _, task := range s.tasks {
		if task.UserID == ownerID {
			tasks = append(tasks, cloneTask(task))
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (m *memoryTaskStore) Update(_ context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(OpUpdateTask); err != nil {
		return err
	}
	stored, ok := s.tasks[task.ID]
	if !ok || stored.UserID != task.UserID {
		return store.ErrTaskNotFound
	}

	updated := *cloneTask(*task)
	stored.Title = updated.Title
	stored.Description = updated.Description
	stored.Done = updated.Done
	stored.UpdatedAt = updated.UpdatedAt
	s.tasks[task.ID] = stored
	return nil
}

func (m *memoryTaskStore) Delete(_ context.Context, ownerID, id int64) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(OpDeleteTask); err != nil {
		return err
	}
	task, ok := s.tasks[id]
	if !ok || task.UserID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (m *memoryTaskStore) DeleteByOwner(_ context.Context, ownerID int64) (int64, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(OpDeleteByOwner); err != nil {
		return 0, err
	}
	var removed int64
	for id, task := range s.tasks {
		if task.UserID == ownerID {
			delete(s.tasks, id)
			removed++
		}
	}
	return removed, nil
}

func (m *memoryTaskStore) WithTx(_ *sql.Tx) store.TaskStore { return m }
