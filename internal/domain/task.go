package domain

import (
	"strconv"
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the maximum number of characters in a task title.
const MaxTitleLength = 50

// Task is a single to-do item owned by exactly one User.
//
// UserID is set at creation and never changes. URI is derived from ID with
// TaskURI and written once, right after the store has assigned the ID.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description *string
	Done        bool
	URI         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask creates a not-yet-persisted Task for the given owner with done=false.
func NewTask(userID int64, title string, description *string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Done:        false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.UserID == 0 {
		return ErrMissingOwner
	}
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// Apply merges the fields present in p into t. Nothing is modified when the
// result would be invalid. Owner, ID and URI are never touched.
func (t *Task) Apply(p TaskPatch) error {
	updated := *t

	if p.Title.Set {
		if p.Title.Null {
			return ErrEmptyTitle
		}
		updated.Title = p.Title.Value
	}
	if p.Description.Set {
		if p.Description.Null {
			updated.Description = nil
		} else {
			description := p.Description.Value
			updated.Description = &description
		}
	}
	if p.Done.Set {
		if p.Done.Null {
			return ErrNullDone
		}
		updated.Done = p.Done.Value
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	if !p.IsEmpty() {
		updated.UpdatedAt = time.Now().UTC()
	}
	*t = updated
	return nil
}

// TaskURI returns the canonical self link of the task with the given id.
// baseURL already ends with a slash, e.g. "http://host/api/v1/".
func TaskURI(baseURL string, id int64) string {
	return baseURL + "tasks/" + strconv.FormatInt(id, 10)
}

// TaskPatch describes a partial update. Only fields with Set are applied.
type TaskPatch struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Done        Optional[bool]   `json:"done"`
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Done.Set
}

// TaskSummary is the list-by-user projection. It carries no id.
type TaskSummary struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Done        bool    `json:"done"`
	URI         string  `json:"uri"`
}

// TaskDetail is the full projection returned by creation and the task listing.
type TaskDetail struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Done        bool    `json:"done"`
	URI         string  `json:"uri"`
}

// TaskUpdate is the projection returned after a partial update; it has no uri.
type TaskUpdate struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Done        bool    `json:"done"`
}

// Summary projects t to a TaskSummary.
func (t *Task) Summary() TaskSummary {
	return TaskSummary{
		Title:       t.Title,
		Description: t.Description,
		Done:        t.Done,
		URI:         t.URI,
	}
}

// Detail projects t to a TaskDetail.
func (t *Task) Detail() TaskDetail {
	return TaskDetail{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Done:        t.Done,
		URI:         t.URI,
	}
}

// UpdateView projects t to a TaskUpdate.
func (t *Task) UpdateView() TaskUpdate {
	return TaskUpdate{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Done:        t.Done,
	}
}
