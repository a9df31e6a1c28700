package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Task statuses. StatusTodo is the default for new tasks.
const (
	StatusTodo       = "To Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// ValidStatus reports whether s is one of the three task statuses.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusCompleted
}

// Task belongs to exactly one user; UserID is set at creation and never changes.
type Task struct {
	ID          int            `json:"id"`
	UserID      int            `json:"user_id"`
	Title       string         `json:"title"`
	Description sql.NullString `json:"-"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

// MarshalJSON renders Description as a plain nullable string.
func (t Task) MarshalJSON() ([]byte, error) {
	type alias Task
	var desc *string
	if t.Description.Valid {
		desc = &t.Description.String
	}
	return json.Marshal(struct {
		alias
		Description *string `json:"description"`
	}{alias(t), desc})
}
