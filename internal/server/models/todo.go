package models

import (
	"fmt"
	"time"
)

// TodoStatus is stored as a smallint (0–3) and rendered as a string in the API.
type TodoStatus int16

const (
	StatusPending TodoStatus = iota
	StatusReady
	StatusInProgress
	StatusDone
)

var statusNames = map[TodoStatus]string{
	StatusPending:    "pending",
	StatusReady:      "ready",
	StatusInProgress: "in_progress",
	StatusDone:       "done",
}

func (s TodoStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int16(s))
}

func (s TodoStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseTodoStatus converts the API string form back to a TodoStatus.
func ParseTodoStatus(s string) (TodoStatus, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown todo status %q", s)
}

// Todo belongs to exactly one user; operations on it are only permitted
// for the owner.
type Todo struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      TodoStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
