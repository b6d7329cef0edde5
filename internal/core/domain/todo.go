package domain

import (
	"errors"
	"time"
)

var (
	ErrTodoNotFound       = errors.New("todo not found")
	ErrEmptyText          = errors.New("text is required")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Todo is a single task owned by exactly one user. Ownership is fixed at
// creation; only the owner or an admin may read or mutate it.
//
// Username is derived from the owning user at response time and is never
// persisted with the todo itself.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
