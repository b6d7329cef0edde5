package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// Identity carries the authenticated caller extracted from the session token.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the identity bypasses ownership checks.
func (i Identity) IsAdmin() bool {
	return domain.IsAdmin(i.Role)
}

type TodoService interface {
	List(ctx context.Context, caller Identity) ([]*domain.Todo, error)
	Create(ctx context.Context, caller Identity, text string) (*domain.Todo, error)
	Update(ctx context.Context, caller Identity, id, text string, completed bool) (*domain.Todo, error)
	Delete(ctx context.Context, caller Identity, id string) error
}
