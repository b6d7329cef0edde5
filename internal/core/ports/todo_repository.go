package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// TodoRepository defines persistence operations for todos.
//
// Update and Delete take an ownerID scope: when non-empty, the mutation is
// additionally filtered by user_id so that the ownership check and the write
// happen in a single store operation. Admin callers pass an empty scope.
type TodoRepository interface {
	Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, id string) (*domain.Todo, error)
	// List returns todos in insertion order. When ownerID is non-empty the
	// result is restricted to that owner; empty means all todos (admin).
	List(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	Update(ctx context.Context, id, ownerID, text string, completed bool) (*domain.Todo, error)
	Delete(ctx context.Context, id, ownerID string) error
}
