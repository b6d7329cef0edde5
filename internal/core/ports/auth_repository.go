package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindUsernames resolves a set of user IDs to their usernames. IDs that
	// do not resolve are simply absent from the result map.
	FindUsernames(ctx context.Context, ids []string) (map[string]string, error)
}
