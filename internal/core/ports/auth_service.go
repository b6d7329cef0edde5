package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	// Login verifies credentials and returns a signed session token. Unknown
	// username and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, username, password string) (string, error)
}
