package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

// TodoService enforces the ownership rules on top of the repositories:
// plain users observe and mutate only their own todos, admins all of them.
type TodoService struct {
	todos  ports.TodoRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTodoService(todos ports.TodoRepository, users ports.UserRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{todos: todos, users: users, logger: logger}
}

func (s *TodoService) List(ctx context.Context, caller ports.Identity) ([]*domain.Todo, error) {
	scope := caller.UserID
	if caller.IsAdmin() {
		scope = ""
	}

	todos, err := s.todos.List(ctx, scope)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID).Msg("failed to list todos")
		return nil, err
	}

	if err := s.enrich(ctx, todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *TodoService) Create(ctx context.Context, caller ports.Identity, text string) (*domain.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}

	todo := &domain.Todo{
		Text:      text,
		Completed: false,
		UserID:    caller.UserID,
	}

	created, err := s.todos.Insert(ctx, todo)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID).Msg("failed to create todo")
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	created.Username = owner.Username

	s.logger.Info().Str("todo_id", created.ID).Str("user_id", caller.UserID).Msg("todo created")
	return created, nil
}

// Update overwrites text and completed unconditionally. The existence probe
// runs before the ownership check so a non-owner is told Forbidden, not
// NotFound; the mutation itself is a single owner-scoped store operation.
func (s *TodoService) Update(ctx context.Context, caller ports.Identity, id, text string, completed bool) (*domain.Todo, error) {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	scope := caller.UserID
	if caller.IsAdmin() {
		scope = ""
	}

	updated, err := s.todos.Update(ctx, id, scope, text, completed)
	if err != nil {
		if !errors.Is(err, domain.ErrTodoNotFound) {
			s.logger.Error().Err(err).Str("todo_id", id).Msg("failed to update todo")
		}
		return nil, err
	}

	// Enrich with the original owner's username; ownership never changes.
	owner, err := s.users.FindByID(ctx, todo.UserID)
	if err != nil {
		return nil, err
	}
	updated.Username = owner.Username

	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, caller ports.Identity, id string) error {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if todo.UserID != caller.UserID && !caller.IsAdmin() {
		return domain.ErrForbidden
	}

	scope := caller.UserID
	if caller.IsAdmin() {
		scope = ""
	}

	if err := s.todos.Delete(ctx, id, scope); err != nil {
		if !errors.Is(err, domain.ErrTodoNotFound) {
			s.logger.Error().Err(err).Str("todo_id", id).Msg("failed to delete todo")
		}
		return err
	}

	s.logger.Info().Str("todo_id", id).Str("user_id", caller.UserID).Msg("todo deleted")
	return nil
}

// enrich attaches owner usernames to a page of todos with a single lookup.
func (s *TodoService) enrich(ctx context.Context, todos []*domain.Todo) error {
	if len(todos) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(todos))
	ids := make([]string, 0, len(todos))
	for _, t := range todos {
		if _, ok := seen[t.UserID]; ok {
			continue
		}
		seen[t.UserID] = struct{}{}
		ids = append(ids, t.UserID)
	}

	names, err := s.users.FindUsernames(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to resolve owner usernames")
		return err
	}

	for _, t := range todos {
		t.Username = names[t.UserID]
	}
	return nil
}
