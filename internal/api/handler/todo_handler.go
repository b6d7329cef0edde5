package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/api/metrics"
	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

// TodoHandler handles the authenticated CRUD routes. Ownership and role
// rules live in the service; unknown errors fall through to the central
// HTTP error handler.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// List returns the caller's todos, or every todo for admins.
//
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Todo
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	todos, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		metrics.TodoOperationsTotal.WithLabelValues("list", "error").Inc()
		return err
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}

	metrics.TodoOperationsTotal.WithLabelValues("list", "ok").Inc()
	return c.JSON(http.StatusOK, todos)
}

// Create inserts a new todo owned by the caller.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTodoRequest  true  "Todo text"
// @Success      200   {object}  domain.Todo
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	todo, err := h.service.Create(c.Request().Context(), caller, req.Text)
	if err != nil {
		metrics.TodoOperationsTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	metrics.TodoOperationsTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusOK, todo)
}

// Update overwrites a todo's text and completed flag. Only the owner or an
// admin may do so; ownership itself never changes.
//
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Todo ID"
// @Param        body  body      updateTodoRequest  true  "New text and completed flag"
// @Success      200   {object}  domain.Todo
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	todo, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), req.Text, req.Completed)
	if err != nil {
		metrics.TodoOperationsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	metrics.TodoOperationsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, todo)
}

// Delete removes a todo permanently and confirms with a message rather than
// the deleted entity.
//
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Todo ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		metrics.TodoOperationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.TodoOperationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Todo deleted"})
}
