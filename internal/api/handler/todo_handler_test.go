package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

type stubTodoService struct {
	listFn   func(ctx context.Context, caller ports.Identity) ([]*domain.Todo, error)
	createFn func(ctx context.Context, caller ports.Identity, text string) (*domain.Todo, error)
	updateFn func(ctx context.Context, caller ports.Identity, id, text string, completed bool) (*domain.Todo, error)
	deleteFn func(ctx context.Context, caller ports.Identity, id string) error
}

func (s *stubTodoService) List(ctx context.Context, caller ports.Identity) ([]*domain.Todo, error) {
	return s.listFn(ctx, caller)
}

func (s *stubTodoService) Create(ctx context.Context, caller ports.Identity, text string) (*domain.Todo, error) {
	return s.createFn(ctx, caller, text)
}

func (s *stubTodoService) Update(ctx context.Context, caller ports.Identity, id, text string, completed bool) (*domain.Todo, error) {
	return s.updateFn(ctx, caller, id, text, completed)
}

func (s *stubTodoService) Delete(ctx context.Context, caller ports.Identity, id string) error {
	return s.deleteFn(ctx, caller, id)
}

func newTodoTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleUser)
	return c, rec
}

func TestTodoHandler_List(t *testing.T) {
	stub := &stubTodoService{
		listFn: func(ctx context.Context, caller ports.Identity) ([]*domain.Todo, error) {
			if caller.UserID != "u1" || caller.Role != domain.RoleUser {
				t.Fatalf("unexpected caller: %+v", caller)
			}
			return []*domain.Todo{
				{ID: "t1", Text: "a", UserID: "u1", Username: "alice"},
			}, nil
		},
	}
	handler := NewTodoHandler(stub)

	c, rec := newTodoTestContext(t, http.MethodGet, "/todos", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var todos []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &todos); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(todos) != 1 || todos[0]["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", todos)
	}
}

func TestTodoHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubTodoService{
		listFn: func(ctx context.Context, caller ports.Identity) ([]*domain.Todo, error) {
			return nil, nil
		},
	}
	handler := NewTodoHandler(stub)

	c, rec := newTodoTestContext(t, http.MethodGet, "/todos", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestTodoHandler_List_WithoutClaims(t *testing.T) {
	handler := NewTodoHandler(&stubTodoService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestTodoHandler_Create_Success(t *testing.T) {
	stub := &stubTodoService{
		createFn: func(ctx context.Context, caller ports.Identity, text string) (*domain.Todo, error) {
			if text != "Test TODO" {
				t.Fatalf("unexpected text: %q", text)
			}
			return &domain.Todo{ID: "t1", Text: text, Completed: false, UserID: caller.UserID, Username: "testuser"}, nil
		},
	}
	handler := NewTodoHandler(stub)

	c, rec := newTodoTestContext(t, http.MethodPost, "/todos", `{"text":"Test TODO"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["text"] != "Test TODO" || resp["completed"] != false || resp["username"] != "testuser" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTodoHandler_Create_MissingText(t *testing.T) {
	stub := &stubTodoService{
		createFn: func(ctx context.Context, caller ports.Identity, text string) (*domain.Todo, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTodoHandler(stub)

	for _, body := range []string{`{}`, `{"text":""}`} {
		c, rec := newTodoTestContext(t, http.MethodPost, "/todos", body)
		_ = handler.Create(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, rec.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("validation failure must be a JSON envelope: %v", err)
		}
		if _, ok := resp["error"]; !ok {
			t.Fatalf("expected error field, got %+v", resp)
		}
	}
}

func TestTodoHandler_Update_Success(t *testing.T) {
	stub := &stubTodoService{
		updateFn: func(ctx context.Context, caller ports.Identity, id, text string, completed bool) (*domain.Todo, error) {
			if id != "t1" || text != "Updated TODO" || !completed {
				t.Fatalf("unexpected args: %s %s %v", id, text, completed)
			}
			return &domain.Todo{ID: id, Text: text, Completed: completed, UserID: "u1", Username: "testuser"}, nil
		},
	}
	handler := NewTodoHandler(stub)

	c, rec := newTodoTestContext(t, http.MethodPut, "/todos/t1", `{"text":"Updated TODO","completed":true}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["text"] != "Updated TODO" || resp["completed"] != true || resp["username"] != "testuser" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTodoHandler_Update_PropagatesDomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", domain.ErrTodoNotFound},
		{"forbidden", domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubTodoService{
				updateFn: func(ctx context.Context, caller ports.Identity, id, text string, completed bool) (*domain.Todo, error) {
					return nil, tc.err
				},
			}
			handler := NewTodoHandler(stub)

			c, _ := newTodoTestContext(t, http.MethodPut, "/todos/t1", `{"text":"x","completed":false}`)
			c.SetParamNames("id")
			c.SetParamValues("t1")

			if err := handler.Update(c); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v to reach the error handler, got %v", tc.err, err)
			}
		})
	}
}

func TestTodoHandler_Delete_Success(t *testing.T) {
	stub := &stubTodoService{
		deleteFn: func(ctx context.Context, caller ports.Identity, id string) error {
			if id != "t1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	handler := NewTodoHandler(stub)

	c, rec := newTodoTestContext(t, http.MethodDelete, "/todos/t1", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Todo deleted" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestTodoHandler_Delete_PropagatesDomainErrors(t *testing.T) {
	stub := &stubTodoService{
		deleteFn: func(ctx context.Context, caller ports.Identity, id string) error {
			return domain.ErrForbidden
		},
	}
	handler := NewTodoHandler(stub)

	c, _ := newTodoTestContext(t, http.MethodDelete, "/todos/t1", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := handler.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
