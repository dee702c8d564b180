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

	"github.com/campuskit/provisioning-system/internal/core/domain"
)

type stubUserService struct {
	users []domain.User
}

func (s *stubUserService) List(_ context.Context) ([]domain.User, error) {
	return s.users, nil
}

func (s *stubUserService) Get(_ context.Context, username string) (*domain.User, error) {
	for i := range s.users {
		if s.users[i].Username == username {
			return &s.users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func TestUserHandler_List(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{users: []domain.User{
		{ID: "u1", Username: "alice", Role: domain.RoleStudent, PasswordHash: "bcrypt-digest"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(1) {
		t.Fatalf("unexpected total: %+v", resp)
	}
	if body := rec.Body.String(); strings.Contains(body, "bcrypt-digest") {
		t.Fatalf("password hash leaked: %s", body)
	}
}

func TestUserHandler_List_Empty(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["users"].([]any); !ok {
		t.Fatalf("users must serialize as an array, got %+v", resp["users"])
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("ghost")

	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
