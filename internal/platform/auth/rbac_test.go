package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithRoles(req *http.Request, roles []string) *http.Request {
	ctx := context.WithValue(req.Context(), UserRolesKey, roles)
	return req.WithContext(ctx)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = contextWithRoles(req, []string{"nurse"})

	_, rec, err := runMiddleware(RequireRole("nurse", "physician"), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRole_AdminAlwaysPasses(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = contextWithRoles(req, []string{"admin"})

	_, _, err := runMiddleware(RequireRole("surgeon"), req)
	if err != nil {
		t.Fatalf("expected admin to pass any role check, got %v", err)
	}
}

func TestRequireRole_RejectsMissingRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = contextWithRoles(req, []string{"ops"})

	_, _, err := runMiddleware(RequireRole("physician"), req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRequireRole_RejectsNoRoles(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, _, err := runMiddleware(RequireRole("physician"), req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with no roles in context, got %v", err)
	}
}
