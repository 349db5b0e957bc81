package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithRoles(roles ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserRolesKey, roles))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireRole_Allowed(t *testing.T) {
	c, rec := contextWithRoles(RoleReceptionist)

	err := RequireRole(RoleDoctor, RoleReceptionist)(okHandler)(c)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Denied(t *testing.T) {
	c, _ := contextWithRoles(RoleReceptionist)
	expectStatus(t, RequireRole(RoleDoctor)(okHandler)(c), http.StatusForbidden)
}

func TestRequireRole_NoRoles(t *testing.T) {
	c, _ := contextWithRoles()
	expectStatus(t, RequireRole(RoleDoctor)(okHandler)(c), http.StatusForbidden)
}

func TestRequireRole_AdminBypass(t *testing.T) {
	c, _ := contextWithRoles(RoleAdmin)
	if err := RequireRole(RoleDoctor)(okHandler)(c); err != nil {
		t.Error("admin should bypass role checks")
	}
}

func TestHasRole(t *testing.T) {
	tests := []struct {
		name     string
		granted  []string
		required []string
		want     bool
	}{
		{"match", []string{RoleDoctor}, []string{RoleDoctor}, true},
		{"one of", []string{RoleReceptionist}, []string{RoleDoctor, RoleReceptionist}, true},
		{"admin", []string{RoleAdmin}, []string{RoleDoctor}, true},
		{"miss", []string{RoleReceptionist}, []string{RoleDoctor}, false},
		{"none granted", nil, []string{RoleDoctor}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRole(tt.granted, tt.required...); got != tt.want {
				t.Errorf("HasRole(%v, %v) = %v, want %v", tt.granted, tt.required, got, tt.want)
			}
		})
	}
}

func TestKnownRole(t *testing.T) {
	for _, r := range []string{RoleAdmin, RoleDoctor, RoleReceptionist} {
		if !KnownRole(r) {
			t.Errorf("expected %s to be known", r)
		}
	}
	if KnownRole("physician") {
		t.Error("physician is not a console role")
	}
}

func TestUserIDFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDKey, "user-1")
	if got := UserIDFromContext(ctx); got != "user-1" {
		t.Errorf("expected user-1, got %s", got)
	}
	if got := UserIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty user id, got %s", got)
	}
}
