package api

import (
	"net/http"
	"testing"
)

func TestLoginRejectsBadPassword(t *testing.T) {
	resp := makeRequest("POST", "/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "definitely-wrong",
	}, "")
	if resp.IsSuccess() {
		t.Fatal("expected login with wrong password to fail")
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMeReturnsAuthenticatedUser(t *testing.T) {
	resp := makeRequest("GET", "/auth/me", nil, dentistToken)
	if !resp.IsSuccess() {
		t.Fatalf("failed to fetch current user: %s", resp.Message)
	}
	if resp.GetString("role") != "dentist" {
		t.Errorf("expected role dentist, got %q", resp.GetString("role"))
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	resp := makeRequest("GET", "/appointments", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestUserManagementRequiresAdmin(t *testing.T) {
	resp := makeRequest("GET", "/users", nil, dentistToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", resp.StatusCode)
	}
}
