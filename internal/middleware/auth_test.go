package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/triplog/triplog-backend/internal/services"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"", ""},
		{"abc123", ""},
		{"Basic abc123", ""},
		{"Bearer", ""},
		{"Bearer a b", ""},
	}
	for _, tt := range tests {
		if got := ExtractBearerToken(tt.header); got != tt.want {
			t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	valid, err := tokens.Issue("66b1f0c2a4d3e8f901234567")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	foreign, err := services.NewTokenService("other-secret").Issue("66b1f0c2a4d3e8f901234567")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantCalled bool
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"malformed header", "Token " + valid, http.StatusUnauthorized, false},
		{"bad signature", "Bearer " + foreign, http.StatusUnauthorized, false},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				userID, ok := UserIDFromContext(r.Context())
				if !ok || userID != "66b1f0c2a4d3e8f901234567" {
					t.Errorf("context userID = %q, %v", userID, ok)
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/get-all-journals", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if handlerCalled != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", handlerCalled, tt.wantCalled)
			}
		})
	}
}
