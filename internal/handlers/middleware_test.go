package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"itemvault/internal/models"
	"itemvault/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil, nil)
	r.GET("/secure", h.authMiddleware, func(c *gin.Context) {
		u := currentUser(c)
		c.JSON(http.StatusOK, gin.H{"ok": true, "email": u.Email})
	})
	return r
}

func TestAuthMiddleware_AllFailuresCollapseToOne401(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		authErr error
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Token abc"},
		{name: "bearer without token", header: "Bearer"},
		{name: "bad signature or expiry", header: "Bearer bad", authErr: service.ErrInvalidToken},
		{name: "user deleted after issue", header: "Bearer orphan", authErr: service.ErrInvalidToken},
		{name: "store failure", header: "Bearer x", authErr: errors.New("db down")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{authErr: tc.authErr}
			s := &service.Service{Authorization: auth}
			r := newMiddlewareOnlyRouter(s)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401 (body=%s)", w.Code, w.Body.String())
			}
			if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Fatalf("challenge header: got %q, want %q", got, "Bearer")
			}

			// Every failure mode must carry the exact same body.
			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != errCredentials {
				t.Fatalf("error message: got %q, want %q", out.Error, errCredentials)
			}
		})
	}
}

func TestAuthMiddleware_SuccessResolvesUserAndProceeds(t *testing.T) {
	auth := &mockAuth{authUser: &models.User{ID: 123, Email: "a@example.com"}}
	s := &service.Service{Authorization: auth}
	r := newMiddlewareOnlyRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		OK    bool   `json:"ok"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || resp.Email != "a@example.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if auth.lastAuthToken != "good-token" {
		t.Fatalf("Authenticate got %q, want %q", auth.lastAuthToken, "good-token")
	}
}

func TestAuthMiddleware_LowercaseBearerSchemeAccepted(t *testing.T) {
	auth := &mockAuth{authUser: &models.User{ID: 1, Email: "b@example.com"}}
	s := &service.Service{Authorization: auth}
	r := newMiddlewareOnlyRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "bearer tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200; body=%s", w.Code, w.Body.String())
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, nil, nil)
	r := gin.New()
	r.Use(h.requestIDMiddleware)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	t.Run("echoes client id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		r.ServeHTTP(w, req)
		if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
			t.Fatalf("expected echoed id, got %q", got)
		}
	})

	t.Run("generates id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		if w.Header().Get("X-Request-ID") == "" {
			t.Fatalf("expected generated request id")
		}
	})
}
