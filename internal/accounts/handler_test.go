package accounts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/analyses"
)

func newTestRouter(t *testing.T) (*gin.Engine, *analyses.SessionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions := analyses.NewSessionStore()
	handler := NewHandler(NewService(NewMemoryRepo()), sessions)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("username", "bob")
		c.Next()
	})
	group := router.Group("/api/v1")
	handler.RegisterRoutes(group)
	handler.RegisterDevRoutes(group)
	return router, sessions
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerBob(t *testing.T, router *gin.Engine) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "bob", "email": "bob@x.com", "password": "secret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	registerBob(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "bob", "email": "other@x.com", "password": "secret2",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("duplicate_username")) {
		t.Fatalf("expected duplicate_username code, got %s", rec.Body.String())
	}
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	registerBob(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "bob", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "bob", "password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a signed token")
	}
	if resp.Username != "bob" {
		t.Fatalf("expected username bob, got %q", resp.Username)
	}
}

func TestMeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	registerBob(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("passwordHash")) {
		t.Fatal("password hash must not be serialized")
	}
}

func TestChangePasswordEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	registerBob(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/password", gin.H{
		"oldPassword": "wrong", "newPassword": "secret2",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong old password, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/password", gin.H{
		"oldPassword": "secret1", "newPassword": "secret2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "bob", "password": "secret2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected login with new password, got %d", rec.Code)
	}
}

func TestDeleteAccountEndpointDropsSession(t *testing.T) {
	router, sessions := newTestRouter(t)
	registerBob(t, router)
	sessions.Put("bob", analyses.Session{AnalysisID: "a-1"})

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/auth/account", gin.H{
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}
	if _, ok := sessions.Get("bob"); !ok {
		t.Fatal("session must survive a failed delete")
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/auth/account", gin.H{
		"password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := sessions.Get("bob"); ok {
		t.Fatal("expected session dropped with the account")
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestListAccountsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	registerBob(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dev/users", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var accounts []Account
	if err := json.Unmarshal(rec.Body.Bytes(), &accounts); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Username != "bob" {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}
}
