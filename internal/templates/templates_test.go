package templates

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCatalogComplete(t *testing.T) {
	want := []string{"professional", "technical", "executive", "entry_level", "creative"}
	listed := List()
	if len(listed) != len(want) {
		t.Fatalf("expected %d templates, got %d", len(want), len(listed))
	}
	for i, key := range want {
		if listed[i].Key != key {
			t.Fatalf("expected key %q at %d, got %q", key, i, listed[i].Key)
		}
		if listed[i].Content != "" {
			t.Fatalf("List must not include template bodies, %q does", key)
		}
		full, ok := Get(key)
		if !ok {
			t.Fatalf("Get(%q) not found", key)
		}
		if !strings.Contains(full.Content, "[YOUR NAME]") {
			t.Fatalf("template %q missing name placeholder", key)
		}
	}
}

func TestGetUnknownKey(t *testing.T) {
	if _, ok := Get("nope"); ok {
		t.Fatal("expected unknown key to report not found")
	}
}

func TestByIndustry(t *testing.T) {
	cases := map[string]string{
		"technology": "technical",
		"Consulting": "executive",
		"design":     "creative",
		"internship": "entry_level",
		"farming":    "professional",
		"":           "professional",
	}
	for industry, want := range cases {
		if got := ByIndustry(industry); got.Key != want {
			t.Fatalf("ByIndustry(%q) = %q, want %q", industry, got.Key, want)
		}
	}
}

func TestTemplateEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler().RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var listed []Template
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 5 {
		t.Fatalf("expected 5 templates, got %d", len(listed))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/templates/technical", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "TECHNICAL SUMMARY") {
		t.Fatalf("expected technical template body, got %s", rec.Body.String()[:100])
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/templates/missing", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown template, got %d", rec.Code)
	}
}
