package server

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/agbru/uintcalc/internal/calc"
)

func TestDefaultSecurityConfig(t *testing.T) {
	t.Parallel()
	config := DefaultSecurityConfig()

	if !config.EnableCORS {
		t.Error("CORS should be enabled by default")
	}
	if !reflect.DeepEqual(config.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v", config.AllowedOrigins)
	}
	if !reflect.DeepEqual(config.AllowedMethods, []string{"GET", "POST", "OPTIONS"}) {
		t.Errorf("AllowedMethods = %v", config.AllowedMethods)
	}
	if config.MaxBodyBytes != 1<<20 || config.MaxArgLength != 8192 {
		t.Errorf("limits = %d bytes, %d chars", config.MaxBodyBytes, config.MaxArgLength)
	}
}

func TestSecurityMiddleware_Headers(t *testing.T) {
	t.Parallel()
	called := false
	handler := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/widths", http.NoBody))

	if !called {
		t.Fatal("next handler was not called")
	}
	for header, want := range map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestSecurityMiddleware_CORS(t *testing.T) {
	t.Parallel()
	pinned := SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"http://first.test", "http://second.test"},
		AllowedMethods: []string{"POST"},
	}

	tests := []struct {
		name       string
		config     SecurityConfig
		origin     string
		wantOrigin string
	}{
		{"disabled", SecurityConfig{}, "http://first.test", ""},
		{"wildcard", DefaultSecurityConfig(), "http://any.test", "*"},
		{"wildcard without Origin", DefaultSecurityConfig(), "", "*"},
		{"first listed origin", pinned, "http://first.test", "http://first.test"},
		{"second listed origin", pinned, "http://second.test", "http://second.test"},
		{"unlisted origin", pinned, "http://other.test", ""},
		{"missing Origin", pinned, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/v1/eval", http.NoBody)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			SecurityMiddleware(tt.config, func(http.ResponseWriter, *http.Request) {})(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			methods := rec.Header().Get("Access-Control-Allow-Methods")
			if (tt.wantOrigin != "") != (methods != "") {
				t.Errorf("Allow-Methods = %q with Allow-Origin %q", methods, tt.wantOrigin)
			}
		})
	}
}

func TestSecurityMiddleware_Preflight(t *testing.T) {
	t.Parallel()
	called := false
	handler := SecurityMiddleware(DefaultSecurityConfig(), func(http.ResponseWriter, *http.Request) {
		called = true
	})
	req := httptest.NewRequest(http.MethodOptions, "/v1/eval", http.NoBody)
	req.Header.Set("Origin", "http://ui.test")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if called {
		t.Error("preflight reached the endpoint")
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Errorf("Max-Age = %q", got)
	}
}

func TestServer_RequestLimits(t *testing.T) {
	t.Parallel()
	security := DefaultSecurityConfig()
	security.MaxBodyBytes = 256
	security.MaxArgLength = 16
	s := NewServer(calc.NewDefaultFactory(), Config{Timeout: 30 * time.Second, Security: security}, newTestLogger())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"operand too long", `{"op":"add","args":["` + strings.Repeat("9", 17) + `","1"]}`, "exceeds 16 characters"},
		{"body too large", `{"op":"add","args":["1","` + strings.Repeat(" ", 300) + `"]}`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, ts, "/v1/eval", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if msg, _ := body["error"].(string); !strings.Contains(msg, tt.want) {
				t.Errorf("error = %q, want it to contain %q", msg, tt.want)
			}
			if resp.Header.Get("X-Frame-Options") != "DENY" {
				t.Error("routed responses must carry the security headers")
			}
		})
	}
}
