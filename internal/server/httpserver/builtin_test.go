package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("gzip", nil)
	if !errors.Is(err, ErrUnknownMiddleware) {
		t.Errorf("Lookup(gzip) error = %v, want ErrUnknownMiddleware", err)
	}
}

func TestLookup_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]string
	}{
		{"spa", nil},
		{"redirect", nil},
		{"redirect", map[string]string{"to": "/x", "code": "200"}},
		{"headers", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Lookup(tt.name, tt.opts); err == nil {
				t.Errorf("Lookup(%s, %v) expected error", tt.name, tt.opts)
			}
		})
	}
}

func TestBuiltinNames(t *testing.T) {
	names := BuiltinNames()
	want := []string{"cors", "headers", "health", "nocache", "redirect", "spa"}
	if len(names) != len(want) {
		t.Fatalf("BuiltinNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("BuiltinNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestBuiltin_SPAFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<div id=app></div>")
	writeFile(t, dir, "main.js", "boot()")

	spa, err := Lookup("spa", map[string]string{"file": filepath.Join(dir, "index.html")})
	if err != nil {
		t.Fatal(err)
	}

	s := NewStack()
	s.Static("/", dir)
	s.Use("/", spa)

	if rec := get(t, s, "/main.js"); rec.Body.String() != "boot()" {
		t.Errorf("/main.js body = %q", rec.Body.String())
	}
	if rec := get(t, s, "/users/42"); rec.Body.String() != "<div id=app></div>" {
		t.Errorf("/users/42 body = %q, want SPA shell", rec.Body.String())
	}
}

func TestBuiltin_Redirect(t *testing.T) {
	mw, err := Lookup("redirect", map[string]string{"to": "/new", "code": "301"})
	if err != nil {
		t.Fatal(err)
	}

	s := NewStack()
	s.Use("/old", mw)

	rec := get(t, s, "/old/page")
	if rec.Code != http.StatusMovedPermanently {
		t.Errorf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/new" {
		t.Errorf("Location = %q, want /new", loc)
	}
}

func TestBuiltin_Health(t *testing.T) {
	mw, err := Lookup("health", nil)
	if err != nil {
		t.Fatal(err)
	}

	s := NewStack()
	s.Use("/__health", mw)

	rec := get(t, s, "/__health")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestBuiltin_HeadersAndCORS(t *testing.T) {
	headers, err := Lookup("headers", map[string]string{"x-harness": "yes"})
	if err != nil {
		t.Fatal(err)
	}
	cors, err := Lookup("CORS", map[string]string{"origins": "*"})
	if err != nil {
		t.Fatal(err)
	}

	s := NewStack()
	s.Use("/", headers)
	s.Use("/", cors)
	s.Handle("/", okHandler("done"))

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://app.test")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Harness"); got != "yes" {
		t.Errorf("X-Harness = %q, want yes", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://app.test" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if rec.Body.String() != "done" {
		t.Errorf("body = %q, want done", rec.Body.String())
	}
}
