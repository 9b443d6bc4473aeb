package command

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/yndnr/staticserver-go/internal/server/httpserver"
)

func init() {
	color.NoColor = true
}

func TestApp(t *testing.T) {
	app := App()
	if app == nil {
		t.Fatal("App() returned nil")
	}
	if app.Name != "staticserver" {
		t.Errorf("Name = %q, want %q", app.Name, "staticserver")
	}
	if app.DefaultCommand != "serve" {
		t.Errorf("DefaultCommand = %q, want serve", app.DefaultCommand)
	}

	commandNames := make(map[string]bool)
	for _, cmd := range app.Commands {
		commandNames[cmd.Name] = true
	}
	for _, name := range []string{"serve", "probe", "middleware", "version"} {
		if !commandNames[name] {
			t.Errorf("missing required command: %s", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout, stderr lockedBuffer
	if err := runApp(context.Background(), &stdout, &stderr, "version"); err != nil {
		t.Fatalf("version error = %v", err)
	}
	for _, want := range []string{"KEY", "go_version", "version"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	var stdout, stderr lockedBuffer
	if err := runApp(context.Background(), &stdout, &stderr, "version", "-o", "json"); err != nil {
		t.Fatalf("version error = %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(stdout.String()), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout.String(), err)
	}
	if info["version"] == "" || info["go_version"] == "" {
		t.Errorf("info = %v", info)
	}
}

func TestVersionCommand_BadFormat(t *testing.T) {
	var stdout, stderr lockedBuffer
	if err := runApp(context.Background(), &stdout, &stderr, "version", "-o", "xml"); err == nil {
		t.Error("unknown output format should fail")
	}
}

func TestMiddlewareCommand(t *testing.T) {
	var stdout, stderr lockedBuffer
	if err := runApp(context.Background(), &stdout, &stderr, "middleware"); err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	out := stdout.String()
	if !strings.HasPrefix(out, "NAME") {
		t.Errorf("missing header:\n%s", out)
	}
	for _, name := range httpserver.BuiltinNames() {
		if !strings.Contains(out, name) {
			t.Errorf("output missing %q", name)
		}
		if builtinUsage[name] == "" {
			t.Errorf("no usage text for built-in %q", name)
		}
	}
}

func TestMiddlewareCommand_JSON(t *testing.T) {
	var stdout, stderr lockedBuffer
	if err := runApp(context.Background(), &stdout, &stderr, "mw", "--output", "json"); err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	var usage []map[string]string
	if err := json.Unmarshal([]byte(stdout.String()), &usage); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(usage) != len(httpserver.BuiltinNames()) {
		t.Fatalf("got %d entries, want %d", len(usage), len(httpserver.BuiltinNames()))
	}
	if usage[0]["name"] != "cors" || usage[0]["options"] != builtinUsage["cors"] {
		t.Errorf("first entry = %v, want cors with its options", usage[0])
	}
}
