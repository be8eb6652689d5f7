package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestSandbox(t *testing.T) *Sandbox {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return NewSandbox(root, fixtureChangeSet(), DefaultLimits())
}

func TestSandbox_Specs(t *testing.T) {
	specs := newTestSandbox(t).Specs()

	if len(specs) != 3 {
		t.Fatalf("expected 3 tool specs, got %d", len(specs))
	}

	names := map[string]bool{}
	for _, spec := range specs {
		if spec.Desc == "" {
			t.Errorf("tool %s has no description", spec.Name)
		}
		if spec.ParamsOneOf == nil {
			t.Errorf("tool %s has no parameter schema", spec.Name)
		}
		names[spec.Name] = true
	}
	for _, want := range []string{"get_diff", "read_file", "get_file_outline"} {
		if !names[want] {
			t.Errorf("missing tool spec %q", want)
		}
	}
}

func TestSandbox_Execute_ReadFile(t *testing.T) {
	sb := newTestSandbox(t)

	outcome := sb.Execute(context.Background(), Invocation{
		ID:        "call_1",
		Name:      "read_file",
		Arguments: `{"path":"main.go"}`,
	})

	if outcome.IsError {
		t.Fatalf("unexpected error outcome: %s", outcome.Content)
	}
	if outcome.ID != "call_1" || outcome.Name != "read_file" {
		t.Errorf("outcome identity lost: %+v", outcome)
	}
	if !strings.Contains(outcome.Content, "package main") {
		t.Errorf("missing file content:\n%s", outcome.Content)
	}
}

func TestSandbox_Execute_GetDiff(t *testing.T) {
	sb := newTestSandbox(t)

	outcome := sb.Execute(context.Background(), Invocation{
		Name:      "get_diff",
		Arguments: `{"path":"docs/notes.md"}`,
	})

	if outcome.IsError {
		t.Fatalf("unexpected error outcome: %s", outcome.Content)
	}
	if !strings.Contains(outcome.Content, "+notes") {
		t.Errorf("missing diff content:\n%s", outcome.Content)
	}
}

func TestSandbox_Execute_UnknownToolIsErrorOutcome(t *testing.T) {
	sb := newTestSandbox(t)

	outcome := sb.Execute(context.Background(), Invocation{
		Name:      "run_shell",
		Arguments: `{"command":"rm -rf /"}`,
	})

	if !outcome.IsError {
		t.Fatal("unknown tool must produce an error outcome")
	}
	if !strings.Contains(outcome.Content, "unknown tool") {
		t.Errorf("unexpected content: %s", outcome.Content)
	}
	if !strings.Contains(outcome.Content, "get_diff") {
		t.Errorf("error should list available tools: %s", outcome.Content)
	}
}

func TestSandbox_Execute_MalformedArgumentsIsErrorOutcome(t *testing.T) {
	sb := newTestSandbox(t)

	outcome := sb.Execute(context.Background(), Invocation{
		Name:      "read_file",
		Arguments: `{"path": `,
	})

	if !outcome.IsError {
		t.Fatal("malformed arguments must produce an error outcome")
	}
}

func TestSandbox_Execute_ToolFailureIsErrorOutcome(t *testing.T) {
	sb := newTestSandbox(t)

	outcome := sb.Execute(context.Background(), Invocation{
		Name:      "read_file",
		Arguments: `{"path":"does-not-exist.go"}`,
	})

	if !outcome.IsError {
		t.Fatal("a failing tool must produce an error outcome")
	}
	if !strings.Contains(outcome.Content, "file not found") {
		t.Errorf("unexpected content: %s", outcome.Content)
	}
}
