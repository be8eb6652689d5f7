package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLines(t *testing.T, dir, name string, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestReadFileTool_Name(t *testing.T) {
	tool := NewReadFileTool(t.TempDir(), 0, 0)
	if tool.Name() != "read_file" {
		t.Errorf("expected name 'read_file', got '%s'", tool.Name())
	}
}

func TestReadFileTool_Execute_WholeFile(t *testing.T) {
	root := t.TempDir()
	writeLines(t, root, "small.txt", 3)

	tool := NewReadFileTool(root, 200, DefaultMaxFileSize)
	out, err := tool.Execute(context.Background(), &ReadFileParams{Path: "small.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "Lines: 1-3 (total lines in file: 3)") {
		t.Errorf("missing range header in output:\n%s", out)
	}
	if !strings.Contains(out, "     1 | line 1") {
		t.Errorf("expected numbered line prefix, got:\n%s", out)
	}
	if strings.Contains(out, "Note: output truncated") {
		t.Error("small file should not be truncated")
	}
}

func TestReadFileTool_Execute_RangeClamped(t *testing.T) {
	root := t.TempDir()
	writeLines(t, root, "ten.txt", 10)

	tool := NewReadFileTool(root, 200, DefaultMaxFileSize)
	out, err := tool.Execute(context.Background(), &ReadFileParams{Path: "ten.txt", StartLine: 8, EndLine: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "Lines: 8-10 (total lines in file: 10)") {
		t.Errorf("range was not clamped:\n%s", out)
	}
	if strings.Contains(out, "line 7") {
		t.Error("lines before the range must not appear")
	}
}

func TestReadFileTool_Execute_TruncatesWithContinuation(t *testing.T) {
	root := t.TempDir()
	writeLines(t, root, "big.txt", 30)

	tool := NewReadFileTool(root, 10, DefaultMaxFileSize)
	out, err := tool.Execute(context.Background(), &ReadFileParams{Path: "big.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "Lines: 1-10") {
		t.Errorf("expected the first 10 lines, got:\n%s", out)
	}
	if !strings.Contains(out, "20 more lines remain") {
		t.Errorf("missing remaining-lines note:\n%s", out)
	}
	if !strings.Contains(out, "start_line=11") {
		t.Errorf("missing continuation hint:\n%s", out)
	}
	if strings.Contains(out, "line 11\n") {
		t.Error("content past the ceiling must not appear")
	}
}

func TestReadFileTool_Execute_FileTooLarge(t *testing.T) {
	root := t.TempDir()
	writeLines(t, root, "big.txt", 100)

	tool := NewReadFileTool(root, 200, 64)
	_, err := tool.Execute(context.Background(), &ReadFileParams{Path: "big.txt"})
	if err == nil {
		t.Fatal("expected an error for an oversized file")
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestReadFileTool_Execute_NotFound(t *testing.T) {
	tool := NewReadFileTool(t.TempDir(), 200, DefaultMaxFileSize)
	_, err := tool.Execute(context.Background(), &ReadFileParams{Path: "missing.txt"})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "file not found") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestReadFileTool_Execute_Directory(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	tool := NewReadFileTool(root, 200, DefaultMaxFileSize)
	_, err := tool.Execute(context.Background(), &ReadFileParams{Path: "sub"})
	if err == nil {
		t.Fatal("expected an error for a directory path")
	}
}

func TestReadFileTool_Execute_EscapeRejected(t *testing.T) {
	tool := NewReadFileTool(t.TempDir(), 200, DefaultMaxFileSize)
	_, err := tool.Execute(context.Background(), &ReadFileParams{Path: "../outside.txt"})
	if err == nil {
		t.Fatal("expected a traversal escape to be rejected")
	}
}
