package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/autocommit/autocommit-go/internal/briefing"
)

const fixtureDiff = `diff --git a/cmd/main.go b/cmd/main.go
index 1111111..2222222 100644
--- a/cmd/main.go
+++ b/cmd/main.go
@@ -1,3 +1,4 @@
 package main
+// entry point
diff --git a/docs/notes.md b/docs/notes.md
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/docs/notes.md
@@ -0,0 +1,1 @@
+notes
`

func fixtureChangeSet() *briefing.ChangeSet {
	cs := briefing.ParseDiff(fixtureDiff)
	return &cs
}

func TestGetDiffTool_Name(t *testing.T) {
	tool := NewGetDiffTool(fixtureChangeSet())
	if tool.Name() != "get_diff" {
		t.Errorf("expected name 'get_diff', got '%s'", tool.Name())
	}
}

func TestGetDiffTool_Execute_ReturnsSection(t *testing.T) {
	tool := NewGetDiffTool(fixtureChangeSet())

	out, err := tool.Execute(context.Background(), &GetDiffParams{Path: "cmd/main.go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "diff --git a/cmd/main.go b/cmd/main.go") {
		t.Errorf("missing section header:\n%s", out)
	}
	if !strings.Contains(out, "+// entry point") {
		t.Errorf("missing hunk content:\n%s", out)
	}
	if strings.Contains(out, "notes.md") {
		t.Error("section must not include other files")
	}
}

func TestGetDiffTool_Execute_UnknownPath(t *testing.T) {
	tool := NewGetDiffTool(fixtureChangeSet())

	out, err := tool.Execute(context.Background(), &GetDiffParams{Path: "nope.go"})
	if err != nil {
		t.Fatalf("a miss is an answer, not an error: %v", err)
	}
	if !strings.Contains(out, "No diff section found") {
		t.Errorf("expected a not-found message, got:\n%s", out)
	}
}

func TestGetDiffTool_Execute_MissingPath(t *testing.T) {
	tool := NewGetDiffTool(fixtureChangeSet())

	if _, err := tool.Execute(context.Background(), &GetDiffParams{}); err == nil {
		t.Error("expected an error for a missing path parameter")
	}
}
