package briefing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleDiff = `diff --git a/internal/server/server.go b/internal/server/server.go
index 1111111..2222222 100644
--- a/internal/server/server.go
+++ b/internal/server/server.go
@@ -10,7 +10,8 @@ func Start() {
 	listen()
-	serve(nil)
+	serve(defaultHandler)
+	log.Println("started")
 }
diff --git a/docs/usage.md b/docs/usage.md
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/docs/usage.md
@@ -0,0 +1,2 @@
+# Usage
+Run the binary.
diff --git a/old_name.go b/old_name.go
deleted file mode 100644
index 4444444..0000000
--- a/old_name.go
+++ /dev/null
@@ -1,1 +0,0 @@
-package old
diff --git a/pkg/a.go b/pkg/b.go
similarity index 95%
rename from pkg/a.go
rename to pkg/b.go
index 5555555..6666666 100644
--- a/pkg/a.go
+++ b/pkg/b.go
@@ -1,1 +1,1 @@
-package a
+package b
`

func TestParseDiff_Kinds(t *testing.T) {
	cs := ParseDiff(sampleDiff)

	assert.Len(t, cs.Files, 4)

	assert.Equal(t, "internal/server/server.go", cs.Files[0].Path)
	assert.Equal(t, Modified, cs.Files[0].Kind)
	assert.Equal(t, 2, cs.Files[0].LinesAdded)
	assert.Equal(t, 1, cs.Files[0].LinesRemoved)

	assert.Equal(t, "docs/usage.md", cs.Files[1].Path)
	assert.Equal(t, Added, cs.Files[1].Kind)
	assert.Equal(t, 2, cs.Files[1].LinesAdded)
	assert.Equal(t, 0, cs.Files[1].LinesRemoved)

	assert.Equal(t, "old_name.go", cs.Files[2].Path)
	assert.Equal(t, Deleted, cs.Files[2].Kind)
	assert.Equal(t, 0, cs.Files[2].LinesAdded)
	assert.Equal(t, 1, cs.Files[2].LinesRemoved)

	assert.Equal(t, "pkg/b.go", cs.Files[3].Path)
	assert.Equal(t, Renamed, cs.Files[3].Kind)
}

func TestParseDiff_HeaderLinesNotCounted(t *testing.T) {
	cs := ParseDiff(sampleDiff)

	// "+++ b/..." and "--- a/..." must not count as changed lines
	assert.Equal(t, 1, cs.Files[0].LinesRemoved)
	assert.Equal(t, 0, cs.Files[1].LinesRemoved)
}

func TestParseDiff_Empty(t *testing.T) {
	cs := ParseDiff("")
	assert.True(t, cs.IsEmpty())
	assert.Empty(t, cs.Files)

	cs = ParseDiff("   \n  ")
	assert.True(t, cs.IsEmpty())
}

func TestSectionFor(t *testing.T) {
	cs := ParseDiff(sampleDiff)

	section := cs.SectionFor("docs/usage.md")
	assert.Contains(t, section, "diff --git a/docs/usage.md b/docs/usage.md")
	assert.Contains(t, section, "+# Usage")
	assert.NotContains(t, section, "old_name.go")
	assert.NotContains(t, section, "server.go")
}

func TestSectionFor_RenamedMatchesEitherSide(t *testing.T) {
	cs := ParseDiff(sampleDiff)

	bySource := cs.SectionFor("pkg/a.go")
	byTarget := cs.SectionFor("pkg/b.go")
	assert.NotEmpty(t, bySource)
	assert.Equal(t, bySource, byTarget)
}

func TestSectionFor_Unknown(t *testing.T) {
	cs := ParseDiff(sampleDiff)
	assert.Equal(t, "", cs.SectionFor("nope.go"))
}
