package briefing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// excludedDirectories are noise directories left out of the repository tree
var excludedDirectories = map[string]bool{
	".git":          true,
	"node_modules":  true,
	"vendor":        true,
	".idea":         true,
	".vscode":       true,
	"__pycache__":   true,
	".pytest_cache": true,
	"dist":          true,
	"build":         true,
	"target":        true,
	".next":         true,
	".nuxt":         true,
	"coverage":      true,
}

// BuildTree renders a depth-bounded, count-bounded listing of the repository
// tree. Traversal is depth-first with directories before files, each level
// alphabetical. Rendering stops after maxFiles files with an explicit
// truncation marker.
func BuildTree(root string, maxDepth, maxFiles int) string {
	var b strings.Builder
	files := 0
	truncated := walkTree(root, "", 0, maxDepth, maxFiles, &files, &b)
	if truncated {
		b.WriteString(fmt.Sprintf("... (truncated at %d files)\n", maxFiles))
	}
	return b.String()
}

// walkTree appends one directory level to the builder and reports whether
// the file ceiling was hit.
func walkTree(dir, indent string, depth, maxDepth, maxFiles int, files *int, b *strings.Builder) bool {
	if depth >= maxDepth {
		return false
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	var dirs, plain []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || excludedDirectories[name] {
			continue
		}
		if entry.IsDir() {
			dirs = append(dirs, name)
		} else {
			plain = append(plain, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(plain)

	for _, name := range dirs {
		b.WriteString(fmt.Sprintf("%s%s/\n", indent, name))
		if walkTree(filepath.Join(dir, name), indent+"  ", depth+1, maxDepth, maxFiles, files, b) {
			return true
		}
	}

	for _, name := range plain {
		if *files >= maxFiles {
			return true
		}
		b.WriteString(fmt.Sprintf("%s%s\n", indent, name))
		*files++
	}

	return false
}
