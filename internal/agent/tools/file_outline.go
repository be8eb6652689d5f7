package tools

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	// DefaultOutlineMaxLines is the default output ceiling for outlines
	DefaultOutlineMaxLines = 200
)

// outlinePattern labels a structurally significant line. Patterns are
// checked in order; the first match wins for a line.
type outlinePattern struct {
	label   string
	pattern *regexp.Regexp
}

var outlinePatterns = []outlinePattern{
	{"import", regexp.MustCompile(`^\s*(import\s|from\s+\S+\s+import\s|#include\s|using\s|require\s*\()`)},
	{"export", regexp.MustCompile(`^\s*(export\s|module\.exports\s*=|pub\s)`)},
	{"type", regexp.MustCompile(`^\s*(type\s+\w+|class\s+\w+|interface\s+\w+|struct\s+\w+|enum\s+\w+)`)},
	{"func", regexp.MustCompile(`^\s*(func\s|def\s+\w+|function\s+\w+|fn\s+\w+|(public|private|protected|static)[\w\s<>,\[\]]*\([^)]*\)\s*\{)`)},
	{"const", regexp.MustCompile(`^\s*(const\s+\w+|final\s+\w+|[A-Z][A-Z0-9_]+\s*=)`)},
	{"var", regexp.MustCompile(`^(var\s+\w+|let\s+\w+)`)},
}

// FileOutlineParams contains parameters for the get_file_outline tool
type FileOutlineParams struct {
	Path string `json:"path"`
}

// FileOutlineTool emits a structural summary of a file: imports,
// declarations, exported symbols. Cheaper than a full read for deciding
// whether a file matters to the change.
type FileOutlineTool struct {
	repoRoot string
	maxLines int
}

// NewFileOutlineTool creates a new FileOutlineTool
func NewFileOutlineTool(repoRoot string, maxLines int) *FileOutlineTool {
	if maxLines <= 0 {
		maxLines = DefaultOutlineMaxLines
	}
	return &FileOutlineTool{
		repoRoot: repoRoot,
		maxLines: maxLines,
	}
}

// Name returns the tool name
func (t *FileOutlineTool) Name() string {
	return "get_file_outline"
}

// Description returns the tool description
func (t *FileOutlineTool) Description() string {
	return `Get a structural outline of a file: imports, type and function
declarations, exported symbols, top-level constants.
Parameters:
- path (required): Path to the file, relative to the repository root
Use this before read_file when you only need to know what a file contains.`
}

// Execute runs the tool and returns the outline
func (t *FileOutlineTool) Execute(ctx context.Context, params *FileOutlineParams) (string, error) {
	if params == nil || params.Path == "" {
		return "", fmt.Errorf("path is required")
	}

	abs, err := resolvePath(t.repoRoot, params.Path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", params.Path)
		}
		return "", fmt.Errorf("failed to access file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", params.Path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Outline: %s\n", params.Path))

	emitted := 0
	truncated := false
	for i, line := range strings.Split(string(data), "\n") {
		for _, op := range outlinePatterns {
			if op.pattern.MatchString(line) {
				if emitted >= t.maxLines {
					truncated = true
					break
				}
				result.WriteString(fmt.Sprintf("%6d | %-7s %s\n", i+1, op.label, strings.TrimSpace(line)))
				emitted++
				break
			}
		}
		if truncated {
			break
		}
	}

	if emitted == 0 {
		result.WriteString("(no structural elements recognized)\n")
	}
	if truncated {
		result.WriteString(fmt.Sprintf("... (outline truncated at %d lines; use read_file for the rest)\n", t.maxLines))
	}

	return result.String(), nil
}
