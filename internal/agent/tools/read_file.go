package tools

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultMaxLinesPerRead is the default maximum lines returned per read
	DefaultMaxLinesPerRead = 200
	// HardMaxLinesPerRead caps the configurable per-read window
	HardMaxLinesPerRead = 1000
	// DefaultMaxFileSize is the default whole-file size ceiling in bytes
	DefaultMaxFileSize = 256 * 1024
)

// ReadFileParams contains parameters for reading a file
type ReadFileParams struct {
	Path      string `json:"path"`
	StartLine int    `json:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
}

// ReadFileTool reads a line range of a file inside the repository root.
// The ceilings bound token cost per round-trip; the model can always issue
// a follow-up call with a narrower range.
type ReadFileTool struct {
	repoRoot    string
	maxLines    int
	maxFileSize int64
}

// NewReadFileTool creates a new ReadFileTool
func NewReadFileTool(repoRoot string, maxLines int, maxFileSize int64) *ReadFileTool {
	if maxLines <= 0 {
		maxLines = DefaultMaxLinesPerRead
	}
	if maxLines > HardMaxLinesPerRead {
		maxLines = HardMaxLinesPerRead
	}
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &ReadFileTool{
		repoRoot:    repoRoot,
		maxLines:    maxLines,
		maxFileSize: maxFileSize,
	}
}

// Name returns the tool name
func (t *ReadFileTool) Name() string {
	return "read_file"
}

// Description returns the tool description
func (t *ReadFileTool) Description() string {
	return `Read the contents of a file in the repository.
Parameters:
- path (required): Path to the file, relative to the repository root
- start_line (optional): First line to read (1-indexed)
- end_line (optional): Last line to read (1-indexed, inclusive)
Returns the requested lines, each prefixed with its absolute line number.
There is a maximum line count per read; a truncated response says how many
lines remain and how to fetch them.`
}

// Execute runs the tool and returns the file contents
func (t *ReadFileTool) Execute(ctx context.Context, params *ReadFileParams) (string, error) {
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
	if info.Size() > t.maxFileSize {
		return "", fmt.Errorf("file %s is too large (%d bytes); request a specific line range instead", params.Path, info.Size())
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	totalLines := len(lines)

	// Clamp the 1-indexed inclusive range into bounds
	startLine := params.StartLine
	endLine := params.EndLine
	if startLine <= 0 {
		startLine = 1
	}
	if startLine > totalLines {
		startLine = totalLines
	}
	if endLine <= 0 || endLine > totalLines {
		endLine = totalLines
	}
	if endLine < startLine {
		endLine = startLine
	}

	truncated := false
	if endLine-startLine+1 > t.maxLines {
		endLine = startLine + t.maxLines - 1
		truncated = true
	}

	var body strings.Builder
	for i := startLine; i <= endLine; i++ {
		body.WriteString(fmt.Sprintf("%6d | %s\n", i, lines[i-1]))
	}

	var response strings.Builder
	response.WriteString(fmt.Sprintf("File: %s\n", params.Path))
	response.WriteString(fmt.Sprintf("Lines: %d-%d (total lines in file: %d)\n", startLine, endLine, totalLines))
	if truncated {
		remaining := totalLines - endLine
		response.WriteString(fmt.Sprintf("Note: output truncated to %d lines; %d more lines remain. Call read_file again with start_line=%d to continue.\n",
			t.maxLines, remaining, endLine+1))
	}
	response.WriteString("---\n")
	response.WriteString(body.String())

	return response.String(), nil
}
