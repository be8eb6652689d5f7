package tools

import (
	"context"
	"fmt"

	"github.com/autocommit/autocommit-go/internal/briefing"
)

// GetDiffParams contains parameters for the get_diff tool
type GetDiffParams struct {
	Path string `json:"path"`
}

// GetDiffTool returns the diff section for a single changed file. It never
// touches the file system; it re-scans the diff text captured at the start
// of the invocation.
type GetDiffTool struct {
	changeSet *briefing.ChangeSet
}

// NewGetDiffTool creates a new GetDiffTool
func NewGetDiffTool(cs *briefing.ChangeSet) *GetDiffTool {
	return &GetDiffTool{changeSet: cs}
}

// Name returns the tool name
func (t *GetDiffTool) Name() string {
	return "get_diff"
}

// Description returns the tool description
func (t *GetDiffTool) Description() string {
	return `Get the diff section for one changed file.
Parameters:
- path (required): The file path exactly as listed in the changed-files table.
Returns the verbatim diff hunks for that file, or a not-found message when the
path does not appear in the pending changes.`
}

// Execute runs the tool and returns the diff section
func (t *GetDiffTool) Execute(ctx context.Context, params *GetDiffParams) (string, error) {
	if params == nil || params.Path == "" {
		return "", fmt.Errorf("path is required")
	}

	section := t.changeSet.SectionFor(params.Path)
	if section == "" {
		return fmt.Sprintf("No diff section found for %q. Check the path against the changed-files table.", params.Path), nil
	}

	return section, nil
}
