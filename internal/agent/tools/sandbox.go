package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/autocommit/autocommit-go/internal/briefing"
)

// Limits bounds what a single tool call may return
type Limits struct {
	MaxLinesPerRead int
	MaxFileSize     int64
	OutlineMaxLines int
}

// DefaultLimits returns the default tool output ceilings
func DefaultLimits() Limits {
	return Limits{
		MaxLinesPerRead: DefaultMaxLinesPerRead,
		MaxFileSize:     DefaultMaxFileSize,
		OutlineMaxLines: DefaultOutlineMaxLines,
	}
}

// Invocation is one tool call as requested by the model
type Invocation struct {
	ID        string
	Name      string
	Arguments string
}

// Outcome is the result of executing an Invocation. Tool failures are
// reported here as error-flagged content, never as Go errors: the model
// reads the failure and adjusts its next call.
type Outcome struct {
	ID      string
	Name    string
	Content string
	IsError bool
}

// Sandbox dispatches model-requested tool calls to the read-only
// inspection tools. It holds no mutable state and performs no writes.
type Sandbox struct {
	getDiff  *GetDiffTool
	readFile *ReadFileTool
	outline  *FileOutlineTool
}

// NewSandbox creates a Sandbox over a repository root and a parsed change set
func NewSandbox(repoRoot string, cs *briefing.ChangeSet, limits Limits) *Sandbox {
	return &Sandbox{
		getDiff:  NewGetDiffTool(cs),
		readFile: NewReadFileTool(repoRoot, limits.MaxLinesPerRead, limits.MaxFileSize),
		outline:  NewFileOutlineTool(repoRoot, limits.OutlineMaxLines),
	}
}

// Specs returns the tool schemas to bind to the chat model
func (s *Sandbox) Specs() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: s.getDiff.Name(),
			Desc: s.getDiff.Description(),
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"path": {Type: schema.String, Desc: "File path as listed in the changed-files table", Required: true},
			}),
		},
		{
			Name: s.readFile.Name(),
			Desc: s.readFile.Description(),
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"path":       {Type: schema.String, Desc: "Path to the file, relative to the repository root", Required: true},
				"start_line": {Type: schema.Integer, Desc: "First line to read (1-indexed)", Required: false},
				"end_line":   {Type: schema.Integer, Desc: "Last line to read (1-indexed, inclusive)", Required: false},
			}),
		},
		{
			Name: s.outline.Name(),
			Desc: s.outline.Description(),
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"path": {Type: schema.String, Desc: "Path to the file, relative to the repository root", Required: true},
			}),
		},
	}
}

// Execute runs one invocation. It never returns a Go error: malformed
// arguments, unknown tool names, and tool failures all come back as
// error-flagged Outcomes so the agent loop can feed them to the model.
func (s *Sandbox) Execute(ctx context.Context, inv Invocation) Outcome {
	outcome := Outcome{ID: inv.ID, Name: inv.Name}

	var content string
	var err error
	switch inv.Name {
	case s.getDiff.Name():
		var params GetDiffParams
		if err = json.Unmarshal([]byte(inv.Arguments), &params); err == nil {
			content, err = s.getDiff.Execute(ctx, &params)
		}
	case s.readFile.Name():
		var params ReadFileParams
		if err = json.Unmarshal([]byte(inv.Arguments), &params); err == nil {
			content, err = s.readFile.Execute(ctx, &params)
		}
	case s.outline.Name():
		var params FileOutlineParams
		if err = json.Unmarshal([]byte(inv.Arguments), &params); err == nil {
			content, err = s.outline.Execute(ctx, &params)
		}
	default:
		err = fmt.Errorf("unknown tool %q; available tools: %s, %s, %s",
			inv.Name, s.getDiff.Name(), s.readFile.Name(), s.outline.Name())
	}

	if err != nil {
		outcome.Content = fmt.Sprintf("Error: %v", err)
		outcome.IsError = true
		return outcome
	}

	outcome.Content = content
	return outcome
}
