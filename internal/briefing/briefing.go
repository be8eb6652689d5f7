// Package briefing turns a raw unified diff and a repository root into the
// initial context for the commit agent. The briefing is deliberately
// information-poor: it names what changed but not how, which forces the
// model to inspect the changes through tools instead of guessing from
// file names.
package briefing

import (
	"fmt"
	"strings"
)

// Builder renders briefings with bounded repository trees
type Builder struct {
	treeMaxDepth int
	treeMaxFiles int
}

// NewBuilder creates a Builder; non-positive ceilings fall back to defaults
func NewBuilder(treeMaxDepth, treeMaxFiles int) *Builder {
	if treeMaxDepth <= 0 {
		treeMaxDepth = 4
	}
	if treeMaxFiles <= 0 {
		treeMaxFiles = 200
	}
	return &Builder{
		treeMaxDepth: treeMaxDepth,
		treeMaxFiles: treeMaxFiles,
	}
}

// Build renders the briefing for a diff rooted at repoRoot
func (b *Builder) Build(diff, repoRoot string) string {
	cs := ParseDiff(diff)
	return b.BuildFromChangeSet(&cs, repoRoot)
}

// BuildFromChangeSet renders the briefing for an already-parsed change set
func (b *Builder) BuildFromChangeSet(cs *ChangeSet, repoRoot string) string {
	var sb strings.Builder

	sb.WriteString("## Changed Files\n\n")
	if len(cs.Files) == 0 {
		sb.WriteString("(no file sections detected in the diff)\n")
	} else {
		for _, fc := range cs.Files {
			sb.WriteString(fmt.Sprintf("%-9s %s (+%d/-%d)\n",
				fc.Kind, fc.Path, fc.LinesAdded, fc.LinesRemoved))
		}
	}

	sb.WriteString("\n## Repository Structure\n\n")
	tree := BuildTree(repoRoot, b.treeMaxDepth, b.treeMaxFiles)
	if tree == "" {
		sb.WriteString("(empty repository tree)\n")
	} else {
		sb.WriteString(tree)
	}

	sb.WriteString("\n## Instructions\n\n")
	sb.WriteString("You have NOT seen the content of any of these changes yet. ")
	sb.WriteString("Before choosing a commit type, scope, or description, inspect the changes ")
	sb.WriteString("with the available tools: get_diff for a file's diff section, read_file for ")
	sb.WriteString("surrounding source, get_file_outline for a cheap structural summary. ")
	sb.WriteString("Do not classify the change from file names alone.\n")

	return sb.String()
}
