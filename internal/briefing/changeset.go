package briefing

import (
	"regexp"
	"strings"
)

// ChangeKind classifies how a file changed in the diff
type ChangeKind string

const (
	Added    ChangeKind = "added"
	Modified ChangeKind = "modified"
	Deleted  ChangeKind = "deleted"
	Renamed  ChangeKind = "renamed"
)

// FileChange is one file's entry in the change set
type FileChange struct {
	Path         string
	Kind         ChangeKind
	LinesAdded   int
	LinesRemoved int
}

// ChangeSet is the raw diff plus the per-file changes derived from it.
// It is built once per invocation and immutable thereafter.
type ChangeSet struct {
	Diff  string
	Files []FileChange
}

// IsEmpty reports whether the change set carries no changes
func (c *ChangeSet) IsEmpty() bool {
	return strings.TrimSpace(c.Diff) == ""
}

// diffHeaderPattern matches the two-sided section header of a unified diff
var diffHeaderPattern = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)

const nullDevice = "/dev/null"

// ParseDiff derives the ordered FileChange sequence from a unified diff.
// Every hunk belongs to exactly one FileChange; the change kind is decided
// by which side of the section is the null device.
func ParseDiff(diff string) ChangeSet {
	cs := ChangeSet{Diff: diff}

	var (
		inSection bool
		oldPath   string
		newPath   string
		oldNull   bool
		newNull   bool
		added     int
		removed   int
	)

	flush := func() {
		if !inSection {
			return
		}
		fc := FileChange{LinesAdded: added, LinesRemoved: removed}
		switch {
		case oldNull:
			fc.Kind = Added
			fc.Path = newPath
		case newNull:
			fc.Kind = Deleted
			fc.Path = oldPath
		case oldPath != newPath:
			fc.Kind = Renamed
			fc.Path = newPath
		default:
			fc.Kind = Modified
			fc.Path = newPath
		}
		cs.Files = append(cs.Files, fc)
	}

	for _, line := range strings.Split(diff, "\n") {
		if m := diffHeaderPattern.FindStringSubmatch(line); m != nil {
			flush()
			inSection = true
			oldPath, newPath = m[1], m[2]
			oldNull, newNull = false, false
			added, removed = 0, 0
			continue
		}
		if !inSection {
			continue
		}

		switch {
		case strings.HasPrefix(line, "--- "):
			if strings.TrimSpace(line[4:]) == nullDevice {
				oldNull = true
			}
		case strings.HasPrefix(line, "+++ "):
			if strings.TrimSpace(line[4:]) == nullDevice {
				newNull = true
			}
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	flush()

	return cs
}

// SectionFor returns the verbatim diff section whose header references the
// given path on either side, or "" when no section matches.
func (c *ChangeSet) SectionFor(path string) string {
	lines := strings.Split(c.Diff, "\n")

	var (
		collecting bool
		section    []string
	)
	for _, line := range lines {
		if m := diffHeaderPattern.FindStringSubmatch(line); m != nil {
			if collecting {
				break
			}
			if m[1] == path || m[2] == path {
				collecting = true
			}
		}
		if collecting {
			section = append(section, line)
		}
	}

	if !collecting {
		return ""
	}
	return strings.Join(section, "\n")
}
