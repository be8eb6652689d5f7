package agent

import (
	"regexp"
	"strings"
)

// commitLinePattern matches a conventional-commit subject line:
// type, optional (scope), optional !, colon, space, non-empty description.
var commitLinePattern = regexp.MustCompile(`^(feat|fix|docs|style|refactor|perf|test|build|ci|chore|revert)(\([^)]*\))?!?: .+`)

// ExtractCommitMessage strips the prose and markdown wrapping models wrap
// around commit messages. It is advisory, never destructive: when no
// conventional-commit line can be found the input comes back trimmed but
// otherwise untouched. Applying it twice gives the same result as once.
func ExtractCommitMessage(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return text
	}

	if out, ok := fromFirstCommitLine(text); ok {
		return out
	}

	// The commit line may hide behind an opening fence with a language tag,
	// e.g. "```text\nfeat: ...". Strip the outer fence pair and retry.
	if stripped := stripOuterFences(text); stripped != text {
		if out, ok := fromFirstCommitLine(stripped); ok {
			return out
		}
	}

	return text
}

// fromFirstCommitLine returns the text starting at the first
// conventional-commit line. Fence-marker lines after that point are
// dropped and lines are left-trimmed. When the very first line already
// matches, the text is returned unchanged.
func fromFirstCommitLine(text string) (string, bool) {
	lines := strings.Split(text, "\n")

	if commitLinePattern.MatchString(strings.TrimSpace(lines[0])) {
		return text, true
	}

	for i, line := range lines {
		if !commitLinePattern.MatchString(strings.TrimSpace(line)) {
			continue
		}
		var kept []string
		for _, l := range lines[i:] {
			trimmed := strings.TrimLeft(l, " \t")
			if strings.HasPrefix(trimmed, "```") {
				continue
			}
			kept = append(kept, trimmed)
		}
		return strings.TrimSpace(strings.Join(kept, "\n")), true
	}

	return "", false
}

// stripOuterFences removes a leading and a trailing code-fence line
func stripOuterFences(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
