package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolvePath validates a model-supplied path and returns an absolute path
// inside the repository root. Tool arguments originate from an untrusted
// model, so any resolution that escapes the root is rejected.
func resolvePath(repoRoot, p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("path is required")
	}

	root, err := filepath.Abs(repoRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve repository root: %w", err)
	}

	clean := filepath.Clean(p)
	var abs string
	if filepath.IsAbs(clean) {
		abs = filepath.Clean(clean)
	} else {
		abs = filepath.Clean(filepath.Join(root, clean))
	}

	if abs != root && !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes the repository root: %s", p)
	}

	return abs, nil
}
