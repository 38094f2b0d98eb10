package errors

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateWorkspaceDir validates a workspace directory path supplied by a caller.
// It rejects paths that could be used for traversal or injection and requires
// that the path exists and is a directory.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Must be absolute after cleaning
//   - Must exist and be a directory
func ValidateWorkspaceDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidPath, "workspace directory cannot be empty")
	}

	for _, r := range dir {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "workspace directory contains invalid control characters")
		}
	}

	if strings.ContainsRune(dir, 0) {
		return New(ErrCodeInvalidPath, "workspace directory contains a null byte")
	}

	clean := filepath.Clean(dir)
	if !filepath.IsAbs(clean) {
		return New(ErrCodeInvalidPath, "workspace directory must be absolute: %s", dir)
	}

	info, err := os.Stat(clean)
	if err != nil {
		if os.IsNotExist(err) {
			return New(ErrCodeNotFound, "workspace directory does not exist: %s", clean)
		}
		return Wrap(ErrCodeInvalidPath, err, "stat %s", clean)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "not a directory: %s", clean)
	}

	return nil
}
