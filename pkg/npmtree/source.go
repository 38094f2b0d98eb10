package npmtree

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/depclose/depclose/pkg/errors"
)

// Source produces raw dependency-tree data for a workspace directory.
type Source interface {
	// Query returns the raw production dependency listing for dir.
	Query(ctx context.Context, dir string) ([]byte, error)
}

// ExecSource queries the package manager by spawning one process per call.
// The zero value uses the platform's pnpm executable with the standard
// production listing arguments.
type ExecSource struct {
	// Bin overrides the executable. Empty means pnpm ("pnpm.cmd" on Windows).
	Bin string
	// Args overrides the full argument list. Nil means the standard
	// production listing arguments.
	Args []string
}

// defaultArgs requests production-only dependencies, JSON output, and
// unbounded depth.
var defaultArgs = []string{"list", "--prod", "--depth", "Infinity", "--json"}

// pnpmBin returns the platform's pnpm executable name.
func pnpmBin() string {
	if runtime.GOOS == "windows" {
		return "pnpm.cmd"
	}
	return "pnpm"
}

// Query runs the dependency listing in dir and returns its stdout.
//
// A non-zero exit with non-empty stdout is treated as success: pnpm reports
// many non-fatal conditions (peer warnings, deprecations) through the exit
// code while still emitting a complete tree. A failed command with no stdout
// returns a SOURCE_UNAVAILABLE error. There are no retries; the caller
// decides whether to reissue a whole resolution.
func (s *ExecSource) Query(ctx context.Context, dir string) ([]byte, error) {
	bin := s.Bin
	if bin == "" {
		bin = pnpmBin()
	}
	args := s.Args
	if args == nil {
		args = defaultArgs
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "NODE_ENV=production")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil || len(bytes.TrimSpace(stdout.Bytes())) > 0 {
		return stdout.Bytes(), nil
	}

	cmdline := strings.TrimSpace(bin + " " + strings.Join(args, " "))
	if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "%s in %s: %s", cmdline, dir, msg)
	}
	return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "%s in %s produced no output", cmdline, dir)
}
