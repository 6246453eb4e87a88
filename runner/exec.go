package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	humane "github.com/sierrasoftworks/humane-errors-go"

	"github.com/spechtlabs/echeck/plan"
)

// ExecLauncher runs invocations as child processes connected to the given
// streams.
type ExecLauncher struct {
	Dir    string // working directory; empty means the current one
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecLauncher returns a launcher wired to the parent's standard streams.
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Launch starts inv and waits for it. A process killed by a signal reports
// exit code -1.
func (l *ExecLauncher) Launch(ctx context.Context, inv plan.Invocation) (int, error) {
	cmd := exec.CommandContext(ctx, inv.Executable, inv.Args...)
	cmd.Dir = l.Dir
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Start(); err != nil {
		return -1, humane.Wrap(err, fmt.Sprintf("failed to start %s", inv.Executable),
			"check that the linter is installed next to echeck (node_modules/.bin/eslint)",
			"or point 'linter' in .echeck.yaml at an executable eslint binary",
		)
	}

	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, humane.Wrap(err, fmt.Sprintf("failed waiting for %s", inv.Executable),
		"re-run echeck; if the problem persists run the linter directly to inspect it",
	)
}
