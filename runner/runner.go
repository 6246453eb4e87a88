// Package runner executes a queue of planned invocations one at a time and
// folds their exit codes into a single pass/fail result.
//
// Each child process inherits the standard streams, so the linter's own
// output reaches the terminal untouched. A failing invocation never stops
// the queue; it only marks the run as failed.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"go.uber.org/zap"

	"github.com/spechtlabs/echeck/internal/ui"
	"github.com/spechtlabs/echeck/plan"
)

// State is the lifecycle position of a Runner.
type State int

const (
	// Idle is a Runner that has not started.
	Idle State = iota
	// Running is a Runner draining its queue.
	Running
	// Done is a Runner whose result is final.
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Launcher starts an invocation and blocks until it exits. A non-nil error
// means the process could not be started or waited on; otherwise the exit
// code is returned.
type Launcher interface {
	Launch(ctx context.Context, inv plan.Invocation) (int, error)
}

// Failure records one invocation that did not succeed.
type Failure struct {
	Invocation plan.Invocation
	ExitCode   int
	Err        error // set when the process failed to launch
}

func (f Failure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("%s failed to start: %v", f.Invocation.Executable, f.Err)
	}
	return fmt.Sprintf("%s exited with code %d", f.Invocation.Executable, f.ExitCode)
}

// Result is the aggregate outcome of a run.
type Result struct {
	Ran      int
	Failures []Failure
}

// Failed reports whether any invocation exited non-zero or failed to launch.
func (r Result) Failed() bool {
	return len(r.Failures) > 0
}

// ExitCode returns the process exit code for the result.
func (r Result) ExitCode() int {
	if r.Failed() {
		return 1
	}
	return 0
}

// Runner drains an invocation queue sequentially.
type Runner struct {
	queue    []plan.Invocation
	state    State
	result   Result
	out      io.Writer
	launcher Launcher
	logger   *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where status lines are written.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLauncher replaces the process launcher.
func WithLauncher(l Launcher) Option {
	return func(r *Runner) {
		r.launcher = l
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns an idle Runner over a copy of queue. Argument slices are
// copied too, so the caller may reuse them after New returns.
func New(queue []plan.Invocation, opts ...Option) *Runner {
	q := slices.Clone(queue)
	for i := range q {
		q[i].Args = slices.Clone(q[i].Args)
	}

	r := &Runner{
		queue:    q,
		out:      os.Stdout,
		launcher: NewExecLauncher(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	return r.state
}

// Run executes every queued invocation in order, then prints the final
// status line. Calling Run on a finished Runner returns the recorded result
// without launching anything.
func (r *Runner) Run(ctx context.Context) Result {
	if r.state == Done {
		return r.result
	}
	r.state = Running

	for len(r.queue) > 0 {
		inv := r.queue[0]
		r.queue = r.queue[1:]
		r.runOne(ctx, inv)
	}

	r.state = Done
	r.report()
	return r.result
}

func (r *Runner) runOne(ctx context.Context, inv plan.Invocation) {
	fmt.Fprintln(r.out, inv.Message)
	r.result.Ran++

	log := r.logger.With(
		zap.String("executable", inv.Executable),
		zap.Int("arg_count", len(inv.Args)),
	)

	code, err := r.launcher.Launch(ctx, inv)
	if err != nil {
		ui.Error(r.out, err)
		log.Debug("invocation failed to launch", zap.Error(err))
		r.result.Failures = append(r.result.Failures, Failure{Invocation: inv, ExitCode: -1, Err: err})
		return
	}

	log.Debug("invocation finished", zap.Int("exit_code", code))
	if code != 0 {
		r.result.Failures = append(r.result.Failures, Failure{Invocation: inv, ExitCode: code})
	}
}

func (r *Runner) report() {
	if !r.result.Failed() {
		ui.Success(r.out)
		return
	}

	// With a single invocation the linter output already says what failed.
	var details []string
	if r.result.Ran > 1 {
		for _, f := range r.result.Failures {
			details = append(details, f.String())
		}
	}
	ui.Failure(r.out, details...)
}
