// Package plan turns command line input into the queue of linter invocations
// the runner executes.
package plan

import (
	"os"
	"path/filepath"

	humane "github.com/sierrasoftworks/humane-errors-go"
	"go.uber.org/zap"

	"github.com/spechtlabs/echeck/expand"
	"github.com/spechtlabs/echeck/internal/ui"
	"github.com/spechtlabs/echeck/profile"
)

// Invocation describes one external process call. Values are treated as
// immutable once built.
type Invocation struct {
	Message    string   // status line printed before the process starts
	Executable string   // path to the program
	Args       []string // arguments, excluding the program name
}

// Request is the command line input relevant to planning.
type Request struct {
	Patterns []string
	Flags    profile.Flags
	Quiet    bool
}

// Planner builds invocations for a single linter executable.
type Planner struct {
	linter        string
	configPackage string
	expander      *expand.Expander
	logger        *zap.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithConfigPackage sets the package the profile files are loaded from.
func WithConfigPackage(pkg string) Option {
	return func(p *Planner) {
		if pkg != "" {
			p.configPackage = pkg
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New returns a Planner invoking linter on the files found by expander.
func New(linter string, expander *expand.Expander, opts ...Option) *Planner {
	p := &Planner{
		linter:        linter,
		configPackage: profile.DefaultPackage,
		expander:      expander,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan returns the ordered invocation queue for req. Today it always holds
// exactly one invocation, for the profile selected by req.Flags.
func (p *Planner) Plan(req Request) ([]Invocation, error) {
	inv, err := p.Invocation(req)
	if err != nil {
		return nil, err
	}
	return []Invocation{inv}, nil
}

// Invocation builds the linter call for req. Matching no files is not an
// error; the linter decides what to do with an empty file list.
func (p *Planner) Invocation(req Request) (Invocation, error) {
	prof := profile.Select(req.Flags)

	files, err := p.expander.Expand(req.Patterns)
	if err != nil {
		return Invocation{}, err
	}

	args := make([]string, 0, len(files)+3)
	args = append(args, "--config", prof.ConfigRef(p.configPackage), QuietArg(req.Quiet))
	for _, f := range files {
		args = append(args, filepath.FromSlash(f))
	}

	p.logger.Debug("planned linter invocation",
		zap.String("profile", prof.Name),
		zap.String("executable", p.linter),
		zap.Int("pattern_count", len(req.Patterns)),
		zap.Int("file_count", len(files)),
		zap.Bool("quiet", req.Quiet),
	)

	return Invocation{
		Message:    ui.Step("ESLint..."),
		Executable: p.linter,
		Args:       args,
	}, nil
}

// QuietArg returns the linter switch for the quiet flag.
func QuietArg(quiet bool) string {
	if quiet {
		return "--quiet"
	}
	return "--no-quiet"
}

// LinterPath returns the linter executable bundled under installDir.
func LinterPath(installDir string) string {
	return filepath.Join(installDir, "node_modules", ".bin", "eslint")
}

// InstallDir returns the directory holding the running executable, with
// symlinks resolved.
func InstallDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", humane.Wrap(err, "failed to locate the echeck executable",
			"set 'linter' in .echeck.yaml to the path of your eslint binary",
		)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
