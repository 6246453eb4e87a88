package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	humane "github.com/sierrasoftworks/humane-errors-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spechtlabs/echeck/expand"
	"github.com/spechtlabs/echeck/internal/config"
	"github.com/spechtlabs/echeck/internal/logging"
	"github.com/spechtlabs/echeck/internal/version"
	"github.com/spechtlabs/echeck/plan"
	"github.com/spechtlabs/echeck/profile"
	"github.com/spechtlabs/echeck/runner"
)

// ErrLintFailed signals that the linter ran and at least one invocation
// failed.
var ErrLintFailed = errors.New("lint failed")

// deps are the process-level collaborators of the root command.
type deps struct {
	stdout     io.Writer
	stderr     io.Writer
	workDir    func() (string, error)
	installDir func() (string, error)

	// launcher runs the planned invocations; nil means child processes in
	// the working directory.
	launcher runner.Launcher
}

func defaultDeps() deps {
	return deps{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		workDir:    os.Getwd,
		installDir: plan.InstallDir,
	}
}

type options struct {
	esnext  bool
	browser bool
	quiet   bool
	debug   bool
	ignore  []string
}

func newRootCommand(d deps) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "echeck [patterns...]",
		Short: "Lint JavaScript files with a bundled ESLint profile",
		Long:          longHelp(),
		Args:          cobra.ArbitraryArgs,
		Version:       version.Info(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lint(cmd.Context(), d, opts, args)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetOut(d.stdout)
	cmd.SetErr(d.stderr)

	f := cmd.Flags()
	f.BoolVar(&opts.esnext, "esnext", false, "Use esnext config for eslint")
	f.BoolVar(&opts.browser, "browser", false, "Use browser config for eslint")
	f.BoolVar(&opts.quiet, "quiet", false, "Report error-level logs only")
	f.StringArrayVar(&opts.ignore, "ignore", nil, "Skip files matching this glob (repeatable)")
	f.BoolVar(&opts.debug, "debug", false, "Print debug logs to stderr")

	return cmd
}

func longHelp() string {
	var b strings.Builder
	b.WriteString(`Lint JavaScript files with a bundled ESLint profile.

Patterns default to **/*.{js,jsx}; a directory lints the .js and .jsx files
below it. Dependency, coverage, temp, vendor, dist, fixture, minified and
bundle files are always skipped. Prefix a pattern with ! to exclude its
matches.

Profiles (first set flag wins):
`)
	for _, p := range profile.All() {
		flag := "--" + p.Name
		if p == profile.Default {
			flag = "(no flag)"
		}
		fmt.Fprintf(&b, "  %-10s %-12s %s\n", flag, p.File, p.Doc)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func lint(ctx context.Context, d deps, opts options, patterns []string) error {
	logger := logging.New(d.stderr, opts.debug)
	defer func() { _ = logger.Sync() }()

	wd, err := d.workDir()
	if err != nil {
		return humane.Wrap(err, "failed to determine the working directory",
			"run echeck from an existing directory",
		)
	}

	cfg, err := config.Load(wd)
	if err != nil {
		return err
	}
	if cfg.Path() != "" {
		logger.Debug("loaded configuration", zap.String("path", cfg.Path()))
	}

	linter := cfg.Linter
	if linter == "" {
		dir, err := d.installDir()
		if err != nil {
			return err
		}
		linter = plan.LinterPath(dir)
	}

	expander := expand.New(wd, append(cfg.ExpandOptions(opts.ignore...), expand.WithLogger(logger))...)
	planner := plan.New(linter, expander,
		plan.WithConfigPackage(cfg.ConfigPackage),
		plan.WithLogger(logger),
	)

	queue, err := planner.Plan(plan.Request{
		Patterns: patterns,
		Flags:    profile.Flags{Esnext: opts.esnext, Browser: opts.browser},
		Quiet:    opts.quiet,
	})
	if err != nil {
		return err
	}

	launcher := d.launcher
	if launcher == nil {
		l := runner.NewExecLauncher()
		l.Dir = wd
		launcher = l
	}

	res := runner.New(queue,
		runner.WithOutput(d.stdout),
		runner.WithLauncher(launcher),
		runner.WithLogger(logger),
	).Run(ctx)

	if res.Failed() {
		return ErrLintFailed
	}
	return nil
}
