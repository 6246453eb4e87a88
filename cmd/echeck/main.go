// Command echeck lints JavaScript files with ESLint using one of three
// bundled configuration profiles.
//
// Usage:
//
//	echeck [patterns...]
//
// With no patterns every .js and .jsx file below the working directory is
// linted. Dependency, coverage, temp, vendor, dist, fixture, minified and
// bundle files are always skipped.
//
// Options:
//
//	--esnext        Use esnext config for eslint
//	--browser       Use browser config for eslint
//	--quiet         Report error-level logs only
//	--ignore GLOB   Skip files matching GLOB (repeatable)
//	--debug         Print debug logs to stderr
//	-v, --version   Print version
//	-h, --help      Print help
//
// Configuration:
//
// A .echeck.yaml file in the working directory or any parent adjusts the
// defaults:
//
//	linter: ./node_modules/.bin/eslint
//	configPackage: eslint-config-egoist
//	ignore:
//	  - build/**
//	defaultIgnore: true
//	dot: false
//
// The exit code is 0 when ESLint reports no errors and 1 otherwise.
package main

import (
	"errors"
	"os"

	"github.com/spechtlabs/echeck/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCommand(defaultDeps())
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		// ErrLintFailed is only a signal for the exit code; the runner has
		// already printed the failure line.
		if !errors.Is(err, ErrLintFailed) {
			ui.Error(os.Stderr, err)
		}
		return 1
	}
	return 0
}
