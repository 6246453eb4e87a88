// Package expand turns glob patterns into a concrete, sorted list of files,
// skipping conventional dependency, build output and fixture directories.
//
// Patterns use doublestar syntax (**, {a,b}, [abc]) and are matched against
// slash-separated paths relative to the expansion root. A pattern starting
// with "!" excludes its matches instead of adding them, and a pattern naming
// a directory matches the .js and .jsx files below it.
package expand

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	humane "github.com/sierrasoftworks/humane-errors-go"
	"go.uber.org/zap"
)

// DefaultPattern is used when no pattern is given.
const DefaultPattern = "**/*.{js,jsx}"

// DefaultIgnore lists the globs excluded unless explicitly disabled.
var DefaultIgnore = []string{
	"**/node_modules/**",
	"**/bower_components/**",
	"coverage/**",
	"{tmp,temp}/**",
	"**/*.min.js",
	"**/bundle.js",
	"fixture{-*,}.{js,jsx}",
	"fixture{s,}/**",
	"{test,tests,spec,__tests__}/fixture{s,}/**",
	"vendor/**",
	"dist/**",
}

// Expander expands glob patterns against a file system.
type Expander struct {
	fsys          fs.FS
	root          string
	extraIgnore   []string
	defaultIgnore bool
	dot           bool
	logger        *zap.Logger
}

// Option configures an Expander.
type Option func(*Expander)

// WithIgnore appends ignore globs to the built-in list.
func WithIgnore(patterns ...string) Option {
	return func(e *Expander) {
		e.extraIgnore = append(e.extraIgnore, patterns...)
	}
}

// WithDefaultIgnore toggles the built-in ignore list.
func WithDefaultIgnore(enabled bool) Option {
	return func(e *Expander) {
		e.defaultIgnore = enabled
	}
}

// WithDot lets wildcards match names starting with a dot.
func WithDot(enabled bool) Option {
	return func(e *Expander) {
		e.dot = enabled
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Expander) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an Expander rooted at the directory dir.
func New(dir string, opts ...Option) *Expander {
	e := NewFS(os.DirFS(dir), opts...)
	e.root = dir
	return e
}

// NewFS returns an Expander over fsys. Absolute patterns are rejected since
// fsys has no known location on disk.
func NewFS(fsys fs.FS, opts ...Option) *Expander {
	e := &Expander{
		fsys:          fsys,
		defaultIgnore: true,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ignore returns the effective ignore globs.
func (e *Expander) Ignore() []string {
	var out []string
	if e.defaultIgnore {
		out = append(out, DefaultIgnore...)
	}
	return append(out, e.extraIgnore...)
}

// Expand returns the files matching any of patterns and none of the ignore
// globs, deduplicated and in lexical order. An empty pattern list expands
// DefaultPattern. Matching nothing is not an error.
func (e *Expander) Expand(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	var include []string
	ignore := e.Ignore()
	for _, raw := range patterns {
		negated := strings.HasPrefix(raw, "!")
		p, err := e.normalize(strings.TrimPrefix(raw, "!"))
		if err != nil {
			return nil, err
		}
		if negated {
			ignore = append(ignore, p)
			continue
		}
		if p, err = e.directoryPattern(p); err != nil {
			return nil, err
		}
		include = append(include, p)
	}

	for i, ig := range ignore {
		p, err := e.normalize(ig)
		if err != nil {
			return nil, err
		}
		if p == "." {
			p = "**"
		}
		ignore[i] = p
	}

	seen := make(map[string]struct{})
	for _, p := range include {
		if err := e.walk(p, ignore, seen); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)

	e.logger.Debug("expanded patterns",
		zap.Strings("patterns", include),
		zap.Int("ignore_count", len(ignore)),
		zap.Int("file_count", len(files)),
	)
	return files, nil
}

// walk adds every file under the static base of pattern that matches it.
func (e *Expander) walk(pattern string, ignore []string, seen map[string]struct{}) error {
	allowDot := e.dot || hasDotSegment(pattern)
	if isLiteral(pattern) {
		return e.stat(pattern, ignore, seen)
	}

	base, _ := doublestar.SplitPattern(pattern)

	err := fs.WalkDir(e.fsys, base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == base && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}

		if d.IsDir() {
			if p == base {
				return nil
			}
			if !allowDot && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			if prunable(p, ignore) {
				e.logger.Debug("skipping ignored directory", zap.String("dir", p))
				return fs.SkipDir
			}
			return nil
		}

		if !allowDot && hasDotSegment(p) {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, p); !ok {
			return nil
		}
		if ignored(p, ignore) {
			return nil
		}
		seen[p] = struct{}{}
		return nil
	})
	if err != nil {
		return humane.Wrap(err, fmt.Sprintf("failed to expand pattern %q", pattern),
			"check that every directory the pattern reaches is readable",
			"exclude unreadable directories with --ignore or the ignore list in .echeck.yaml",
		)
	}
	return nil
}

// stat adds a pattern without metacharacters when it names a regular file.
func (e *Expander) stat(name string, ignore []string, seen map[string]struct{}) error {
	info, err := fs.Stat(e.fsys, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return humane.Wrap(err, fmt.Sprintf("failed to read %q", name),
			"check that the file is readable",
		)
	}
	if info.IsDir() || ignored(name, ignore) {
		return nil
	}
	seen[name] = struct{}{}
	return nil
}

// directoryPattern turns a pattern naming a directory into one matching the
// JavaScript files below it, the way the linter treats a directory argument.
// Other patterns are returned unchanged.
func (e *Expander) directoryPattern(p string) (string, error) {
	if p == "." {
		return DefaultPattern, nil
	}
	if !isLiteral(p) {
		return p, nil
	}

	info, err := fs.Stat(e.fsys, p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return p, nil
	case err != nil:
		return "", humane.Wrap(err, fmt.Sprintf("failed to read %q", p),
			"check that the path is readable",
		)
	}
	if !info.IsDir() {
		return p, nil
	}
	return p + "/" + DefaultPattern, nil
}

// normalize validates pattern and makes it relative to the expansion root.
func (e *Expander) normalize(pattern string) (string, error) {
	p := filepath.ToSlash(pattern)

	if path.IsAbs(p) || filepath.IsAbs(pattern) {
		if e.root == "" {
			return "", humane.New(fmt.Sprintf("absolute pattern %q is not supported here", pattern),
				"use a pattern relative to the working directory",
			)
		}
		root, err := filepath.Abs(e.root)
		if err != nil {
			return "", humane.Wrap(err, "failed to resolve the working directory",
				"check that the working directory still exists",
			)
		}
		rel, err := filepath.Rel(root, pattern)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", humane.New(fmt.Sprintf("pattern %q is outside the working directory", pattern),
				"run echeck from a directory containing the files to lint",
			)
		}
		p = filepath.ToSlash(rel)
	}

	for strings.HasPrefix(p, "./") {
		p = strings.TrimLeft(p[2:], "/")
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		p = "."
	}

	if strings.HasPrefix(p, "../") || p == ".." {
		return "", humane.New(fmt.Sprintf("pattern %q is outside the working directory", pattern),
			"run echeck from a directory containing the files to lint",
		)
	}
	if !doublestar.ValidatePattern(p) {
		return "", humane.New(fmt.Sprintf("invalid glob pattern %q", pattern),
			"check for unbalanced braces or brackets",
			"escape literal metacharacters with a backslash",
		)
	}
	return p, nil
}

// prunable reports whether every path below dir is ignored, which holds
// when an ignore glob of the form "<prefix>/**" has a prefix matching dir.
func prunable(dir string, ignore []string) bool {
	for _, ig := range ignore {
		prefix, ok := strings.CutSuffix(ig, "/**")
		if !ok {
			continue
		}
		if m, _ := doublestar.Match(prefix, dir); m {
			return true
		}
	}
	return false
}

func ignored(p string, ignore []string) bool {
	for _, ig := range ignore {
		if m, _ := doublestar.Match(ig, p); m {
			return true
		}
	}
	return false
}

func isLiteral(p string) bool {
	return !strings.ContainsAny(p, "*?[{\\")
}

func hasDotSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}
