// Package profile provides the registry of bundled ESLint configuration
// profiles and the flag-driven selection between them.
//
// Each profile names a file inside the shared config package, so the
// linter receives e.g. --config eslint-config-egoist/esnext.js.
package profile

import (
	"path"
)

// DefaultPackage is the config package the profile files live in.
const DefaultPackage = "eslint-config-egoist"

// Profile is a named bundle of lint rules.
type Profile struct {
	Name string // identifier used on the command line and in logs
	File string // file inside the config package
	Doc  string
}

var (
	// Default applies when no profile flag is set.
	Default = Profile{Name: "default", File: "index.js", Doc: "Node.js and CommonJS projects"}

	// Esnext targets code using modern ECMAScript syntax and modules.
	Esnext = Profile{Name: "esnext", File: "esnext.js", Doc: "ES modules and modern syntax"}

	// Browser targets code running in browsers.
	Browser = Profile{Name: "browser", File: "browser.js", Doc: "Browser globals"}
)

// Flags are the profile-related command line switches.
type Flags struct {
	Esnext  bool
	Browser bool
}

// All returns all bundled profiles in selection priority order, with the
// fallback last.
func All() []Profile {
	return []Profile{
		Esnext,
		Browser,
		Default,
	}
}

// Select picks the profile for the given flags. The first set flag in
// priority order wins, so esnext beats browser.
func Select(f Flags) Profile {
	switch {
	case f.Esnext:
		return Esnext
	case f.Browser:
		return Browser
	default:
		return Default
	}
}

// ConfigRef returns the value passed to the linter's --config argument.
// An empty pkg falls back to DefaultPackage.
func (p Profile) ConfigRef(pkg string) string {
	if pkg == "" {
		pkg = DefaultPackage
	}
	return path.Join(pkg, p.File)
}

func (p Profile) String() string {
	return p.Name
}
