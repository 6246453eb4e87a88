package profile

import (
	"testing"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  Profile
	}{
		{
			name:  "no flags selects default",
			flags: Flags{},
			want:  Default,
		},
		{
			name:  "esnext flag",
			flags: Flags{Esnext: true},
			want:  Esnext,
		},
		{
			name:  "browser flag",
			flags: Flags{Browser: true},
			want:  Browser,
		},
		{
			name:  "esnext wins over browser",
			flags: Flags{Esnext: true, Browser: true},
			want:  Esnext,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.flags)
			if got != tt.want {
				t.Errorf("Select(%+v) = %q, want %q", tt.flags, got, tt.want)
			}
		})
	}
}

func TestSelectExhaustive(t *testing.T) {
	for _, esnext := range []bool{false, true} {
		for _, browser := range []bool{false, true} {
			got := Select(Flags{Esnext: esnext, Browser: browser})
			switch {
			case esnext && got != Esnext:
				t.Errorf("esnext=%v browser=%v: got %q, want esnext", esnext, browser, got)
			case !esnext && !browser && got != Default:
				t.Errorf("esnext=%v browser=%v: got %q, want default", esnext, browser, got)
			}
		}
	}
}

func TestConfigRef(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		pkg     string
		want    string
	}{
		{"default package", Default, "", "eslint-config-egoist/index.js"},
		{"esnext file", Esnext, "", "eslint-config-egoist/esnext.js"},
		{"custom package", Browser, "@acme/eslint-config", "@acme/eslint-config/browser.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.ConfigRef(tt.pkg); got != tt.want {
				t.Errorf("ConfigRef(%q) = %q, want %q", tt.pkg, got, tt.want)
			}
		})
	}
}
