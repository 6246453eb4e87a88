package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	old := Version
	Version = "1.2.3"
	t.Cleanup(func() { Version = old })

	info := Info()
	if !strings.HasPrefix(info, "echeck 1.2.3 ") {
		t.Errorf("Info() = %q, want echeck 1.2.3 prefix", info)
	}
}
