package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spechtlabs/echeck/plan"
)

type outcome struct {
	code int
	err  error
}

// fakeLauncher replays scripted outcomes keyed by executable and records the
// order of launches.
type fakeLauncher struct {
	outcomes map[string]outcome
	launched []string
	args     [][]string
	active   int
	maxOpen  int
}

func (f *fakeLauncher) Launch(_ context.Context, inv plan.Invocation) (int, error) {
	f.active++
	if f.active > f.maxOpen {
		f.maxOpen = f.active
	}
	defer func() { f.active-- }()

	f.launched = append(f.launched, inv.Executable)
	f.args = append(f.args, inv.Args)
	o := f.outcomes[inv.Executable]
	return o.code, o.err
}

func invocation(name string) plan.Invocation {
	return plan.Invocation{Message: "==> " + name, Executable: name, Args: []string{"--config", "x"}}
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name       string
		queue      []string
		outcomes   map[string]outcome
		wantExit   int
		wantOutput string
	}{
		{
			name:       "empty queue succeeds",
			queue:      nil,
			wantExit:   0,
			wantOutput: "All good!",
		},
		{
			name:       "zero exit succeeds",
			queue:      []string{"eslint"},
			outcomes:   map[string]outcome{"eslint": {code: 0}},
			wantExit:   0,
			wantOutput: "All good!",
		},
		{
			name:       "exit code 2 fails",
			queue:      []string{"eslint"},
			outcomes:   map[string]outcome{"eslint": {code: 2}},
			wantExit:   1,
			wantOutput: "Failed!",
		},
		{
			name:       "launch error fails",
			queue:      []string{"missing"},
			outcomes:   map[string]outcome{"missing": {code: -1, err: errors.New("executable file not found")}},
			wantExit:   1,
			wantOutput: "executable file not found",
		},
		{
			name:  "one failure among many fails",
			queue: []string{"a", "b", "c"},
			outcomes: map[string]outcome{
				"b": {code: 1},
			},
			wantExit:   1,
			wantOutput: "b exited with code 1",
		},
		{
			name:       "all zero among many succeeds",
			queue:      []string{"a", "b", "c"},
			wantExit:   0,
			wantOutput: "All good!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var queue []plan.Invocation
			for _, name := range tt.queue {
				queue = append(queue, invocation(name))
			}

			var out bytes.Buffer
			launcher := &fakeLauncher{outcomes: tt.outcomes}
			r := New(queue, WithOutput(&out), WithLauncher(launcher))

			res := r.Run(context.Background())

			assert.Equal(t, tt.wantExit, res.ExitCode())
			assert.Equal(t, tt.wantExit == 1, res.Failed())
			assert.Equal(t, len(tt.queue), res.Ran)
			assert.Contains(t, out.String(), tt.wantOutput)
			assert.Equal(t, Done, r.State())
		})
	}
}

func TestRunContinuesAfterFailures(t *testing.T) {
	launcher := &fakeLauncher{outcomes: map[string]outcome{
		"a": {code: -1, err: errors.New("permission denied")},
		"b": {code: 3},
	}}
	queue := []plan.Invocation{invocation("a"), invocation("b"), invocation("c")}

	res := New(queue, WithOutput(&bytes.Buffer{}), WithLauncher(launcher)).Run(context.Background())

	assert.Equal(t, []string{"a", "b", "c"}, launcher.launched)
	assert.Equal(t, 1, launcher.maxOpen)
	require.Len(t, res.Failures, 2)
	assert.Error(t, res.Failures[0].Err)
	assert.Equal(t, 3, res.Failures[1].ExitCode)
	assert.NoError(t, res.Failures[1].Err)
}

func TestRunPrintsMessagesInOrder(t *testing.T) {
	var out bytes.Buffer
	queue := []plan.Invocation{invocation("first"), invocation("second")}

	New(queue, WithOutput(&out), WithLauncher(&fakeLauncher{})).Run(context.Background())

	s := out.String()
	first := bytes.Index([]byte(s), []byte("==> first"))
	second := bytes.Index([]byte(s), []byte("==> second"))
	final := bytes.Index([]byte(s), []byte("All good!"))
	require.True(t, first >= 0 && second >= 0 && final >= 0, "output: %q", s)
	assert.Less(t, first, second)
	assert.Less(t, second, final)
}

func TestRunIsTerminal(t *testing.T) {
	launcher := &fakeLauncher{outcomes: map[string]outcome{"eslint": {code: 2}}}
	r := New([]plan.Invocation{invocation("eslint")}, WithOutput(&bytes.Buffer{}), WithLauncher(launcher))
	assert.Equal(t, Idle, r.State())

	first := r.Run(context.Background())
	second := r.Run(context.Background())

	assert.Equal(t, first, second)
	assert.Len(t, launcher.launched, 1)
}

func TestNewCopiesQueue(t *testing.T) {
	queue := []plan.Invocation{invocation("a"), invocation("b")}
	New(queue, WithOutput(&bytes.Buffer{}), WithLauncher(&fakeLauncher{})).Run(context.Background())

	assert.Equal(t, "a", queue[0].Executable)
	assert.Equal(t, "b", queue[1].Executable)
}

func TestSingleFailureOmitsDetails(t *testing.T) {
	var out bytes.Buffer
	launcher := &fakeLauncher{outcomes: map[string]outcome{"eslint": {code: 2}}}
	New([]plan.Invocation{invocation("eslint")}, WithOutput(&out), WithLauncher(launcher)).Run(context.Background())

	assert.Contains(t, out.String(), "Failed!")
	assert.NotContains(t, out.String(), "exited with code")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "State(7)", State(7).String())
}

func TestFailureString(t *testing.T) {
	inv := invocation("eslint")
	assert.Equal(t, "eslint exited with code 2", Failure{Invocation: inv, ExitCode: 2}.String())
	assert.Contains(t, Failure{Invocation: inv, ExitCode: -1, Err: errors.New("nope")}.String(), "failed to start")
}

func TestNewCopiesArguments(t *testing.T) {
	queue := []plan.Invocation{invocation("eslint")}
	args := queue[0].Args

	launcher := &fakeLauncher{}
	r := New(queue, WithOutput(&bytes.Buffer{}), WithLauncher(launcher))

	args[1] = "mutated"
	queue[0].Executable = "other"

	r.Run(context.Background())
	require.Equal(t, []string{"eslint"}, launcher.launched)
	assert.Equal(t, [][]string{{"--config", "x"}}, launcher.args)
}
