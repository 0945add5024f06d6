package aboottest

import (
	"strings"
	"testing"

	"appboot/system/command"

	"github.com/stretchr/testify/assert"
)

type FakeShellCallError struct {
	OnCall int
	Err    error
}

type ShellCall struct {
	Binary         string
	ContainsArgs   []string
	EnvVars        []string
	InheritEnvVars bool
}

func (s *ShellCall) Equal(t *testing.T, name string, args []string, envVars []string, inheritEnvVars bool) {
	assert := assert.New(t)
	assert.Equal(s.Binary, name)
	for _, arg := range s.ContainsArgs {
		assert.Contains(args, arg)
	}
	for _, v := range s.EnvVars {
		assert.Contains(envVars, v)
	}
	assert.Equal(s.InheritEnvVars, inheritEnvVars)
}

// FakeShellCommand records a single command invocation without running it.
type FakeShellCommand struct {
	Name           string
	Args           []string
	EnvVars        []string
	InheritEnvVars bool
	RunErr         error
	RunCalls       int
}

func (f *FakeShellCommand) Run() error {
	f.RunCalls++
	return f.RunErr
}

func (f *FakeShellCommand) String() string {
	return strings.TrimSpace(f.Name + " " + strings.Join(f.Args, " "))
}

func (f *FakeShellCommand) GetName() string {
	return f.Name
}

func (f *FakeShellCommand) GetArgs() []string {
	return f.Args
}

func (f *FakeShellCommand) GetEnvVars() []string {
	return f.EnvVars
}

func (f *FakeShellCommand) GetInheritEnvVars() bool {
	return f.InheritEnvVars
}

// ShellRecorder captures every command constructed through
// command.NewShellCommand while a test runs.
type ShellRecorder struct {
	Calls   []*FakeShellCommand
	CallErr *FakeShellCallError
}

func (r *ShellRecorder) New(name string, args []string, envVars []string, inheritEnvVars bool) command.ShellCommandRunner {
	c := &FakeShellCommand{
		Name:           name,
		Args:           args,
		EnvVars:        envVars,
		InheritEnvVars: inheritEnvVars,
	}
	if r.CallErr != nil && r.CallErr.OnCall == len(r.Calls) {
		c.RunErr = r.CallErr.Err
	}
	r.Calls = append(r.Calls, c)
	return c
}

// InterceptShellCommands swaps command.NewShellCommand for a recorder and
// restores it when the test finishes.
func InterceptShellCommands(t *testing.T, callErr *FakeShellCallError) *ShellRecorder {
	t.Helper()

	r := &ShellRecorder{CallErr: callErr}
	old := command.NewShellCommand
	command.NewShellCommand = r.New
	t.Cleanup(func() {
		command.NewShellCommand = old
	})
	return r
}
