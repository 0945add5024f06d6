package syspkg

import (
	"strings"
	"testing"

	"appboot/system/command"
	"appboot/system/file"

	"github.com/spf13/afero"
)

// fakeShellCommand records an invocation instead of running it.
type fakeShellCommand struct {
	name           string
	args           []string
	envVars        []string
	inheritEnvVars bool
	runErr         error
}

func (f *fakeShellCommand) Run() error {
	return f.runErr
}

func (f *fakeShellCommand) String() string {
	return strings.TrimSpace(f.name + " " + strings.Join(f.args, " "))
}

func (f *fakeShellCommand) GetName() string {
	return f.name
}

func (f *fakeShellCommand) GetArgs() []string {
	return f.args
}

func (f *fakeShellCommand) GetEnvVars() []string {
	return f.envVars
}

func (f *fakeShellCommand) GetInheritEnvVars() bool {
	return f.inheritEnvVars
}

type shellRecorder struct {
	calls []*fakeShellCommand
	// errOnCall injects runErr into the nth constructed command (0-based).
	errOnCall int
	err       error
}

func (r *shellRecorder) new(name string, args []string, envVars []string, inheritEnvVars bool) command.ShellCommandRunner {
	c := &fakeShellCommand{
		name:           name,
		args:           args,
		envVars:        envVars,
		inheritEnvVars: inheritEnvVars,
	}
	if r.err != nil && r.errOnCall == len(r.calls) {
		c.runErr = r.err
	}
	r.calls = append(r.calls, c)
	return c
}

func interceptShellCommands(t *testing.T, errOnCall int, err error) *shellRecorder {
	t.Helper()

	r := &shellRecorder{errOnCall: errOnCall, err: err}
	old := command.NewShellCommand
	command.NewShellCommand = r.new
	t.Cleanup(func() {
		command.NewShellCommand = old
	})
	return r
}

func useMemMapFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	file.AppFs = fs
	t.Cleanup(func() {
		file.AppFs = afero.NewOsFs()
	})
	return fs
}
