package launch

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	apperrors "appboot/errors"
	"appboot/system/file"
)

// Launcher starts the application entry point. The launch replaces the
// bootstrapper process (execve semantics), so nothing runs after it.
type Launcher struct {
	Interpreter string
	EntryPoint  string
	Args        []string
}

func NewLauncher(interpreter, entryPoint string, args []string) *Launcher {
	return &Launcher{
		Interpreter: interpreter,
		EntryPoint:  entryPoint,
		Args:        args,
	}
}

var lookPath = exec.LookPath

var execve = syscall.Exec

// Exec replaces the current process with the entry point. On success it
// never returns; the application inherits the environment and our exit code
// becomes the application's.
func (l *Launcher) Exec() error {
	exists, err := file.IsPathExist(l.EntryPoint)
	if err != nil {
		return fmt.Errorf("failed to check if entry point '%s' exists: %w", l.EntryPoint, err)
	}
	if !exists {
		return fmt.Errorf("entry point '%s' does not exist", l.EntryPoint)
	}

	binary, err := lookPath(l.Interpreter)
	if err != nil {
		return fmt.Errorf("failed to resolve interpreter '%s': %w", l.Interpreter, err)
	}

	argv := append([]string{binary, l.EntryPoint}, l.Args...)
	slog.Info("Launching entry point: " + l.Interpreter + " " + l.EntryPoint)

	if err := execve(binary, argv, os.Environ()); err != nil {
		return fmt.Errorf(apperrors.LaunchErrorTpl, l.EntryPoint, err)
	}

	return nil
}
