package bootstrap

import (
	"fmt"
	"log/slog"
	"strings"

	apperrors "appboot/errors"
	"appboot/tools/odbc"
	"appboot/tools/pydeps"
)

// Step is one named unit of environment preparation.
type Step struct {
	Name string
	Run  func() error
}

// Launcher starts the application once the steps have run.
type Launcher interface {
	Exec() error
}

// Sequence runs steps in order and then invokes the launcher exactly once.
//
// The default policy is fail-fast: the first failing step aborts the
// sequence with a diagnostic naming the step, and the launcher is never
// invoked. KeepGoing reproduces the historical shell-script behavior: every
// failure is logged, the remaining steps still run, and the entry point is
// launched regardless, possibly into an inconsistent environment.
type Sequence struct {
	Steps     []Step
	Launcher  Launcher
	KeepGoing bool
}

func (s *Sequence) Run() error {
	var failed []string

	for _, step := range s.Steps {
		slog.Info("Running bootstrap step: " + step.Name)
		err := step.Run()
		if err == nil {
			continue
		}
		if !s.KeepGoing {
			return fmt.Errorf(apperrors.StepFailedErrorTpl, step.Name, err)
		}
		slog.Error("Bootstrap step '" + step.Name + "' failed, continuing: " + err.Error())
		failed = append(failed, step.Name)
	}

	if len(failed) > 0 {
		slog.Warn("Launching despite failed step(s): " + strings.Join(failed, ", "))
	}

	if s.Launcher == nil {
		slog.Info("No launcher configured, bootstrap complete")
		return nil
	}

	return s.Launcher.Exec()
}

// NewSequence assembles the standard bootstrap: signing key, repository,
// index refresh, ODBC driver, Python dependencies, then the entry point.
func NewSequence(driver *odbc.Manager, deps *pydeps.Manager, requirements []string, launcher Launcher, keepGoing bool) *Sequence {
	return &Sequence{
		Steps: []Step{
			{Name: "register signing key", Run: driver.RegisterKey},
			{Name: "register package repository", Run: driver.AddRepository},
			{Name: "refresh package index", Run: driver.RefreshIndex},
			{Name: "install odbc driver", Run: driver.Install},
			{Name: "install python dependencies", Run: func() error {
				return deps.InstallPackages(&pydeps.PackageList{PackageFiles: requirements}, nil)
			}},
		},
		Launcher:  launcher,
		KeepGoing: keepGoing,
	}
}
