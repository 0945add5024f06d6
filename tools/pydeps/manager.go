package pydeps

import (
	"fmt"
	"log/slog"

	"appboot/system/command"
	"appboot/system/file"
)

const defaultPythonPath = "python3"

type PackageList struct {
	Packages     []string
	PackageFiles []string
}

// Manager installs Python dependencies with pip through a given interpreter.
type Manager struct {
	PythonPath string
}

func NewManager(pythonPath string) *Manager {
	if pythonPath == "" {
		pythonPath = defaultPythonPath
	}
	return &Manager{PythonPath: pythonPath}
}

// InstallPackages installs literal packages and requirements files, one pip
// invocation per package and per file.
func (m *Manager) InstallPackages(packageList *PackageList, options []string) error {
	slog.Debug("Python binary path: " + m.PythonPath)

	for _, name := range packageList.Packages {
		slog.Info("Installing Python package " + name)

		args := []string{"-m", "pip", "install", name}
		if len(options) > 0 {
			args = append(args, options...)
		}
		s := command.NewShellCommand(m.PythonPath, args, nil, true)
		if err := s.Run(); err != nil {
			return fmt.Errorf("failed to install python package %s: %w", name, err)
		}
	}

	for _, requirementsFile := range packageList.PackageFiles {
		slog.Info("Installing Python requirements file " + requirementsFile)

		exists, err := file.IsPathExist(requirementsFile)
		if err != nil {
			return fmt.Errorf("failed to check if requirements file '%s' exists: %w", requirementsFile, err)
		}
		if !exists {
			return fmt.Errorf("requirements file '%s' does not exist", requirementsFile)
		}

		args := []string{"-m", "pip", "install", "-r", requirementsFile}
		if len(options) > 0 {
			args = append(args, options...)
		}
		s := command.NewShellCommand(m.PythonPath, args, nil, true)
		if err := s.Run(); err != nil {
			return fmt.Errorf("failed to install python requirements file %s: %w", requirementsFile, err)
		}
	}

	return nil
}

func (m *Manager) Clean() error {
	slog.Info("Purging pip cache")

	args := []string{"-m", "pip", "cache", "purge"}
	s := command.NewShellCommand(m.PythonPath, args, nil, true)
	err := s.Run()
	if err != nil {
		return fmt.Errorf("failed to purge pip cache: %w", err)
	}

	return nil
}
