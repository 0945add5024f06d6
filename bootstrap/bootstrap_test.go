package bootstrap

import (
	"fmt"
	"testing"

	"appboot/aboottest"
	"appboot/tools/odbc"
	"appboot/tools/pydeps"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLauncher struct {
	calls   int
	execErr error
	// observed is appended to by steps and the launcher to verify ordering.
	observed *[]string
}

func (f *fakeLauncher) Exec() error {
	f.calls++
	if f.observed != nil {
		*f.observed = append(*f.observed, "launch")
	}
	return f.execErr
}

func namedStep(name string, observed *[]string, err error) Step {
	return Step{
		Name: name,
		Run: func() error {
			*observed = append(*observed, name)
			return err
		},
	}
}

func TestSequence_Run_FailFast(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	var observed []string
	launcher := &fakeLauncher{observed: &observed}

	s := &Sequence{
		Steps: []Step{
			namedStep("first", &observed, nil),
			namedStep("second", &observed, fmt.Errorf("boom")),
			namedStep("third", &observed, nil),
		},
		Launcher: launcher,
	}

	err := s.Run()
	require.Error(err)
	assert.ErrorContains(err, "bootstrap step 'second' failed")

	// The failing step aborts the sequence before the launch.
	assert.Equal([]string{"first", "second"}, observed)
	assert.Zero(launcher.calls)
}

func TestSequence_Run_KeepGoing(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	var observed []string
	launcher := &fakeLauncher{observed: &observed}

	s := &Sequence{
		Steps: []Step{
			namedStep("first", &observed, fmt.Errorf("boom")),
			namedStep("second", &observed, nil),
			namedStep("third", &observed, fmt.Errorf("boom again")),
		},
		Launcher:  launcher,
		KeepGoing: true,
	}

	// The legacy policy launches regardless of failed steps.
	err := s.Run()
	require.NoError(err)
	assert.Equal([]string{"first", "second", "third", "launch"}, observed)
	assert.Equal(1, launcher.calls)
}

func TestSequence_Run_LaunchesExactlyOnceAfterSteps(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	var observed []string
	launcher := &fakeLauncher{observed: &observed}

	s := &Sequence{
		Steps: []Step{
			namedStep("first", &observed, nil),
			namedStep("second", &observed, nil),
		},
		Launcher: launcher,
	}

	err := s.Run()
	require.NoError(err)
	assert.Equal([]string{"first", "second", "launch"}, observed)
	assert.Equal(1, launcher.calls)
}

func TestSequence_Run_NoLauncher(t *testing.T) {
	require := require.New(t)

	var observed []string
	s := &Sequence{
		Steps: []Step{
			namedStep("only", &observed, nil),
		},
	}

	err := s.Run()
	require.NoError(err)
	require.Equal([]string{"only"}, observed)
}

func TestSequence_Run_LauncherError(t *testing.T) {
	require := require.New(t)

	launcher := &fakeLauncher{execErr: fmt.Errorf("exec failed")}
	s := &Sequence{Launcher: launcher}

	err := s.Run()
	require.Error(err)
	require.ErrorContains(err, "exec failed")
}

func TestNewSequence(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	pm := aboottest.NewFakePackageManager()
	l := aboottest.NewUbuntuSystem()
	l.PackageManager = pm

	driver := odbc.NewManager(l, "")
	deps := pydeps.NewManager("python3")
	launcher := &fakeLauncher{}

	s := NewSequence(driver, deps, []string{"requirements.txt"}, launcher, false)

	require.Len(s.Steps, 5)
	wantNames := []string{
		"register signing key",
		"register package repository",
		"refresh package index",
		"install odbc driver",
		"install python dependencies",
	}
	for i, step := range s.Steps {
		assert.Equal(wantNames[i], step.Name)
		assert.NotNil(step.Run)
	}
	assert.Equal(launcher, s.Launcher)
	assert.False(s.KeepGoing)
}
