package aboottest

import (
	"testing"

	"appboot/system/file"

	"github.com/spf13/afero"
)

// UseMemMapFs swaps the package filesystem for an in-memory one and restores
// the real filesystem when the test finishes.
func UseMemMapFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	file.AppFs = fs
	t.Cleanup(ResetAppFs)
	return fs
}

func ResetAppFs() {
	// Reset the AppFs to the original filesystem
	file.AppFs = afero.NewOsFs()
}
