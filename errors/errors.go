package errors

import "fmt"

// Bootstrap errors

var StepFailedErrorTpl = "bootstrap step '%s' failed: %w"
var KeyFetchErrorTpl = "failed to fetch signing key from '%s': %w"
var RepoFetchErrorTpl = "failed to fetch repository descriptor from '%s': %w"
var LaunchErrorTpl = "failed to launch entry point '%s': %w"

// System package errors

var SystemUpdateErrorTpl = "failed to refresh package index: %w"
var SystemKeyRegisterErrorTpl = "failed to register signing key '%s': %w"
var SystemRepoRegisterErrorTpl = "failed to register repository '%s': %w"
var SystemPackageInstallErrorTpl = "failed to install ODBC driver package '%s': %w"

type KeyFingerprintMismatchError struct {
	Want string
	Got  string
}

func (e *KeyFingerprintMismatchError) Error() string {
	return fmt.Sprintf("signing key fingerprint mismatch: want %s, got %s", e.Want, e.Got)
}
