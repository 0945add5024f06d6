package odbc

import (
	"fmt"
	"log/slog"
	"strings"

	apperrors "appboot/errors"
	"appboot/system"
	"appboot/system/file"
	"appboot/system/syspkg"
)

const (
	DefaultPackage     = "msodbcsql17"
	DefaultKeyName     = "microsoft"
	DefaultKeyUrl      = "https://packages.microsoft.com/keys/microsoft.asc"
	DefaultRepoName    = "mssql-release"
	DefaultFingerprint = "BC528686B50D79E339D3721CEB3E94ADBE1229CF"

	acceptEulaEnv = "ACCEPT_EULA=Y"

	odbcInstIniPath = "/etc/odbcinst.ini"
)

var debRepoUrlTpl = "https://packages.microsoft.com/config/%s/%s/prod.list"
var rpmRepoUrlTpl = "https://packages.microsoft.com/config/%s/%s/prod.repo"

// Manager installs the Microsoft ODBC driver for SQL Server from the vendor
// package repository: signing key, repository descriptor, index refresh,
// then the driver package itself with the EULA accepted via the environment.
type Manager struct {
	*system.LocalSystem
	Package  string
	KeyName  string
	KeyUrl   string
	RepoName string
	RepoUrl  string
	// Fingerprint is the expected primary-key fingerprint of the vendor
	// signing key. Empty disables verification.
	Fingerprint string
}

func NewManager(l *system.LocalSystem, pkg string) *Manager {
	if pkg == "" {
		pkg = DefaultPackage
	}
	return &Manager{
		LocalSystem: l,
		Package:     pkg,
		KeyName:     DefaultKeyName,
		KeyUrl:      DefaultKeyUrl,
		RepoName:    DefaultRepoName,
		Fingerprint: DefaultFingerprint,
	}
}

// repoUrl resolves the vendor repository descriptor URL for the local
// distribution unless an explicit URL was configured.
func (m *Manager) repoUrl() (string, error) {
	if m.RepoUrl != "" {
		return m.RepoUrl, nil
	}

	switch m.Vendor {
	case "ubuntu", "debian":
		slog.Debug("Detected Debian-based distribution")
		return fmt.Sprintf(debRepoUrlTpl, m.Vendor, m.LocalSystem.Version), nil
	case "almalinux", "centos", "rockylinux", "rhel":
		slog.Debug("Detected RHEL-based distribution")
		return fmt.Sprintf(rpmRepoUrlTpl, "rhel", majorVersion(m.LocalSystem.Version)), nil
	default:
		return "", fmt.Errorf("unsupported OS: %s %s", m.Vendor, m.LocalSystem.Version)
	}
}

// dependencies lists the unixODBC companion packages for the local
// distribution.
func (m *Manager) dependencies() ([]string, error) {
	var packages []string
	switch m.Vendor {
	case "ubuntu", "debian":
		packages = []string{"unixodbc", "unixodbc-dev"}
	case "almalinux", "centos", "rockylinux", "rhel":
		packages = []string{"unixODBC", "unixODBC-devel"}
	default:
		return nil, fmt.Errorf("unsupported OS: %s %s", m.Vendor, m.LocalSystem.Version)
	}
	slog.Debug("Using driver dependencies: " + strings.Join(packages, ", "))
	return packages, nil
}

func majorVersion(version string) string {
	major, _, _ := strings.Cut(version, ".")
	return major
}

// RegisterKey fetches the vendor signing key, verifies its fingerprint when
// one is configured, and registers it with the system package manager.
func (m *Manager) RegisterKey() error {
	slog.Info("Fetching signing key from " + m.KeyUrl)

	key, err := file.DownloadBytes(m.KeyUrl)
	if err != nil {
		return fmt.Errorf(apperrors.KeyFetchErrorTpl, m.KeyUrl, err)
	}

	if m.Fingerprint == "" {
		slog.Warn("No signing key fingerprint configured, skipping verification")
	} else if err := VerifyKeyFingerprint(key, m.Fingerprint); err != nil {
		return fmt.Errorf("signing key from '%s' failed verification: %w", m.KeyUrl, err)
	}

	if err := m.PackageManager.RegisterKey(m.KeyName, key); err != nil {
		return fmt.Errorf(apperrors.SystemKeyRegisterErrorTpl, m.KeyName, err)
	}

	return nil
}

// AddRepository fetches the vendor repository descriptor and writes it to
// the package manager's repository-configuration directory, overwriting any
// prior contents.
func (m *Manager) AddRepository() error {
	repoUrl, err := m.repoUrl()
	if err != nil {
		return fmt.Errorf("failed to determine repository descriptor URL: %w", err)
	}
	slog.Info("Fetching repository descriptor from " + repoUrl)

	descriptor, err := file.DownloadBytes(repoUrl)
	if err != nil {
		return fmt.Errorf(apperrors.RepoFetchErrorTpl, repoUrl, err)
	}

	if err := m.PackageManager.AddRepository(m.RepoName, descriptor); err != nil {
		return fmt.Errorf(apperrors.SystemRepoRegisterErrorTpl, m.RepoName, err)
	}

	return nil
}

// RefreshIndex refreshes the package index from all registered repositories.
func (m *Manager) RefreshIndex() error {
	if err := m.PackageManager.Update(); err != nil {
		return fmt.Errorf(apperrors.SystemUpdateErrorTpl, err)
	}
	return nil
}

// Install installs the ODBC driver package and its unixODBC companions,
// auto-accepting the license prompt via ACCEPT_EULA=Y.
func (m *Manager) Install() error {
	slog.Info("Installing ODBC driver package " + m.Package)

	dependencies, err := m.dependencies()
	if err != nil {
		return fmt.Errorf("failed to determine ODBC driver system dependencies: %w", err)
	}

	list := &syspkg.PackageList{
		Packages: append([]string{m.Package}, dependencies...),
		Env:      []string{acceptEulaEnv},
	}
	if err := m.PackageManager.Install(list); err != nil {
		return fmt.Errorf(apperrors.SystemPackageInstallErrorTpl, m.Package, err)
	}

	return nil
}

// Registered reports whether the driver package registered an entry in the
// system odbcinst.ini. The package's post-install script normally does this.
func (m *Manager) Registered() (bool, error) {
	exists, err := file.IsPathExist(odbcInstIniPath)
	if err != nil {
		return false, fmt.Errorf("failed to check if '%s' exists: %w", odbcInstIniPath, err)
	}
	if !exists {
		return false, nil
	}

	contents, err := file.Read(odbcInstIniPath)
	if err != nil {
		return false, err
	}
	return strings.Contains(string(contents), "ODBC Driver"), nil
}

// Setup runs the full driver installation: key, repository, index, package.
func (m *Manager) Setup() error {
	if err := m.RegisterKey(); err != nil {
		return err
	}
	if err := m.AddRepository(); err != nil {
		return err
	}
	if err := m.RefreshIndex(); err != nil {
		return err
	}
	defer m.PackageManager.Clean() //nolint:errcheck
	if err := m.Install(); err != nil {
		return err
	}

	registered, err := m.Registered()
	if err != nil {
		slog.Warn("Unable to check odbcinst.ini for a driver entry: " + err.Error())
		return nil
	}
	if !registered {
		slog.Warn("No driver entry found in " + odbcInstIniPath + ", the package may not have registered itself")
	}

	return nil
}

func (m *Manager) Remove() error {
	err := m.PackageManager.Remove(&syspkg.PackageList{Packages: []string{m.Package}})
	if err != nil {
		return fmt.Errorf("failed to uninstall %s: %w", m.Package, err)
	}
	return nil
}
