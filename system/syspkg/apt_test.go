package syspkg

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAptManager(t *testing.T) {
	assert := assert.New(t)

	m := NewAptManager()

	assert.Equal("apt-get", m.GetBin())
	assert.Equal(".deb", m.GetPackageExtension())
	assert.Contains(m.installOpts, "install")
	assert.Contains(m.updateOpts, "update")
	assert.Contains(m.upgradeOpts, "upgrade")
	assert.Contains(m.distUpgradeOpts, "dist-upgrade")
	assert.Contains(m.removeOpts, "remove")
	assert.Contains(m.autoRemoveOpts, "autoremove")
	assert.Contains(m.cleanOpts, "clean")
}

func TestAptManager_RegisterKey(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	fs := useMemMapFs(t)
	m := NewAptManager()

	key := []byte("-----BEGIN PGP PUBLIC KEY BLOCK-----\nfake\n-----END PGP PUBLIC KEY BLOCK-----\n")
	err := m.RegisterKey("microsoft", key)
	require.NoError(err)

	written, err := afero.ReadFile(fs, "/etc/apt/trusted.gpg.d/microsoft.asc")
	require.NoError(err)
	assert.Equal(key, written)

	// Registering the same key again is an idempotent overwrite.
	err = m.RegisterKey("microsoft", key)
	require.NoError(err)
	rewritten, err := afero.ReadFile(fs, "/etc/apt/trusted.gpg.d/microsoft.asc")
	require.NoError(err)
	assert.Equal(key, rewritten)
}

func TestAptManager_AddRepository(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	fs := useMemMapFs(t)
	m := NewAptManager()

	descriptor := []byte("deb [arch=amd64] https://packages.microsoft.com/ubuntu/22.04/prod jammy main\n")
	err := m.AddRepository("mssql-release", descriptor)
	require.NoError(err)

	written, err := afero.ReadFile(fs, "/etc/apt/sources.list.d/mssql-release.list")
	require.NoError(err)
	assert.Equal(descriptor, written)

	// A second registration overwrites any prior contents.
	replacement := []byte("deb https://packages.microsoft.com/ubuntu/24.04/prod noble main\n")
	err = m.AddRepository("mssql-release", replacement)
	require.NoError(err)
	rewritten, err := afero.ReadFile(fs, "/etc/apt/sources.list.d/mssql-release.list")
	require.NoError(err)
	assert.Equal(replacement, rewritten)
}

func TestAptManager_Install(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	fs := useMemMapFs(t)
	err := afero.WriteFile(fs, "/tmp/test_package_list.txt", []byte("pkg3\npkg4\n"), 0o644)
	require.NoError(err)
	err = afero.WriteFile(fs, "/tmp/pkg1.deb", []byte("deb"), 0o644)
	require.NoError(err)

	tests := []struct {
		name               string
		packageList        *PackageList
		expectedShellCalls int
		runErr             error
		wantErr            bool
	}{
		{
			name:               "Empty package list",
			packageList:        &PackageList{},
			expectedShellCalls: 0,
			wantErr:            false,
		},
		{
			name: "String packages",
			packageList: &PackageList{
				Packages: []string{"pkg1", "pkg2"},
			},
			expectedShellCalls: 1,
			wantErr:            false,
		},
		{
			name: "String packages with env",
			packageList: &PackageList{
				Packages: []string{"msodbcsql17"},
				Env:      []string{"ACCEPT_EULA=Y"},
			},
			expectedShellCalls: 1,
			wantErr:            false,
		},
		{
			name: "Packages from list file",
			packageList: &PackageList{
				PackageListFiles: []string{"/tmp/test_package_list.txt"},
			},
			expectedShellCalls: 1,
			wantErr:            false,
		},
		{
			name: "Missing list file",
			packageList: &PackageList{
				PackageListFiles: []string{"/tmp/does_not_exist.txt"},
			},
			expectedShellCalls: 0,
			wantErr:            true,
		},
		{
			name: "Local packages",
			packageList: &PackageList{
				LocalPackages: []string{"/tmp/pkg1.deb"},
			},
			expectedShellCalls: 1,
			wantErr:            false,
		},
		{
			name: "Missing local package",
			packageList: &PackageList{
				LocalPackages: []string{"/tmp/missing.deb"},
			},
			expectedShellCalls: 0,
			wantErr:            true,
		},
		{
			name: "Runtime error",
			packageList: &PackageList{
				Packages: []string{"pkg1"},
			},
			expectedShellCalls: 1,
			runErr:             fmt.Errorf("runtime error"),
			wantErr:            true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := interceptShellCommands(t, 0, tt.runErr)
			m := NewAptManager()

			err := m.Install(tt.packageList)
			assert.Equal(tt.expectedShellCalls, len(r.calls), "shell calls = %v, want %v", len(r.calls), tt.expectedShellCalls)
			assert.Equal(tt.wantErr, err != nil, "Install() error = %v, wantErr %v", err, tt.wantErr)

			for _, call := range r.calls {
				assert.Equal("apt-get", call.name)
				assert.Contains(call.args, "install")
				assert.Equal(tt.packageList.Env, call.envVars)
				assert.True(call.inheritEnvVars)
			}
		})
	}
}

func TestAptManager_Update(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	r := interceptShellCommands(t, 0, nil)
	m := NewAptManager()

	err := m.Update()
	require.NoError(err)
	require.Len(r.calls, 1)
	assert.Equal("apt-get", r.calls[0].name)
	assert.Contains(r.calls[0].args, "update")
}

func TestAptManager_Remove(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	r := interceptShellCommands(t, 0, nil)
	m := NewAptManager()

	err := m.Remove(&PackageList{Packages: []string{"msodbcsql17"}})
	require.NoError(err)
	require.Len(r.calls, 1)
	assert.Equal("apt-get", r.calls[0].name)
	assert.Contains(r.calls[0].args, "remove")
	assert.Contains(r.calls[0].args, "msodbcsql17")
}

func TestAptManager_Clean(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	fs := useMemMapFs(t)
	err := fs.MkdirAll("/var/lib/apt/lists", 0o755)
	require.NoError(err)

	r := interceptShellCommands(t, 0, nil)
	m := NewAptManager()

	err = m.Clean()
	require.NoError(err)
	require.Len(r.calls, 2)
	assert.Contains(r.calls[0].args, "clean")
	assert.Contains(r.calls[1].args, "autoremove")

	exists, err := afero.DirExists(fs, "/var/lib/apt/lists")
	require.NoError(err)
	assert.False(exists)
}
