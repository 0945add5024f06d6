package system

import (
	"os/user"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zcalusic/sysinfo"
)

func fakeSysInfo(t *testing.T, vendor, version, arch string) {
	t.Helper()

	old := sysInfo
	sysInfo = func() sysinfo.SysInfo {
		var si sysinfo.SysInfo
		si.OS.Vendor = vendor
		si.OS.Version = version
		si.OS.Architecture = arch
		return si
	}
	t.Cleanup(func() {
		sysInfo = old
	})
}

func TestGetLocalSystem(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tests := []struct {
		name    string
		vendor  string
		version string
		wantBin string
		wantErr bool
	}{
		{
			name:    "ubuntu",
			vendor:  "ubuntu",
			version: "22.04",
			wantBin: "apt-get",
		},
		{
			name:    "debian",
			vendor:  "debian",
			version: "12",
			wantBin: "apt-get",
		},
		{
			name:    "rockylinux",
			vendor:  "rockylinux",
			version: "8",
			wantBin: "dnf",
		},
		{
			name:    "unsupported",
			vendor:  "arch",
			version: "rolling",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeSysInfo(t, tt.vendor, tt.version, "amd64")

			l, err := GetLocalSystem()
			if tt.wantErr {
				require.Error(err)
				assert.ErrorContains(err, "unsupported OS")
				return
			}
			require.NoError(err)
			assert.Equal(tt.vendor, l.Vendor)
			assert.Equal(tt.version, l.Version)
			assert.Equal("amd64", l.Arch)
			assert.Equal(tt.wantBin, l.PackageManager.GetBin())
		})
	}
}

func TestRequireSudo(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tests := []struct {
		name    string
		uid     string
		wantErr bool
	}{
		{
			name: "root",
			uid:  "0",
		},
		{
			name:    "unprivileged",
			uid:     "1000",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := currentUser
			currentUser = func() (*user.User, error) {
				return &user.User{Uid: tt.uid}, nil
			}
			t.Cleanup(func() {
				currentUser = old
			})

			err := RequireSudo()
			if tt.wantErr {
				require.Error(err)
				assert.ErrorContains(err, "must be run as root")
			} else {
				require.NoError(err)
			}
		})
	}
}
