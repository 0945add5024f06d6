package aboottest

import (
	"appboot/system"
	"appboot/system/syspkg"
)

func NewUbuntuSystem() *system.LocalSystem {
	return &system.LocalSystem{
		Vendor:  "ubuntu",
		Version: "22.04",
		Arch:    "amd64",
	}
}

func NewRockySystem() *system.LocalSystem {
	return &system.LocalSystem{
		Vendor:  "rockylinux",
		Version: "8",
		Arch:    "amd64",
	}
}

// KeyRegistration records one RegisterKey call.
type KeyRegistration struct {
	Name string
	Key  []byte
}

// RepoRegistration records one AddRepository call.
type RepoRegistration struct {
	Name       string
	Descriptor []byte
}

// FakePackageManager implements syspkg.SystemPackageManager, recording every
// call and returning the injected error for that method.
type FakePackageManager struct {
	Bin       string
	Extension string

	RegisteredKeys  []KeyRegistration
	RegisteredRepos []RepoRegistration
	Installed       []*syspkg.PackageList
	Removed         []*syspkg.PackageList
	UpdateCalls     int
	UpgradeCalls    int
	CleanCalls      int

	RegisterKeyErr   error
	AddRepositoryErr error
	InstallErr       error
	RemoveErr        error
	UpdateErr        error
	UpgradeErr       error
	CleanErr         error
}

func NewFakePackageManager() *FakePackageManager {
	return &FakePackageManager{
		Bin:       "apt-get",
		Extension: ".deb",
	}
}

func (f *FakePackageManager) GetBin() string {
	return f.Bin
}

func (f *FakePackageManager) GetPackageExtension() string {
	return f.Extension
}

func (f *FakePackageManager) RegisterKey(name string, key []byte) error {
	f.RegisteredKeys = append(f.RegisteredKeys, KeyRegistration{Name: name, Key: key})
	return f.RegisterKeyErr
}

func (f *FakePackageManager) AddRepository(name string, descriptor []byte) error {
	f.RegisteredRepos = append(f.RegisteredRepos, RepoRegistration{Name: name, Descriptor: descriptor})
	return f.AddRepositoryErr
}

func (f *FakePackageManager) Install(list *syspkg.PackageList) error {
	f.Installed = append(f.Installed, list)
	return f.InstallErr
}

func (f *FakePackageManager) Remove(list *syspkg.PackageList) error {
	f.Removed = append(f.Removed, list)
	return f.RemoveErr
}

func (f *FakePackageManager) Update() error {
	f.UpdateCalls++
	return f.UpdateErr
}

func (f *FakePackageManager) Upgrade(fullUpgrade bool) error {
	f.UpgradeCalls++
	return f.UpgradeErr
}

func (f *FakePackageManager) Clean() error {
	f.CleanCalls++
	return f.CleanErr
}
