package cmd

import (
	"appboot/system"
	"appboot/system/syspkg"

	"github.com/urfave/cli/v2"
)

func sysPkgUpdate(cCtx *cli.Context) error {
	localSystem, err := system.GetLocalSystem()
	if err != nil {
		return err
	}
	return localSystem.PackageManager.Update()
}

func sysPkgUpgrade(cCtx *cli.Context) error {
	localSystem, err := system.GetLocalSystem()
	if err != nil {
		return err
	}
	return localSystem.PackageManager.Upgrade(cCtx.Bool("dist"))
}

func sysPkgInstall(cCtx *cli.Context) error {
	localSystem, err := system.GetLocalSystem()
	if err != nil {
		return err
	}

	list := &syspkg.PackageList{
		Packages:         cCtx.StringSlice("package"),
		PackageListFiles: cCtx.StringSlice("packages-file"),
	}
	return localSystem.PackageManager.Install(list)
}

func sysPkgUninstall(cCtx *cli.Context) error {
	localSystem, err := system.GetLocalSystem()
	if err != nil {
		return err
	}
	return localSystem.PackageManager.Remove(&syspkg.PackageList{Packages: cCtx.StringSlice("package")})
}

func sysPkgClean(cCtx *cli.Context) error {
	localSystem, err := system.GetLocalSystem()
	if err != nil {
		return err
	}
	return localSystem.PackageManager.Clean()
}
