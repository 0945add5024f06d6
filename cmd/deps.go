package cmd

import (
	"appboot/tools/pydeps"

	"github.com/urfave/cli/v2"
)

func depsInstall(cCtx *cli.Context) error {
	m := pydeps.NewManager(cCtx.String("interpreter"))

	list := &pydeps.PackageList{
		Packages:     cCtx.StringSlice("package"),
		PackageFiles: cCtx.StringSlice("requirements-file"),
	}

	return m.InstallPackages(list, nil)
}
