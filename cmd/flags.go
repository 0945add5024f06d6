package cmd

import "github.com/urfave/cli/v2"

const categoryPackage = "Package installation: "

func packageFlag(usage string) *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:     "package",
		Aliases:  []string{"p"},
		Usage:    usage,
		Category: categoryPackage,
	}
}

func requirementsFileFlag(usage string) *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:     "requirements-file",
		Aliases:  []string{"r"},
		Usage:    usage,
		Category: categoryPackage,
	}
}
