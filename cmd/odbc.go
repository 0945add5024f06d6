package cmd

import (
	"appboot/system"
	"appboot/tools/odbc"

	"github.com/urfave/cli/v2"
)

func odbcInstall(cCtx *cli.Context) error {
	err := system.RequireSudo()
	if err != nil {
		return err
	}

	localSystem, err := system.GetLocalSystem()
	if err != nil {
		return err
	}

	m := odbc.NewManager(localSystem, cCtx.String("package"))
	if v := cCtx.String("key-url"); v != "" {
		m.KeyUrl = v
	}
	if cCtx.IsSet("fingerprint") {
		m.Fingerprint = cCtx.String("fingerprint")
	}
	if v := cCtx.String("repo-url"); v != "" {
		m.RepoUrl = v
	}

	return m.Setup()
}

func odbcRemove(cCtx *cli.Context) error {
	err := system.RequireSudo()
	if err != nil {
		return err
	}

	localSystem, err := system.GetLocalSystem()
	if err != nil {
		return err
	}

	m := odbc.NewManager(localSystem, cCtx.String("package"))

	return m.Remove()
}
