package cmd

import (
	"appboot/bootstrap"
	"appboot/config"
	"appboot/system"
	"appboot/tools/launch"
	"appboot/tools/odbc"
	"appboot/tools/pydeps"

	"github.com/urfave/cli/v2"
)

func run(cCtx *cli.Context) error {
	err := system.RequireSudo()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cCtx.String("config"))
	if err != nil {
		return err
	}
	applyOverrides(cCtx, cfg)

	localSystem, err := system.GetLocalSystem()
	if err != nil {
		return err
	}

	driver := newDriverManager(localSystem, &cfg.Driver)
	if cCtx.IsSet("fingerprint") {
		driver.Fingerprint = cCtx.String("fingerprint")
	}
	deps := pydeps.NewManager(cfg.Python.Interpreter)

	var launcher bootstrap.Launcher
	if !cCtx.Bool("skip-launch") {
		launcher = launch.NewLauncher(cfg.Python.Interpreter, cfg.App.EntryPoint, cfg.App.Args)
	}

	seq := bootstrap.NewSequence(driver, deps, cfg.Python.Requirements, launcher, cCtx.Bool("keep-going"))
	return seq.Run()
}

func applyOverrides(cCtx *cli.Context, cfg *config.Config) {
	if v := cCtx.String("driver-package"); v != "" {
		cfg.Driver.Package = v
	}
	if v := cCtx.String("key-url"); v != "" {
		cfg.Driver.KeyUrl = v
	}
	if v := cCtx.String("repo-url"); v != "" {
		cfg.Driver.RepoUrl = v
	}
	if v := cCtx.StringSlice("requirements-file"); len(v) > 0 {
		cfg.Python.Requirements = v
	}
	if v := cCtx.String("interpreter"); v != "" {
		cfg.Python.Interpreter = v
	}
	if v := cCtx.String("entry-point"); v != "" {
		cfg.App.EntryPoint = v
	}
}

func newDriverManager(localSystem *system.LocalSystem, cfg *config.DriverConfig) *odbc.Manager {
	m := odbc.NewManager(localSystem, cfg.Package)
	if cfg.KeyName != "" {
		m.KeyName = cfg.KeyName
	}
	if cfg.KeyUrl != "" {
		m.KeyUrl = cfg.KeyUrl
	}
	if cfg.Fingerprint != "" {
		m.Fingerprint = cfg.Fingerprint
	}
	if cfg.RepoName != "" {
		m.RepoName = cfg.RepoName
	}
	if cfg.RepoUrl != "" {
		m.RepoUrl = cfg.RepoUrl
	}
	return m
}
