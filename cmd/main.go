package cmd

import (
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func Cli() *cli.App {
	app := &cli.App{
		Name:        "appboot",
		Usage:       "Application Bootstrapper",
		Description: "Prepare a container with the SQL Server ODBC driver and Python dependencies, then launch the application",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug mode",
				Action: func(c *cli.Context, debugMode bool) error {
					if debugMode {
						slog.Info("Debug mode enabled")
						pterm.DefaultLogger.Level = pterm.LogLevelDebug
					}
					return nil
				},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the full bootstrap and launch the application entry point",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "config",
						Aliases:     []string{"c"},
						Usage:       "Path to a YAML config file",
						DefaultText: "appboot.yaml",
					},
					&cli.StringFlag{
						Name:  "driver-package",
						Usage: "ODBC driver package to install",
					},
					&cli.StringFlag{
						Name:  "key-url",
						Usage: "URL of the vendor package-signing key",
					},
					&cli.StringFlag{
						Name:  "fingerprint",
						Usage: "Expected fingerprint of the vendor signing key, empty disables verification",
					},
					&cli.StringFlag{
						Name:  "repo-url",
						Usage: "URL of the vendor repository descriptor",
					},
					requirementsFileFlag("Path to requirements file(s) to install"),
					&cli.StringFlag{
						Name:  "interpreter",
						Usage: "Python interpreter used for pip and the entry point",
					},
					&cli.StringFlag{
						Name:    "entry-point",
						Aliases: []string{"e"},
						Usage:   "Application entry point to launch after setup",
					},
					&cli.BoolFlag{
						Name:    "keep-going",
						Aliases: []string{"k"},
						Usage:   "Continue past failed steps and launch anyway (legacy shell-script behavior)",
					},
					&cli.BoolFlag{
						Name:  "skip-launch",
						Usage: "Prepare the environment but do not launch the entry point",
					},
				},
				Action: run,
			},
			{
				Name:     "odbc",
				Usage:    "Install or manage the SQL Server ODBC driver",
				Category: "tools",
				Subcommands: []*cli.Command{
					{
						Name:  "install",
						Usage: "Register the vendor repository and install the ODBC driver",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:        "package",
								Aliases:     []string{"p"},
								Usage:       "Driver package to install",
								DefaultText: "msodbcsql17",
							},
							&cli.StringFlag{
								Name:  "key-url",
								Usage: "URL of the vendor package-signing key",
							},
							&cli.StringFlag{
								Name:  "fingerprint",
								Usage: "Expected fingerprint of the vendor signing key, empty disables verification",
							},
							&cli.StringFlag{
								Name:  "repo-url",
								Usage: "URL of the vendor repository descriptor",
							},
						},
						Action: odbcInstall,
					},
					{
						Name:  "remove",
						Usage: "Remove the ODBC driver package",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:        "package",
								Aliases:     []string{"p"},
								Usage:       "Driver package to remove",
								DefaultText: "msodbcsql17",
							},
						},
						Action: odbcRemove,
					},
				},
			},
			{
				Name:     "deps",
				Usage:    "Install application Python dependencies",
				Category: "tools",
				Subcommands: []*cli.Command{
					{
						Name:  "install",
						Usage: "Install Python packages with pip",
						Flags: []cli.Flag{
							packageFlag("Python package(s) to install"),
							requirementsFileFlag("Path to requirements file(s) to install"),
							&cli.StringFlag{
								Name:  "interpreter",
								Usage: "Python interpreter to install with",
							},
						},
						Action: depsInstall,
					},
				},
			},
			{
				Name:     "syspkg",
				Usage:    "Manage system package installations",
				Category: "system",
				Subcommands: []*cli.Command{
					{
						Name:   "update",
						Usage:  "Update package lists",
						Action: sysPkgUpdate,
					},
					{
						Name:  "upgrade",
						Usage: "Upgrade installed packages",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "dist",
								Usage: "Run dist-upgrade on Debian-based systems",
							},
						},
						Action: sysPkgUpgrade,
					},
					{
						Name:  "install",
						Usage: "Install system packages",
						Flags: []cli.Flag{
							packageFlag("Package(s) to install"),
							&cli.StringSliceFlag{
								Name:    "packages-file",
								Aliases: []string{"f"},
								Usage:   "Path to file containing package names to install",
							},
						},
						Action: sysPkgInstall,
					},
					{
						Name:  "uninstall",
						Usage: "Uninstall system packages",
						Flags: []cli.Flag{
							packageFlag("Package(s) to uninstall"),
						},
						Action: sysPkgUninstall,
					},
					{
						Name:   "clean",
						Usage:  "Clean up package caches",
						Action: sysPkgClean,
					},
				},
			},
		},
	}
	return app
}
