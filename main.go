package main

import (
	"appboot/cmd"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/pterm/pterm"
)

func main() {
	if runtime.GOOS != "linux" {
		log.Fatal("appboot is only supported on Linux")
	}

	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	slog.SetDefault(logger)

	cli := cmd.Cli()
	if err := cli.Run(os.Args); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
