package main

import (
	"fmt"
	"log/slog"
	"os"

	"fitsview/internal/cli"
	"fitsview/pkg/config"
	"fitsview/pkg/display"
	"fitsview/pkg/viewer"
)

func main() {
	args := cli.NormalizeArgs(os.Args[1:])

	path, err := config.Path(cli.ConfigPath(args))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve config path: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	cmd := cli.NewRootCmd(cfg, cli.Deps{
		Display: func(log *slog.Logger) viewer.Displayer {
			return display.NewWindow(log)
		},
	})
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
