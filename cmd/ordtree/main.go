package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "log-level",
		Usage:   "log verbosity (error, warn, info, debug)",
		Value:   "warn",
		EnvVars: []string{"ORDTREE_LOG_LEVEL", "LOG_LEVEL"},
	},
	&cli.IntFlag{
		Name:    "max-nodes",
		Usage:   "maximum number of keys the tree may hold (0 for no limit)",
		Value:   0,
		EnvVars: []string{"ORDTREE_MAX_NODES"},
	},
}

func run(args []string) error {

	app := cli.App{
		Name:    "ordtree",
		Usage:   "ordered integer set on a red-black tree",
		Version: versioninfo.Short(),
		Flags:   globalFlags,
		Action:  runShell,
	}
	app.Commands = []*cli.Command{
		cmdShell,
		cmdExec,
		cmdDemo,
	}
	return app.Run(args)
}
