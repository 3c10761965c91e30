package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/AlonMell/ordtree/internal/rbtree"
	"github.com/AlonMell/ordtree/internal/shell"
)

var cmdShell = &cli.Command{
	Name:   "shell",
	Usage:  "interactive session on stdin",
	Action: runShell,
}

var cmdExec = &cli.Command{
	Name:      "exec",
	Usage:     "run a command script (use - for stdin)",
	ArgsUsage: "<file>",
	Action:    runExec,
}

var cmdDemo = &cli.Command{
	Name:   "demo",
	Usage:  "walk through insertion and deletion scenarios",
	Action: runDemo,
}

var errLogLevel = errors.New("unknown log level")

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("%w %q (want error, warn, info or debug)", errLogLevel, s)
}

// configLogger builds the process logger from --log-level.
func configLogger(cctx *cli.Context, writer io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cctx.String("log-level"))
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger, nil
}

func shellConfig(cctx *cli.Context, prompt string) (*shell.Config, error) {
	logger, err := configLogger(cctx, os.Stderr)
	if err != nil {
		return nil, err
	}
	if n := cctx.Int("max-nodes"); n < 0 {
		logger.Warn("ignoring negative node limit", "max-nodes", n)
	}
	return &shell.Config{
		Prompt: prompt,
		Tree: &rbtree.Config{
			MaxNodes: max(cctx.Int("max-nodes"), 0),
			Logger:   logger.With("component", "rbtree"),
		},
		Logger: logger.With("component", "shell"),
	}, nil
}

func runShell(cctx *cli.Context) error {
	config, err := shellConfig(cctx, "> ")
	if err != nil {
		return err
	}
	sh := shell.New(os.Stdout, config)
	fmt.Fprintln(os.Stdout, "ordtree shell, type help for commands")
	return sh.Run(cctx.Context, os.Stdin)
}

func runExec(cctx *cli.Context) error {
	if cctx.Args().Len() != 1 {
		return errors.New("expected exactly one script argument")
	}
	config, err := shellConfig(cctx, "")
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if path := cctx.Args().First(); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	sh := shell.New(os.Stdout, config)
	return sh.Run(cctx.Context, in)
}
