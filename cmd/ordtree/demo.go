package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/AlonMell/ordtree/internal/shell"
)

var demoScenarios = []struct {
	title  string
	script string
}{
	{
		title: "left rotation at the root",
		script: `insert 10 20 30
traverse in
print`,
	},
	{
		title: "remove an interior key",
		script: `insert 10 20 30 40 50 25
print
remove 30
traverse in
print
verify`,
	},
	{
		title: "two children: the successor's key moves up",
		script: `insert 10 20 30 40 50 25
remove 30 20
print
verify`,
	},
	{
		title: "empty a single node tree",
		script: `insert 7
remove 7
contains 7
traverse`,
	},
}

func runDemo(cctx *cli.Context) error {
	config, err := shellConfig(cctx, "")
	if err != nil {
		return err
	}
	for i, sc := range demoScenarios {
		fmt.Fprintf(os.Stdout, "== %d. %s\n", i+1, sc.title)
		sh := shell.New(os.Stdout, config)
		if err := replay(os.Stdout, sh, sc.script); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

// replay echoes each command before running it.
func replay(w io.Writer, sh *shell.Shell, script string) error {
	for _, line := range strings.Split(script, "\n") {
		fmt.Fprintf(w, "> %s\n", line)
		if _, err := sh.Exec(line); err != nil {
			return fmt.Errorf("demo command %q: %w", line, err)
		}
	}
	return nil
}
