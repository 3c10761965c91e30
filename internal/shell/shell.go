// Package shell implements a line-oriented command interpreter over a single
// ordered tree. One command per line; blank lines and lines starting with
// '#' are ignored.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AlonMell/ordtree/internal/metrics"
	"github.com/AlonMell/ordtree/internal/rbtree"
	"github.com/AlonMell/ordtree/internal/render"
)

// Common errors returned by Exec.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong arguments")
	ErrInvalidKey     = errors.New("invalid key")
)

// Config holds options for a Shell.
type Config struct {
	// Printed before every line read by Run. Empty disables the prompt.
	Prompt string

	// Options for the tree owned by the shell.
	Tree *rbtree.Config

	Logger *slog.Logger
}

// DefaultConfig returns an interactive configuration.
func DefaultConfig() *Config {
	return &Config{
		Prompt: "> ",
		Tree:   rbtree.DefaultConfig(),
	}
}

// Shell owns one tree and executes commands against it.
type Shell struct {
	tree   *rbtree.Tree
	reg    *prometheus.Registry
	out    io.Writer
	prompt string
	log    *slog.Logger
}

// New creates a shell writing its output to out.
func New(out io.Writer, config *Config) *Shell {
	if config == nil {
		config = DefaultConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tree := rbtree.NewWithConfig(config.Tree)
	return &Shell{
		tree:   tree,
		reg:    metrics.NewRegistry(tree),
		out:    out,
		prompt: config.Prompt,
		log:    logger,
	}
}

// Tree returns the tree the shell operates on.
func (s *Shell) Tree() *rbtree.Tree {
	return s.tree
}

// Run reads commands from in until EOF, an exit command, or ctx is done.
// Command errors are printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.prompt != "" {
			fmt.Fprint(s.out, s.prompt)
		}
		if !scanner.Scan() {
			break
		}

		quit, err := s.Exec(scanner.Text())
		if err != nil {
			s.log.Debug("command failed", "line", scanner.Text(), "error", err)
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}
	return nil
}

type command struct {
	usage string
	help  string
	run   func(s *Shell, args []string) error
}

var commands map[string]*command

var aliases = map[string]string{
	"search": "contains",
	"find":   "contains",
	"delete": "remove",
	"quit":   "exit",
}

func init() {
	commands = map[string]*command{
		"insert":   {"insert <key>...", "add keys; duplicates are ignored", (*Shell).insert},
		"contains": {"contains <key>...", "report whether keys are present", (*Shell).contains},
		"remove":   {"remove <key>...", "delete keys", (*Shell).remove},
		"traverse": {"traverse [pre|in|post]", "list keys with colors (default in)", (*Shell).traverse},
		"print":    {"print", "draw the tree", (*Shell).print},
		"min":      {"min", "smallest key", (*Shell).min},
		"max":      {"max", "largest key", (*Shell).max},
		"succ":     {"succ <key>", "smallest key greater than key", (*Shell).succ},
		"pred":     {"pred <key>", "largest key less than key", (*Shell).pred},
		"range":    {"range <lo> <hi>", "keys between lo and hi inclusive", (*Shell).keyRange},
		"len":      {"len", "number of keys", (*Shell).length},
		"height":   {"height", "height and black-height", (*Shell).height},
		"verify":   {"verify", "check red-black invariants", (*Shell).verify},
		"stats":    {"stats", "operation counters", (*Shell).stats},
		"clear":    {"clear", "remove every key", (*Shell).clear},
		"help":     {"help", "list commands", (*Shell).help},
		"exit":     {"exit", "leave the shell", nil},
	}
}

// Exec runs a single command line. quit is true for exit/quit.
func (s *Shell) Exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false, nil
	}

	name := strings.ToLower(fields[0])
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	if name == "exit" {
		return true, nil
	}

	cmd, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("%w: %q (try help)", ErrUnknownCommand, fields[0])
	}

	s.log.Debug("command", "name", name, "args", fields[1:])
	return false, cmd.run(s, fields[1:])
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func parseKeys(name string, args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: usage: %s", ErrUsage, commands[name].usage)
	}
	keys := make([]int, 0, len(args))
	for _, arg := range args {
		k, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrInvalidKey, arg)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func parseKey(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: usage: %s", ErrUsage, commands[name].usage)
	}
	keys, err := parseKeys(name, args)
	if err != nil {
		return 0, err
	}
	return keys[0], nil
}

func noArgs(name string, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: usage: %s", ErrUsage, commands[name].usage)
	}
	return nil
}

func (s *Shell) insert(args []string) error {
	keys, err := parseKeys("insert", args)
	if err != nil {
		return err
	}
	for _, k := range keys {
		before := s.tree.Len()
		if err := s.tree.Insert(k); err != nil {
			return err
		}
		if s.tree.Len() == before {
			s.println("duplicate", k)
		} else {
			s.println("inserted", k)
		}
	}
	return nil
}

func (s *Shell) contains(args []string) error {
	keys, err := parseKeys("contains", args)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if s.tree.Contains(k) {
			s.println(k, "found")
		} else {
			s.println(k, "not found")
		}
	}
	return nil
}

func (s *Shell) remove(args []string) error {
	keys, err := parseKeys("remove", args)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if s.tree.Remove(k) {
			s.println("removed", k)
		} else {
			s.println(k, "not found")
		}
	}
	return nil
}

func (s *Shell) traverse(args []string) error {
	order := rbtree.InOrder
	switch len(args) {
	case 0:
	case 1:
		var err error
		if order, err = rbtree.ParseOrder(args[0]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: usage: %s", ErrUsage, commands["traverse"].usage)
	}
	s.println(render.Sequence(s.tree.Traverse(order)))
	return nil
}

func (s *Shell) print(args []string) error {
	if err := noArgs("print", args); err != nil {
		return err
	}
	s.println(render.Shape(s.tree))
	return nil
}

func (s *Shell) min(args []string) error {
	if err := noArgs("min", args); err != nil {
		return err
	}
	s.printKey(s.tree.Min())
	return nil
}

func (s *Shell) max(args []string) error {
	if err := noArgs("max", args); err != nil {
		return err
	}
	s.printKey(s.tree.Max())
	return nil
}

func (s *Shell) printKey(k int, ok bool) {
	if !ok {
		s.println(render.Empty)
		return
	}
	s.println(k)
}

func (s *Shell) succ(args []string) error {
	k, err := parseKey("succ", args)
	if err != nil {
		return err
	}
	if next, ok := s.tree.Successor(k); ok {
		s.println(next)
	} else {
		s.println("none")
	}
	return nil
}

func (s *Shell) pred(args []string) error {
	k, err := parseKey("pred", args)
	if err != nil {
		return err
	}
	if prev, ok := s.tree.Predecessor(k); ok {
		s.println(prev)
	} else {
		s.println("none")
	}
	return nil
}

func (s *Shell) keyRange(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: %s", ErrUsage, commands["range"].usage)
	}
	bounds, err := parseKeys("range", args)
	if err != nil {
		return err
	}
	lo, hi := bounds[0], bounds[1]

	var parts []string
	for k, c := range s.tree.AscendFrom(lo) {
		if k > hi {
			break
		}
		parts = append(parts, render.Entry(k, c))
	}
	if len(parts) == 0 {
		s.println("none")
		return nil
	}
	s.println(strings.Join(parts, " "))
	return nil
}

func (s *Shell) length(args []string) error {
	if err := noArgs("len", args); err != nil {
		return err
	}
	s.println(s.tree.Len())
	return nil
}

func (s *Shell) height(args []string) error {
	if err := noArgs("height", args); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "height %d black-height %d\n", s.tree.Height(), s.tree.BlackHeight())
	return nil
}

func (s *Shell) verify(args []string) error {
	if err := noArgs("verify", args); err != nil {
		return err
	}
	if err := s.tree.Verify(); err != nil {
		return fmt.Errorf("invariant violated: %w", err)
	}
	s.println("ok")
	return nil
}

func (s *Shell) stats(args []string) error {
	if err := noArgs("stats", args); err != nil {
		return err
	}
	return metrics.Write(s.out, s.reg)
}

func (s *Shell) clear(args []string) error {
	if err := noArgs("clear", args); err != nil {
		return err
	}
	s.tree.Clear()
	s.println("cleared")
	return nil
}

func (s *Shell) help(args []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(s.out, "  %-24s %s\n", cmd.usage, cmd.help)
	}
	return nil
}
