// Package edit provides the path editing subcommands: get, set, rm, swap,
// mv, insert, up, down, paths and normalize.
package edit

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/linkjun/jsonuri"
	"github.com/linkjun/jsonuri/cmd/jsonuri/internal/cmdio"
	"github.com/linkjun/jsonuri/document"
	"github.com/linkjun/jsonuri/rawjson"
	"github.com/linkjun/jsonuri/uripath"
)

// Commands lists the subcommand names handled by Run.
var Commands = []string{"get", "set", "rm", "swap", "mv", "insert", "up", "down", "paths", "normalize"}

type command struct {
	usage string
	nargs int
	run   func(ctx context.Context, c *invocation) error
}

var commands = map[string]command{
	"get":       {usage: "get [options] <path>", nargs: 1, run: runGet},
	"set":       {usage: "set [options] <path> <value>", nargs: 2, run: runSet},
	"rm":        {usage: "rm [options] <path>", nargs: 1, run: runRemove},
	"swap":      {usage: "swap [options] <path-a> <path-b>", nargs: 2, run: runSwap},
	"mv":        {usage: "mv [options] <from> <to>", nargs: 2, run: runMove},
	"insert":    {usage: "insert [options] <path> <value>", nargs: 2, run: runInsert},
	"up":        {usage: "up [options] <path>", nargs: 1, run: runUp},
	"down":      {usage: "down [options] <path>", nargs: 1, run: runDown},
	"paths":     {usage: "paths [options]", nargs: 0, run: runPaths},
	"normalize": {usage: "normalize <path>...", nargs: -1, run: runNormalize},
}

// invocation carries the parsed flags and arguments of one command run.
type invocation struct {
	opts     cmdio.Options
	dir      string
	gap      int
	asString bool
	args     []string
	streams  cmdio.Streams

	in *cmdio.Input
}

// Run executes the named editing subcommand.
func Run(ctx context.Context, name string, args []string, streams cmdio.Streams) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}

	c := &invocation{streams: streams}
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(streams.Err)
	if name != "normalize" {
		c.opts.Register(flags, name != "get" && name != "paths")
	}
	switch name {
	case "mv", "insert":
		flags.StringVar(&c.dir, "dir", string(jsonuri.After), "side of the reference index: before or after")
	case "up", "down":
		flags.IntVar(&c.gap, "gap", 1, "number of positions to move")
	}
	if name == "set" || name == "insert" {
		flags.BoolVar(&c.asString, "string", false, "treat the value as a string instead of JSON")
	}
	flags.Usage = func() {
		fmt.Fprintf(streams.Err, "Usage:\n  jsonuri %s\n\nOptions:\n", cmd.usage)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return err
	}
	c.args = flags.Args()
	if cmd.nargs >= 0 && len(c.args) != cmd.nargs {
		flags.Usage()
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, cmd.nargs, len(c.args))
	}

	if name != "normalize" {
		in, err := cmdio.Load(ctx, c.opts, streams)
		if err != nil {
			return err
		}
		c.in = in
	}
	return cmd.run(ctx, c)
}

// PrintHelp prints the summary of the editing subcommands.
func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "Editing commands:")
	for _, name := range Commands {
		fmt.Fprintf(w, "  jsonuri %s\n", commands[name].usage)
	}
}

func (c *invocation) isJSON() bool {
	return c.in.Parser.Format() == document.FormatJSON
}

func (c *invocation) commit(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	return c.in.Commit(ctx, c.opts, c.streams)
}

// runGet prints the value at path. JSON input is printed exactly as it is
// written in the file.
func runGet(_ context.Context, c *invocation) error {
	path := c.args[0]
	if c.isJSON() {
		res, ok := rawjson.Get(c.in.Raw, path)
		if !ok {
			return &jsonuri.PathNotFoundError{Path: path}
		}
		_, err := fmt.Fprintln(c.streams.Out, res.Raw)
		return err
	}

	v, ok := c.in.Doc.Get(path)
	if !ok {
		return &jsonuri.PathNotFoundError{Path: path}
	}
	return cmdio.PrintValue(c.streams.Out, v)
}

// runSet stores a value. JSON input is edited in place when that succeeds,
// so the rest of the file keeps its formatting. Anything rawjson rejects,
// such as a missing parent, goes through the document instead.
func runSet(ctx context.Context, c *invocation) error {
	path, value := c.args[0], cmdio.ParseValue(c.args[1], c.asString)

	if c.isJSON() && len(uripath.Keys(path)) > 0 {
		if out, err := rawjson.Set(c.in.Raw, path, value); err == nil {
			return c.in.CommitRaw(ctx, out, c.opts, c.streams)
		}
	}

	return c.commit(ctx, c.in.Doc.Set(path, value))
}

func runRemove(ctx context.Context, c *invocation) error {
	path := c.args[0]
	if c.isJSON() {
		out, _, ok := rawjson.Remove(c.in.Raw, path)
		if !ok {
			return &jsonuri.PathNotFoundError{Path: path}
		}
		return c.in.CommitRaw(ctx, out, c.opts, c.streams)
	}

	if _, ok := c.in.Doc.Remove(path); !ok {
		return &jsonuri.PathNotFoundError{Path: path}
	}
	return c.commit(ctx, nil)
}

func runSwap(ctx context.Context, c *invocation) error {
	return c.commit(ctx, c.in.Doc.Swap(c.args[0], c.args[1]))
}

func runMove(ctx context.Context, c *invocation) error {
	return c.commit(ctx, c.in.Doc.Move(c.args[0], c.args[1], jsonuri.ParseDirection(c.dir)))
}

func runInsert(ctx context.Context, c *invocation) error {
	value := cmdio.ParseValue(c.args[1], c.asString)
	return c.commit(ctx, c.in.Doc.Insert(c.args[0], value, jsonuri.ParseDirection(c.dir)))
}

func runUp(ctx context.Context, c *invocation) error {
	return c.commit(ctx, c.in.Doc.Up(c.args[0], c.gap))
}

func runDown(ctx context.Context, c *invocation) error {
	return c.commit(ctx, c.in.Doc.Down(c.args[0], c.gap))
}

// runPaths prints the path of every leaf value, one per line.
func runPaths(_ context.Context, c *invocation) error {
	for _, p := range jsonuri.Paths(c.in.Doc.Data()) {
		if p == "" {
			p = "/"
		}
		if _, err := fmt.Fprintln(c.streams.Out, p); err != nil {
			return err
		}
	}
	return nil
}

// runNormalize prints the normalized form of each path argument.
func runNormalize(_ context.Context, c *invocation) error {
	if len(c.args) == 0 {
		return errors.New("normalize: at least one path is required")
	}
	for _, p := range c.args {
		n := uripath.Normalize(p)
		if n == "" {
			n = "/"
		}
		if _, err := fmt.Fprintln(c.streams.Out, n); err != nil {
			return err
		}
	}
	return nil
}
