// Package watch implements the watch subcommand, which follows a file and
// prints selected values every time the file changes.
package watch

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/linkjun/jsonuri/cmd/jsonuri/internal/cmdio"
	"github.com/linkjun/jsonuri/source/fs"
)

// Run executes the watch subcommand. It blocks until ctx is canceled.
func Run(ctx context.Context, args []string, streams cmdio.Streams) error {
	var opts cmdio.Options
	flags := flag.NewFlagSet("watch", flag.ContinueOnError)
	flags.SetOutput(streams.Err)
	opts.Register(flags, false)
	flags.Usage = func() {
		PrintHelp(streams.Err)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return err
	}
	if opts.File == cmdio.Stdin {
		return errors.New("watch: -f with a file is required")
	}
	paths := flags.Args()
	if len(paths) == 0 {
		paths = []string{"/"}
	}

	parser, err := cmdio.ParserFor(opts.Format, opts.File)
	if err != nil {
		return err
	}
	src := fs.New(opts.File)

	var mu sync.Mutex
	show := func(data []byte) {
		mu.Lock()
		defer mu.Unlock()

		doc, err := parser.Parse(data)
		if err != nil {
			fmt.Fprintf(streams.Err, "error: %s: %v\n", opts.File, err)
			return
		}
		for _, p := range paths {
			v, ok := doc.Get(p)
			if !ok {
				fmt.Fprintf(streams.Out, "%s\t<not found>\n", p)
				continue
			}
			raw, err := json.Marshal(v)
			if err != nil {
				fmt.Fprintf(streams.Err, "error: %s: %v\n", p, err)
				continue
			}
			fmt.Fprintf(streams.Out, "%s\t%s\n", p, raw)
		}
	}

	initial, err := src.Load(ctx)
	if err != nil {
		return err
	}
	show(initial)

	stop, err := src.Subscribe(ctx, func(data []byte, err error) {
		if err != nil {
			fmt.Fprintf(streams.Err, "error: %v\n", err)
			return
		}
		show(data)
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return stop(context.Background())
}

// PrintHelp prints the usage of the watch subcommand.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `Usage:
  jsonuri watch -f <file> [path...]

Prints the values at the given paths (default: the whole document) and
prints them again every time the file changes. Stops on interrupt.

Options:
`)
}
