// Package query implements the query subcommand, which selects values with a
// JSONPath expression and prints them with their jsonuri paths.
package query

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/linkjun/jsonuri/cmd/jsonuri/internal/cmdio"
	jsonquery "github.com/linkjun/jsonuri/query"
)

// Run executes the query subcommand.
func Run(ctx context.Context, args []string, streams cmdio.Streams) error {
	var (
		opts      cmdio.Options
		pathsOnly bool
	)
	flags := flag.NewFlagSet("query", flag.ContinueOnError)
	flags.SetOutput(streams.Err)
	opts.Register(flags, false)
	flags.BoolVar(&pathsOnly, "paths", false, "print only the matching paths")
	flags.Usage = func() {
		PrintHelp(streams.Err)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("query: expected 1 expression, got %d", flags.NArg())
	}

	q, err := jsonquery.Compile(flags.Arg(0))
	if err != nil {
		return err
	}
	in, err := cmdio.Load(ctx, opts, streams)
	if err != nil {
		return err
	}

	for _, m := range q.Select(in.Doc.Data()) {
		path := m.Path
		if path == "" {
			path = "/"
		}
		if pathsOnly {
			if _, err := fmt.Fprintln(streams.Out, path); err != nil {
				return err
			}
			continue
		}
		raw, err := json.Marshal(m.Value)
		if err != nil {
			return fmt.Errorf("query: %s: %w", path, err)
		}
		if _, err := fmt.Fprintf(streams.Out, "%s\t%s\n", path, raw); err != nil {
			return err
		}
	}
	return nil
}

// PrintHelp prints the usage of the query subcommand.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `Usage:
  jsonuri query [options] <jsonpath>

Selects values with a JSONPath expression (RFC 9535) and prints one line
per match: the jsonuri path, a tab, and the value as compact JSON.

Example:
  jsonuri query -f config.yaml '$.servers[*].port'

Options:
`)
}
