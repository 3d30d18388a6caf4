// Package main provides the jsonuri CLI tool.
//
// Usage:
//
//	jsonuri <command> [arguments]
//
// Commands:
//
//	get, set, rm       Read and write values by path
//	swap, mv, insert   Rearrange values
//	up, down           Reorder sequence elements
//	paths, normalize   List and normalize paths
//	query              Select values with JSONPath
//	patch              Apply a JSON Patch or merge patch
//	watch              Print values whenever a file changes
//	help               Show help for a command
//	version            Show version information
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/linkjun/jsonuri"
	"github.com/linkjun/jsonuri/cmd/jsonuri/internal/cmdio"
	"github.com/linkjun/jsonuri/cmd/jsonuri/internal/edit"
	"github.com/linkjun/jsonuri/cmd/jsonuri/internal/patch"
	"github.com/linkjun/jsonuri/cmd/jsonuri/internal/query"
	"github.com/linkjun/jsonuri/cmd/jsonuri/internal/watch"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], cmdio.OSStreams())
	stop()
	os.Exit(code)
}

// run dispatches args to a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, streams cmdio.Streams) int {
	if len(args) < 1 {
		printUsage(streams.Err)
		return 1
	}

	// Commands return their errors; the library handler would print them twice.
	jsonuri.SetDiagnosticHandler(nil)

	cmd, args := args[0], args[1:]

	var err error
	switch {
	case slices.Contains(edit.Commands, cmd):
		err = edit.Run(ctx, cmd, args, streams)
	case cmd == "query":
		err = query.Run(ctx, args, streams)
	case cmd == "patch":
		err = patch.Run(ctx, args, streams)
	case cmd == "watch":
		err = watch.Run(ctx, args, streams)
	case cmd == "help":
		if len(args) > 0 {
			return printCommandHelp(streams, args[0])
		}
		printUsage(streams.Out)
	case cmd == "version", cmd == "-v", cmd == "--version":
		fmt.Fprintf(streams.Out, "jsonuri version %s\n", version)
	case cmd == "-h", cmd == "--help":
		printUsage(streams.Out)
	default:
		fmt.Fprintf(streams.Err, "unknown command: %s\n\n", cmd)
		printUsage(streams.Err)
		return 1
	}

	if err != nil {
		fmt.Fprintf(streams.Err, "error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `jsonuri - Path based editing for JSON, YAML, TOML and JSONC documents

Usage:
  jsonuri <command> [arguments]

Commands:
  get, set, rm       Read and write values by path
  swap, mv, insert   Rearrange values
  up, down           Reorder sequence elements
  paths, normalize   List and normalize paths
  query              Select values with JSONPath
  patch              Apply a JSON Patch or merge patch
  watch              Print values whenever a file changes
  help               Show help for a command
  version            Show version information

Paths look like /menu/id/2. Segments "." and ".." move within the path,
"..." climbs two levels and "~" returns to the root.

Use "jsonuri help <command>" for more information about a command.`)
}

func printCommandHelp(streams cmdio.Streams, cmd string) int {
	switch {
	case slices.Contains(edit.Commands, cmd):
		edit.PrintHelp(streams.Out)
	case cmd == "query":
		query.PrintHelp(streams.Out)
	case cmd == "patch":
		patch.PrintHelp(streams.Out)
	case cmd == "watch":
		watch.PrintHelp(streams.Out)
	default:
		fmt.Fprintf(streams.Err, "unknown command: %s\n", cmd)
		return 1
	}
	return 0
}
