// Package patch implements the patch subcommand, which applies an RFC 6902
// JSON Patch or an RFC 7386 merge patch to a document of any format.
package patch

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/linkjun/jsonuri/cmd/jsonuri/internal/cmdio"
	jsonpatch "github.com/linkjun/jsonuri/patch"
)

// Run executes the patch subcommand.
func Run(ctx context.Context, args []string, streams cmdio.Streams) error {
	var (
		opts  cmdio.Options
		merge bool
	)
	flags := flag.NewFlagSet("patch", flag.ContinueOnError)
	flags.SetOutput(streams.Err)
	opts.Register(flags, true)
	flags.BoolVar(&merge, "merge", false, "treat the patch file as an RFC 7386 merge patch")
	flags.Usage = func() {
		PrintHelp(streams.Err)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("patch: expected 1 patch file, got %d", flags.NArg())
	}

	patchDoc, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	in, err := cmdio.Load(ctx, opts, streams)
	if err != nil {
		return err
	}

	current, err := json.Marshal(in.Doc.Data())
	if err != nil {
		return err
	}

	var patched []byte
	if merge {
		patched, err = jsonpatch.MergeJSON(current, patchDoc)
	} else {
		patched, err = jsonpatch.ApplyJSON(current, patchDoc)
	}
	if err != nil {
		return err
	}

	var result any
	if err := json.Unmarshal(patched, &result); err != nil {
		return fmt.Errorf("patch: decode result: %w", err)
	}
	out, err := in.Parser.Marshal(result)
	if err != nil {
		return err
	}
	return in.CommitRaw(ctx, out, opts, streams)
}

// PrintHelp prints the usage of the patch subcommand.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `Usage:
  jsonuri patch [options] <patch.json>

Applies a JSON Patch document (RFC 6902) to the input, or a merge patch
(RFC 7386) with -merge. The result is written in the input's format.

Options:
`)
}
