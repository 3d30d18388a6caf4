// Package cmdio provides the input and output plumbing shared by the CLI
// subcommands: choosing a parser, loading a document from a file or stdin,
// and writing the edited result back.
package cmdio

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/linkjun/jsonuri/cmd/jsonuri/internal/diffview"
	"github.com/linkjun/jsonuri/document"
	jsonformat "github.com/linkjun/jsonuri/format/json"
	"github.com/linkjun/jsonuri/format/jsonc"
	"github.com/linkjun/jsonuri/format/toml"
	"github.com/linkjun/jsonuri/format/yaml"
	"github.com/linkjun/jsonuri/source"
	"github.com/linkjun/jsonuri/source/bytes"
	"github.com/linkjun/jsonuri/source/fs"
)

// Stdin is the file name that selects standard input.
const Stdin = "-"

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStreams returns the process's standard streams.
func OSStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Options holds the flags shared by every document-reading command.
type Options struct {
	File   string
	Format string
	Write  bool
	Diff   bool
}

// Register adds the shared flags. Commands that never write leave
// withWrite false to omit -w and -diff.
func (o *Options) Register(flags *flag.FlagSet, withWrite bool) {
	flags.StringVar(&o.File, "f", Stdin, "input file (\"-\" for stdin)")
	flags.StringVar(&o.Format, "format", "", "document format: json, yaml, toml, jsonc (default: by file extension, else json)")
	if withWrite {
		flags.BoolVar(&o.Write, "w", false, "write the result back to the input file")
		flags.BoolVar(&o.Diff, "diff", false, "print a diff of the change instead of the document")
	}
}

// ParserFor returns the parser for an explicit format name, or for the
// extension of file when name is empty. Unknown extensions fall back to
// JSON.
func ParserFor(name, file string) (document.Parser, error) {
	if name == "" {
		switch strings.ToLower(filepath.Ext(file)) {
		case ".yaml", ".yml":
			name = string(document.FormatYAML)
		case ".toml":
			name = string(document.FormatTOML)
		case ".jsonc":
			name = string(document.FormatJSONC)
		default:
			name = string(document.FormatJSON)
		}
	}

	switch document.DocumentFormat(strings.ToLower(name)) {
	case document.FormatJSON:
		return jsonformat.NewParser(), nil
	case document.FormatYAML:
		return yaml.NewParser(), nil
	case document.FormatTOML:
		return toml.NewParser(), nil
	case document.FormatJSONC:
		return jsonc.NewParser(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", name)
	}
}

// Input is a loaded document together with where it came from.
type Input struct {
	Name   string
	Raw    []byte
	Parser document.Parser
	Doc    document.Document

	src source.Source
}

// Load reads and parses the input selected by opts.
func Load(ctx context.Context, opts Options, streams Streams) (*Input, error) {
	if opts.Write && opts.File == Stdin {
		return nil, errors.New("-w requires -f with a file")
	}

	parser, err := ParserFor(opts.Format, opts.File)
	if err != nil {
		return nil, err
	}

	var src source.Source
	if opts.File == Stdin {
		if src, err = bytes.FromReader(streams.In); err != nil {
			return nil, err
		}
	} else {
		src = fs.New(opts.File)
	}

	raw, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.File, err)
	}

	return &Input{Name: opts.File, Raw: raw, Parser: parser, Doc: doc, src: src}, nil
}

// Source returns the source the input was loaded from.
func (in *Input) Source() source.Source {
	return in.src
}

// Commit serializes the document and emits the result.
func (in *Input) Commit(ctx context.Context, opts Options, streams Streams) error {
	out, err := in.Doc.Marshal()
	if err != nil {
		return err
	}
	return in.CommitRaw(ctx, out, opts, streams)
}

// CommitRaw emits already serialized output: it is written back to the
// file with -w, printed as a diff with -diff, and otherwise printed.
func (in *Input) CommitRaw(ctx context.Context, out []byte, opts Options, streams Streams) error {
	if opts.Write {
		err := in.src.Save(ctx, func([]byte) ([]byte, error) {
			return out, nil
		})
		if err != nil {
			return err
		}
	}

	if opts.Diff {
		p := diffview.NewPrinter(streams.Out, colorEnabled(streams.Out))
		return p.Print(in.Name, in.Raw, out)
	}
	if opts.Write {
		return nil
	}
	_, err := streams.Out.Write(out)
	return err
}

func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && diffview.IsTerminal(f)
}

// ParseValue interprets a command-line value as JSON, falling back to a
// plain string when it isn't valid JSON. With asString the text is always
// a string.
func ParseValue(text string, asString bool) any {
	if asString {
		return text
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return text
	}
	return v
}

// PrintValue writes v as indented JSON followed by a newline.
func PrintValue(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
