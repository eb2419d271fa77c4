package cli

import (
	"context"
	"io"
	"os"

	"github.com/leukeleu/ijson"
	"github.com/leukeleu/ijson/internal/exit"
	"github.com/leukeleu/ijson/internal/extractor"
	"github.com/leukeleu/ijson/internal/formatter"
)

// Run executes the configured extraction, writing values to out.
func Run(ctx context.Context, cfg *Config, out io.Writer) *exit.Result {
	in, closeInput, res := openInput(cfg.InputFile)
	if res != nil {
		return res
	}
	defer closeInput()

	f, err := formatter.New(cfg.Format, out)
	if err != nil {
		return exit.Errorf("%v\n", err)
	}

	var opts []ijson.Option
	if cfg.BufferSize > 0 {
		opts = append(opts, ijson.WithBufferSize(cfg.BufferSize))
	}

	switch {
	case cfg.Path != "":
		return streamItems(ctx, cfg, in, f, opts)
	case cfg.JSONPath != "":
		doc, err := ijson.Build(ijson.Parse(in, opts...))
		if err != nil {
			return exit.Errorf("%v\n", err)
		}
		values, err := extractor.Select(doc, cfg.JSONPath)
		if err != nil {
			return exit.Errorf("%v\n", err)
		}
		for _, v := range values {
			if err := f.Format(v); err != nil {
				return exit.Errorf("%v\n", err)
			}
		}
	default:
		doc, err := ijson.Build(ijson.Parse(in, opts...))
		if err != nil {
			return exit.Errorf("%v\n", err)
		}
		if err := f.Format(doc); err != nil {
			return exit.Errorf("%v\n", err)
		}
	}

	return nil
}

// streamItems prints values at the dotted path as the parse discovers them,
// holding at most one value in memory.
func streamItems(ctx context.Context, cfg *Config, in io.Reader, f formatter.Formatter, opts []ijson.Option) *exit.Result {
	for v, err := range ijson.ItemsAt(in, cfg.Path, opts...) {
		if ctx.Err() != nil {
			return exit.Errorf("%v\n", ctx.Err())
		}
		if err != nil {
			return exit.Errorf("%v\n", err)
		}
		if err := f.Format(v); err != nil {
			return exit.Errorf("%v\n", err)
		}
	}
	return nil
}

func openInput(name string) (io.Reader, func(), *exit.Result) {
	if name == "" || name == "-" {
		return os.Stdin, func() {}, nil
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, nil, exit.Errorf("%v\n", err)
	}
	return file, func() { file.Close() }, nil
}
