package cli

import (
	"bytes"
	"errors"
	"flag"

	"github.com/leukeleu/ijson/internal/exit"
)

var (
	ErrInvalidFormat    = errors.New("--format must be one of: json, yaml")
	ErrSelectorConflict = errors.New("--path and --jsonpath are mutually exclusive")
	ErrTooManyArguments = errors.New("at most one input file may be specified")
	ErrInvalidBuffer    = errors.New("--buffer must not be negative")
)

// Config holds the complete configuration for the ijson tool.
type Config struct {
	// Extraction: at most one of Path (dotted, streaming) and JSONPath
	// (over the built document) may be set; neither means whole document.
	Path     string
	JSONPath string

	// Output
	Format string

	// Read chunk size in bytes; 0 selects the library default.
	BufferSize int

	// Input file; empty or "-" means stdin.
	InputFile string
}

// Parse parses command line arguments into a Config. On failure it returns
// an exit result carrying the usage or validation message.
func Parse(args []string) (*Config, *exit.Result) {
	fs := flag.NewFlagSet("ijson", flag.ContinueOnError)

	var usage bytes.Buffer
	fs.SetOutput(&usage)

	cfg := &Config{}
	fs.StringVar(&cfg.Path, "path", "", `dotted path to stream values from, array elements spelled "item" (e.g. docs.item.meta)`)
	fs.StringVar(&cfg.JSONPath, "jsonpath", "", "JSONPath expression evaluated over the built document (e.g. $.docs[*].meta)")
	fs.StringVar(&cfg.Format, "format", "json", "output format: json or yaml")
	fs.IntVar(&cfg.BufferSize, "buffer", 0, "read chunk size in bytes (0 = 64KiB)")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, exit.Error(usage.String())
	}

	rest := fs.Args()
	if len(rest) > 1 {
		return nil, exit.Errorf("%v\n", ErrTooManyArguments)
	}
	if len(rest) == 1 {
		cfg.InputFile = rest[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, exit.Errorf("%v\n", err)
	}

	return cfg, nil
}

// Validate checks the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Format != "json" && c.Format != "yaml" {
		return ErrInvalidFormat
	}
	if c.Path != "" && c.JSONPath != "" {
		return ErrSelectorConflict
	}
	if c.BufferSize < 0 {
		return ErrInvalidBuffer
	}
	return nil
}
