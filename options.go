package ijson

import (
	"github.com/leukeleu/ijson/internal/scanner"
)

// Option configures a parse.
type Option func(*options)

type options struct {
	bufSize int
}

func newOptions(opts []Option) options {
	o := options{bufSize: scanner.DefaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBufferSize sets the chunk size, in bytes, used to read from the
// source. Values below one select the default of 64 KiB.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufSize = n
	}
}
