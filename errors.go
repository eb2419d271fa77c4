package ijson

import (
	"errors"
	"fmt"
)

var (
	// ErrJSON reports malformed input: a token where the grammar forbids
	// one, or a byte sequence that cannot be tokenized.
	ErrJSON = errors.New("ijson: invalid JSON")

	// ErrIncompleteJSON reports input that ended while a token or container
	// was still open. It matches ErrJSON under errors.Is, so callers that do
	// not care about the distinction can test for ErrJSON alone.
	ErrIncompleteJSON = fmt.Errorf("%w: incomplete document", ErrJSON)
)
