// Package ijson is an incremental, event-driven JSON parser. It consumes a
// byte stream in chunks and produces lazy sequences of parse events without
// materializing the input or the output, with O(depth) memory.
//
// The pipeline is layered, each stage a lazy iterator over the one below:
//
//	Parse      bytes  → events (container starts/ends, scalar values)
//	WithPaths  events → (path, event) pairs, paths dotted like "docs.item.meta"
//	Items      pairs  → values reconstructed at one exact path
//
// Array elements have no name, so their path component is the fixed
// Wildcard marker "item".
//
// Numbers decode exactly: literals with a fraction or exponent become
// decimal.Decimal, plain integers become int64 (or *big.Int beyond int64
// range). Objects decode to *Object, which preserves key insertion order.
//
// No stage reads input or raises an error before it is iterated; malformed
// input surfaces as ErrJSON and truncated input as ErrIncompleteJSON during
// iteration.
package ijson
