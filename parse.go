package ijson

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/leukeleu/ijson/internal/scanner"
	"github.com/leukeleu/ijson/internal/stack"
)

type containerKind uint8

const (
	kindObj containerKind = iota
	kindArr
)

// parseState encodes what the grammar will accept next.
type parseState uint8

const (
	stateValue       parseState = iota // a value: top level, after ':' or after array ','
	stateValueOrEnd                    // first array element or ']'
	stateKeyOrEnd                      // first object key or '}'
	stateKey                           // object key after ','
	stateColon                         // ':' between key and value
	stateCommaOrEndObj
	stateCommaOrEndArr
	stateDone
)

// Parse reads JSON from r and produces its event sequence. The sequence is
// strictly lazy: no byte is read and no error surfaces before iteration,
// and each step pulls only as many bytes as the next event requires. A bare
// top-level scalar is a complete document yielding exactly one event.
//
// An error terminates the sequence. Malformed input yields ErrJSON,
// truncated input ErrIncompleteJSON; errors from r pass through unchanged.
func Parse(r io.Reader, opts ...Option) iter.Seq2[Event, error] {
	o := newOptions(opts)

	return func(yield func(Event, error) bool) {
		p := &parser{
			sc:         scanner.New(r, o.bufSize),
			containers: stack.New[containerKind](),
			state:      stateValue,
		}

		for {
			ev, err := p.next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Event{}, err)
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

type parser struct {
	sc         *scanner.Scanner
	containers *stack.Stack[containerKind]
	state      parseState
}

// next returns the next event, io.EOF after a complete document.
func (p *parser) next() (Event, error) {
	for {
		tok, err := p.sc.Next()
		if err == io.EOF {
			return Event{}, p.atEOF()
		}
		if err != nil {
			return Event{}, mapScanError(err)
		}

		ev, emitted, err := p.step(tok)
		if err != nil {
			return Event{}, err
		}
		if emitted {
			return ev, nil
		}
	}
}

// step applies one token to the grammar. Colons and commas emit no event.
func (p *parser) step(tok scanner.Token) (Event, bool, error) {
	switch p.state {
	case stateValue, stateValueOrEnd:
		if tok.Kind == scanner.TokenRBracket && p.state == stateValueOrEnd {
			return p.closeArray()
		}
		return p.value(tok)

	case stateKeyOrEnd:
		if tok.Kind == scanner.TokenRBrace {
			return p.closeObject()
		}
		fallthrough

	case stateKey:
		if tok.Kind != scanner.TokenString {
			return Event{}, false, p.structuralError(tok)
		}
		p.state = stateColon
		return Event{Kind: MapKey, Value: tok.Literal}, true, nil

	case stateColon:
		if tok.Kind != scanner.TokenColon {
			return Event{}, false, p.structuralError(tok)
		}
		p.state = stateValue
		return Event{}, false, nil

	case stateCommaOrEndObj:
		switch tok.Kind {
		case scanner.TokenComma:
			p.state = stateKey
			return Event{}, false, nil
		case scanner.TokenRBrace:
			return p.closeObject()
		default:
			return Event{}, false, p.structuralError(tok)
		}

	case stateCommaOrEndArr:
		switch tok.Kind {
		case scanner.TokenComma:
			p.state = stateValue
			return Event{}, false, nil
		case scanner.TokenRBracket:
			return p.closeArray()
		default:
			return Event{}, false, p.structuralError(tok)
		}

	default: // stateDone
		return Event{}, false, fmt.Errorf("%w: trailing %q after top-level value", ErrJSON, tok.Literal)
	}
}

func (p *parser) value(tok scanner.Token) (Event, bool, error) {
	switch tok.Kind {
	case scanner.TokenLBrace:
		p.containers.Push(kindObj)
		p.state = stateKeyOrEnd
		return Event{Kind: StartMap}, true, nil
	case scanner.TokenLBracket:
		p.containers.Push(kindArr)
		p.state = stateValueOrEnd
		return Event{Kind: StartArray}, true, nil
	case scanner.TokenString:
		p.afterValue()
		return Event{Kind: String, Value: tok.Literal}, true, nil
	case scanner.TokenNumber:
		v, err := decodeNumber(tok.Literal)
		if err != nil {
			return Event{}, false, err
		}
		p.afterValue()
		return Event{Kind: Number, Value: v}, true, nil
	case scanner.TokenTrue:
		p.afterValue()
		return Event{Kind: Boolean, Value: true}, true, nil
	case scanner.TokenFalse:
		p.afterValue()
		return Event{Kind: Boolean, Value: false}, true, nil
	case scanner.TokenNull:
		p.afterValue()
		return Event{Kind: Null}, true, nil
	default:
		return Event{}, false, p.structuralError(tok)
	}
}

func (p *parser) closeObject() (Event, bool, error) {
	p.containers.Pop()
	p.afterValue()
	return Event{Kind: EndMap}, true, nil
}

func (p *parser) closeArray() (Event, bool, error) {
	p.containers.Pop()
	p.afterValue()
	return Event{Kind: EndArray}, true, nil
}

// afterValue advances the state once a value (scalar or closed container)
// has been produced in the current context.
func (p *parser) afterValue() {
	top, ok := p.containers.Peek()
	switch {
	case !ok:
		p.state = stateDone
	case top == kindObj:
		p.state = stateCommaOrEndObj
	default:
		p.state = stateCommaOrEndArr
	}
}

func (p *parser) structuralError(tok scanner.Token) error {
	return fmt.Errorf("%w: unexpected %q", ErrJSON, tok.Literal)
}

func (p *parser) atEOF() error {
	switch {
	case p.state == stateDone:
		return io.EOF
	case !p.containers.IsEmpty():
		return fmt.Errorf("%w: %d container(s) left open", ErrIncompleteJSON, p.containers.Size())
	default:
		return fmt.Errorf("%w: no top-level value", ErrIncompleteJSON)
	}
}

func mapScanError(err error) error {
	switch {
	case errors.Is(err, scanner.ErrIncomplete):
		return fmt.Errorf("%w: %v", ErrIncompleteJSON, err)
	case errors.Is(err, scanner.ErrLex):
		return fmt.Errorf("%w: %v", ErrJSON, err)
	default:
		return err
	}
}

// decodeNumber keeps the literal's mathematical value exact: fraction or
// exponent literals become decimal.Decimal, plain integers int64 with a
// *big.Int fallback beyond 64 bits.
func decodeNumber(lit string) (any, error) {
	if strings.ContainsAny(lit, ".eE") {
		d, err := decimal.NewFromString(lit)
		if err != nil {
			return nil, fmt.Errorf("%w: number %q", ErrJSON, lit)
		}
		return d, nil
	}

	if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return n, nil
	}

	n, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		return nil, fmt.Errorf("%w: number %q", ErrJSON, lit)
	}
	return n, nil
}

// Build feeds a complete event sequence into one ObjectBuilder and returns
// the reconstructed document.
func Build(events iter.Seq2[Event, error]) (any, error) {
	b := NewObjectBuilder()
	for ev, err := range events {
		if err != nil {
			return nil, err
		}
		b.Apply(ev)
	}
	if !b.Complete() {
		return nil, fmt.Errorf("%w: no top-level value", ErrIncompleteJSON)
	}
	return b.Value(), nil
}
