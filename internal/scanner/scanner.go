// Package scanner tokenizes a JSON byte stream incrementally. Input is read
// in fixed-size chunks and a token may start in one chunk and finish in a
// later one: bytes that cannot yet be interpreted (a partial UTF-8 sequence,
// escape sequence, number literal, or keyword) are retained and prefixed to
// the next chunk, so any split point is tolerated.
package scanner

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// DefaultBufferSize is the chunk size used when none is configured.
const DefaultBufferSize = 64 * 1024

var (
	// ErrLex reports a byte sequence that cannot form a valid token.
	ErrLex = errors.New("invalid token")

	// ErrIncomplete reports end of input in the middle of a token.
	ErrIncomplete = errors.New("unexpected end of input")
)

// TokenKind identifies a lexical JSON token.
type TokenKind uint8

const (
	TokenLBrace TokenKind = iota
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenColon
	TokenComma
	TokenString
	TokenNumber
	TokenTrue
	TokenFalse
	TokenNull
)

// Token is a single lexical token. String tokens carry the decoded text,
// number tokens the raw literal; punctuation and keywords carry the source
// spelling.
type Token struct {
	Kind    TokenKind
	Literal string
}

// Scanner reads JSON tokens from an io.Reader. It keeps only the bytes of
// the token in progress, so memory use is bounded by the chunk size plus the
// longest single token.
type Scanner struct {
	r       io.Reader
	bufSize int
	buf     []byte // unconsumed bytes, token in progress starts at or after pos
	pos     int
	eof     bool
	offset  int // bytes consumed before buf[0]
}

func New(r io.Reader, bufSize int) *Scanner {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &Scanner{r: r, bufSize: bufSize}
}

// Next returns the next token. It returns io.EOF once the input is exhausted
// with no token in progress.
func (s *Scanner) Next() (Token, error) {
	if err := s.skipSpace(); err != nil {
		return Token{}, err
	}

	b, ok, err := s.peek()
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, io.EOF
	}

	switch b {
	case '{':
		s.pos++
		return Token{Kind: TokenLBrace, Literal: "{"}, nil
	case '}':
		s.pos++
		return Token{Kind: TokenRBrace, Literal: "}"}, nil
	case '[':
		s.pos++
		return Token{Kind: TokenLBracket, Literal: "["}, nil
	case ']':
		s.pos++
		return Token{Kind: TokenRBracket, Literal: "]"}, nil
	case ':':
		s.pos++
		return Token{Kind: TokenColon, Literal: ":"}, nil
	case ',':
		s.pos++
		return Token{Kind: TokenComma, Literal: ","}, nil
	case '"':
		return s.scanString()
	case 't':
		return s.scanKeyword("true", TokenTrue)
	case 'f':
		return s.scanKeyword("false", TokenFalse)
	case 'n':
		return s.scanKeyword("null", TokenNull)
	default:
		if b == '-' || (b >= '0' && b <= '9') {
			return s.scanNumber()
		}
		return Token{}, s.lexErrorf("unexpected byte %q", b)
	}
}

// fill compacts the buffer and reads one more chunk from the source. It
// reports whether any new bytes became available.
func (s *Scanner) fill() (bool, error) {
	if s.eof {
		return false, nil
	}

	if s.pos > 0 {
		s.offset += s.pos
		s.buf = append(s.buf[:0], s.buf[s.pos:]...)
		s.pos = 0
	}

	chunk := make([]byte, s.bufSize)
	for {
		n, err := s.r.Read(chunk)
		if n > 0 {
			s.buf = append(s.buf, chunk[:n]...)
			if err == io.EOF {
				s.eof = true
			}
			return true, nil
		}
		if err == io.EOF {
			s.eof = true
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

// peek returns the byte at the cursor without consuming it, filling from the
// source as needed. ok is false at end of input.
func (s *Scanner) peek() (b byte, ok bool, err error) {
	for s.pos >= len(s.buf) {
		filled, err := s.fill()
		if err != nil {
			return 0, false, err
		}
		if !filled {
			return 0, false, nil
		}
	}
	return s.buf[s.pos], true, nil
}

func (s *Scanner) skipSpace() error {
	for {
		b, ok, err := s.peek()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return nil
		}
	}
}

func (s *Scanner) lexErrorf(format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at byte %d", ErrLex, detail, s.offset+s.pos)
}

func (s *Scanner) scanKeyword(word string, kind TokenKind) (Token, error) {
	for i := 0; i < len(word); i++ {
		b, ok, err := s.peek()
		if err != nil {
			return Token{}, err
		}
		if !ok {
			return Token{}, fmt.Errorf("%w: truncated literal %q", ErrIncomplete, word[:i])
		}
		if b != word[i] {
			return Token{}, s.lexErrorf("unexpected byte %q in literal %q", b, word)
		}
		s.pos++
	}
	return Token{Kind: kind, Literal: word}, nil
}

func (s *Scanner) scanString() (Token, error) {
	s.pos++ // opening quote

	var sb strings.Builder
	for {
		b, ok, err := s.peek()
		if err != nil {
			return Token{}, err
		}
		if !ok {
			return Token{}, fmt.Errorf("%w: unterminated string literal", ErrIncomplete)
		}

		switch {
		case b == '"':
			s.pos++
			return Token{Kind: TokenString, Literal: sb.String()}, nil
		case b == '\\':
			if err := s.scanEscape(&sb); err != nil {
				return Token{}, err
			}
		case b < 0x20:
			return Token{}, s.lexErrorf("control character %#02x in string literal", b)
		case b < utf8.RuneSelf:
			sb.WriteByte(b)
			s.pos++
		default:
			if err := s.scanRune(&sb); err != nil {
				return Token{}, err
			}
		}
	}
}

// scanRune consumes one multi-byte UTF-8 sequence. A sequence truncated only
// by a chunk boundary is completed from the next chunk; validation happens
// on the completed sequence.
func (s *Scanner) scanRune(sb *strings.Builder) error {
	b := s.buf[s.pos]

	var size int
	switch {
	case b&0xE0 == 0xC0:
		size = 2
	case b&0xF0 == 0xE0:
		size = 3
	case b&0xF8 == 0xF0:
		size = 4
	default:
		return s.lexErrorf("invalid UTF-8 start byte %#02x", b)
	}

	for len(s.buf)-s.pos < size {
		filled, err := s.fill()
		if err != nil {
			return err
		}
		if !filled {
			return fmt.Errorf("%w: truncated UTF-8 sequence", ErrIncomplete)
		}
	}

	r, n := utf8.DecodeRune(s.buf[s.pos : s.pos+size])
	if r == utf8.RuneError && n <= 1 {
		return s.lexErrorf("invalid UTF-8 sequence")
	}
	sb.Write(s.buf[s.pos : s.pos+size])
	s.pos += size
	return nil
}

func (s *Scanner) scanEscape(sb *strings.Builder) error {
	s.pos++ // backslash

	b, ok, err := s.peek()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: truncated escape sequence", ErrIncomplete)
	}
	s.pos++

	switch b {
	case '"':
		sb.WriteByte('"')
	case '\\':
		sb.WriteByte('\\')
	case '/':
		sb.WriteByte('/')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		return s.scanUnicodeEscape(sb)
	default:
		return s.lexErrorf("invalid escape character %q", b)
	}
	return nil
}

func (s *Scanner) scanUnicodeEscape(sb *strings.Builder) error {
	r1, err := s.scanHex4()
	if err != nil {
		return err
	}

	if !utf16.IsSurrogate(r1) {
		sb.WriteRune(r1)
		return nil
	}

	// A surrogate half must combine with a following \uXXXX low half.
	for _, want := range []byte{'\\', 'u'} {
		b, ok, err := s.peek()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: truncated surrogate pair", ErrIncomplete)
		}
		if b != want {
			return s.lexErrorf("malformed surrogate pair")
		}
		s.pos++
	}

	r2, err := s.scanHex4()
	if err != nil {
		return err
	}

	r := utf16.DecodeRune(r1, r2)
	if r == utf8.RuneError {
		return s.lexErrorf("malformed surrogate pair")
	}
	sb.WriteRune(r)
	return nil
}

func (s *Scanner) scanHex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		b, ok, err := s.peek()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("%w: truncated \\u escape", ErrIncomplete)
		}

		var d rune
		switch {
		case b >= '0' && b <= '9':
			d = rune(b - '0')
		case b >= 'a' && b <= 'f':
			d = rune(b-'a') + 10
		case b >= 'A' && b <= 'F':
			d = rune(b-'A') + 10
		default:
			return 0, s.lexErrorf("invalid character %q in \\u escape", b)
		}
		r = r<<4 | d
		s.pos++
	}
	return r, nil
}

// scanNumber consumes a number literal per the json.org grammar. End of
// input terminates a structurally complete literal; inside a mandatory part
// it is reported as incomplete.
func (s *Scanner) scanNumber() (Token, error) {
	var sb strings.Builder

	b, _, _ := s.peek()
	if b == '-' {
		sb.WriteByte(b)
		s.pos++
	}

	b, ok, err := s.peek()
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, fmt.Errorf("%w: truncated number literal", ErrIncomplete)
	}
	switch {
	case b == '0':
		sb.WriteByte(b)
		s.pos++
	case b >= '1' && b <= '9':
		if err := s.scanDigits(&sb); err != nil {
			return Token{}, err
		}
	default:
		return Token{}, s.lexErrorf("invalid number literal")
	}

	b, ok, err = s.peek()
	if err != nil {
		return Token{}, err
	}
	if ok && b == '.' {
		sb.WriteByte(b)
		s.pos++
		if err := s.scanRequiredDigits(&sb, "fraction"); err != nil {
			return Token{}, err
		}
		b, ok, err = s.peek()
		if err != nil {
			return Token{}, err
		}
	}

	if ok && (b == 'e' || b == 'E') {
		sb.WriteByte(b)
		s.pos++
		b, ok, err = s.peek()
		if err != nil {
			return Token{}, err
		}
		if ok && (b == '+' || b == '-') {
			sb.WriteByte(b)
			s.pos++
		}
		if err := s.scanRequiredDigits(&sb, "exponent"); err != nil {
			return Token{}, err
		}
	}

	return Token{Kind: TokenNumber, Literal: sb.String()}, nil
}

func (s *Scanner) scanDigits(sb *strings.Builder) error {
	for {
		b, ok, err := s.peek()
		if err != nil {
			return err
		}
		if !ok || b < '0' || b > '9' {
			return nil
		}
		sb.WriteByte(b)
		s.pos++
	}
}

func (s *Scanner) scanRequiredDigits(sb *strings.Builder, part string) error {
	b, ok, err := s.peek()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: truncated number %s", ErrIncomplete, part)
	}
	if b < '0' || b > '9' {
		return s.lexErrorf("missing digits in number %s", part)
	}
	return s.scanDigits(sb)
}
