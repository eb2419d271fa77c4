package scanner

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func collect(t *testing.T, input string, bufSize int) ([]Token, error) {
	t.Helper()

	s := New(strings.NewReader(input), bufSize)
	var tokens []Token
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

func TestScannerPunctuation(t *testing.T) {
	tokens, err := collect(t, "{}[]:,", 0)
	if err != nil {
		t.Fatalf("collect() error = %v", err)
	}

	want := []Token{
		{Kind: TokenLBrace, Literal: "{"},
		{Kind: TokenRBrace, Literal: "}"},
		{Kind: TokenLBracket, Literal: "["},
		{Kind: TokenRBracket, Literal: "]"},
		{Kind: TokenColon, Literal: ":"},
		{Kind: TokenComma, Literal: ","},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("tokens = %v, want %v", tokens, want)
	}
}

func TestScannerKeywords(t *testing.T) {
	tokens, err := collect(t, " true false null ", 0)
	if err != nil {
		t.Fatalf("collect() error = %v", err)
	}

	want := []Token{
		{Kind: TokenTrue, Literal: "true"},
		{Kind: TokenFalse, Literal: "false"},
		{Kind: TokenNull, Literal: "null"},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("tokens = %v, want %v", tokens, want)
	}
}

func TestScannerStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", `""`, ""},
		{"plain", `"hello"`, "hello"},
		{"escaped_quote", `"\""`, `"`},
		{"escaped_backslash", `"\\"`, `\`},
		{"double_escaped_backslash", `"\\\\"`, `\\`},
		{"slash", `"\/"`, "/"},
		{"control_escapes", `"\b\f\n\r\t"`, "\b\f\n\r\t"},
		{"unicode_escape", `"\u0441\u0442"`, "ст"},
		{"surrogate_pair", `"\ud83d\ude00"`, "😀"},
		{"raw_utf8", `"тест"`, "тест"},
		{"mixed", `"abc"`, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := collect(t, tt.input, 0)
			if err != nil {
				t.Fatalf("collect() error = %v", err)
			}
			if len(tokens) != 1 {
				t.Fatalf("len(tokens) = %d, want 1", len(tokens))
			}
			if tokens[0].Kind != TokenString {
				t.Errorf("Kind = %v, want TokenString", tokens[0].Kind)
			}
			if tokens[0].Literal != tt.want {
				t.Errorf("Literal = %q, want %q", tokens[0].Literal, tt.want)
			}
		})
	}
}

func TestScannerNumbers(t *testing.T) {
	tests := []string{
		"0",
		"-0",
		"5",
		"10000000000",
		"0.5",
		"-1.25",
		"1.0e2",
		"1e2",
		"1E2",
		"1.0E2",
		"-1e2",
		"1e+2",
		"1e-2",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tokens, err := collect(t, input, 0)
			if err != nil {
				t.Fatalf("collect() error = %v", err)
			}
			want := []Token{{Kind: TokenNumber, Literal: input}}
			if !reflect.DeepEqual(tokens, want) {
				t.Errorf("tokens = %v, want %v", tokens, want)
			}
		})
	}
}

func TestScannerLexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid_escape", `"\x"`},
		{"control_character", "\"a\x01b\""},
		{"invalid_utf8_start_byte", "\"a\xffb\""},
		{"invalid_utf8_continuation", "\"\xd1\x00\""},
		{"lone_high_surrogate", `"\ud83dx"`},
		{"lone_low_surrogate", `"\ude00\ude00"`},
		{"bad_hex_digit", `"\u00zz"`},
		{"bare_garbage", "@"},
		{"misspelled_literal", "nul1"},
		{"leading_plus", "+1"},
		{"missing_fraction_digits", "1.x"},
		{"missing_exponent_digits", "1ex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collect(t, tt.input, 0)
			if !errors.Is(err, ErrLex) {
				t.Errorf("error = %v, want ErrLex", err)
			}
		})
	}
}

func TestScannerIncompleteErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated_string", `"test`},
		{"truncated_escape", `"\`},
		{"truncated_unicode_escape", `"\u00`},
		{"truncated_surrogate_pair", `"\ud83d`},
		{"truncated_utf8_sequence", "\"\xd1"},
		{"bare_minus", "-"},
		{"truncated_fraction", "1."},
		{"truncated_exponent", "1e"},
		{"truncated_exponent_sign", "1e+"},
		{"truncated_keyword", "tru"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collect(t, tt.input, 0)
			if !errors.Is(err, ErrIncomplete) {
				t.Errorf("error = %v, want ErrIncomplete", err)
			}
		})
	}
}

// A chunk boundary may fall anywhere, including inside multi-byte UTF-8
// sequences, escapes, numbers and keywords. Every buffer size must produce
// the same token stream.
func TestScannerChunkSplit(t *testing.T) {
	input := `{"строка": "с - тест", "n": -1.25e+10, "ok": true, "v": null}`

	want, err := collect(t, input, 0)
	if err != nil {
		t.Fatalf("collect() error = %v", err)
	}

	for bufSize := 1; bufSize <= len(input); bufSize++ {
		got, err := collect(t, input, bufSize)
		if err != nil {
			t.Fatalf("bufSize %d: collect() error = %v", bufSize, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("bufSize %d: tokens = %v, want %v", bufSize, got, want)
		}
	}
}

func TestScannerEmptyInput(t *testing.T) {
	s := New(strings.NewReader(""), 0)
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}

func TestScannerWhitespaceOnly(t *testing.T) {
	s := New(strings.NewReader(" \t\r\n "), 0)
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}
