// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package scan

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsValue reports whether t is a complete data value (a string, number, or
// constant).
func (t Token) IsValue() bool { return t >= Integer && t <= Null }

// A Scanner reads lexical tokens from a byte slice. Each call to Next
// advances the scanner to the next token, or reports an error.
//
// The scanner does not copy its input: the slices returned by Text are views
// into the original buffer, and remain valid as long as it is not modified.
type Scanner struct {
	src []byte
	tok Token
	err error

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from src.
func NewScanner(src []byte) *Scanner { return &Scanner{src: src} }

// Reset discards the state of s and restarts it on src.
func (s *Scanner) Reset(src []byte) { *s = Scanner{src: src} }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid

	// Discard whitespace.
	for s.end < len(s.src) && isSpace(s.src[s.end]) {
		if s.src[s.end] == '\n' {
			s.eline++
			s.ecol = 0
		} else {
			s.ecol++
		}
		s.end++
	}
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
	if s.end >= len(s.src) {
		return s.setErr(io.EOF)
	}

	ch := s.src[s.end]
	s.advance(1)

	// Handle punctuation.
	if t, ok := selfDelim(ch); ok {
		s.tok = t
		return nil
	}

	// Handle numbers.
	if isNumStart(ch) {
		return s.scanNumber(ch)
	}

	// Handle string values.
	if ch == '"' {
		return s.scanString()
	}

	// Handle constants: true, false, null
	var want mem.RO
	switch ch {
	case 't':
		s.tok = True
		want = mem.S("true")
	case 'f':
		s.tok = False
		want = mem.S("false")
	case 'n':
		s.tok = Null
		want = mem.S("null")
	default:
		return s.failf("unexpected %q", s.runeAt(s.pos))
	}
	s.readWhile(isNameByte)
	if got := mem.B(s.Text()); !got.Equal(want) {
		s.tok = Invalid
		return s.failf("unknown constant %q", got.StringCopy())
	}
	return nil // OK, token is already set
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. String tokens include
// their enclosing quotation marks. The result is a view into the input.
func (s *Scanner) Text() []byte { return s.src[s.pos:s.end] }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

func (s *Scanner) scanString() error {
	var esc bool
	for s.end < len(s.src) {
		ch := s.src[s.end]
		if esc {
			// We are awaiting the completion of a \-escape.
			switch ch {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.advance(1)
			case 'u':
				s.advance(1)
				if err := s.readHex4(); err != nil {
					return s.failf("invalid Unicode escape: %w", err)
				}
			default:
				return s.failf("invalid %q after escape", s.runeAt(s.end))
			}
			esc = false
			continue
		}
		switch {
		case ch == '"':
			s.advance(1)
			s.tok = String
			return nil
		case ch < ' ':
			return s.failf("unescaped control %q", rune(ch))
		case ch >= utf8.RuneSelf:
			r, n := utf8.DecodeRune(s.src[s.end:])
			if r == utf8.RuneError && n <= 1 {
				return s.failf("invalid UTF-8 at offset %d", s.end)
			}
			s.advance(n)
		default:
			esc = ch == '\\'
			s.advance(1)
		}
	}
	return s.failf("unterminated string: %w", io.ErrUnexpectedEOF)
}

func (s *Scanner) scanNumber(start byte) error {
	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		if err := s.require(isDigit, "digit"); err != nil {
			return err
		}
	}

	// Consume the remainder of an integer.
	s.readWhile(isDigit)

	// Check for extra leading zeroes, which are disallowed by the JSON grammar.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.Text()) {
		return s.failf("extra leading zeroes")
	}
	s.tok = Integer

	// If a decimal point follows, consume a fractional part.
	if s.peek() == '.' {
		s.advance(1)
		if s.readWhile(isDigit) == 0 {
			return s.failf("no digits after decimal point")
		}
		s.tok = Number
	}

	// If an exponent follows, consume it.
	if ch := s.peek(); ch != 'E' && ch != 'e' {
		return nil
	}
	s.advance(1)
	if ch := s.peek(); ch == '-' || ch == '+' {
		s.advance(1)
	}
	if s.readWhile(isDigit) == 0 {
		return s.failf("missing exponent digits")
	}
	s.tok = Number
	return nil
}

// peek returns the next unconsumed byte, or 0 at the end of input.
func (s *Scanner) peek() byte {
	if s.end < len(s.src) {
		return s.src[s.end]
	}
	return 0
}

// advance consumes n bytes, none of which is a newline.
func (s *Scanner) advance(n int) { s.end += n; s.ecol += n }

func (s *Scanner) runeAt(pos int) rune {
	r, _ := utf8.DecodeRune(s.src[pos:])
	return r
}

// require consumes a single byte matching f from the input, or returns an
// error mentioning the desired label.
func (s *Scanner) require(f func(byte) bool, label string) error {
	if s.end >= len(s.src) {
		return s.failf("want %s, got error: %w", label, io.EOF)
	} else if ch := s.src[s.end]; !f(ch) {
		return s.failf("got %q, want %s", s.runeAt(s.end), label)
	}
	s.advance(1)
	return nil
}

// readWhile consumes bytes matching f from the input until the end of input
// or a byte not matching f is found, and reports the number consumed.
func (s *Scanner) readWhile(f func(byte) bool) int {
	var nr int
	for s.end < len(s.src) && f(s.src[s.end]) {
		s.advance(1)
		nr++
	}
	return nr
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *Scanner) readHex4() error {
	for i := 0; i < 4; i++ {
		if s.end >= len(s.src) {
			return io.ErrUnexpectedEOF
		} else if ch := s.src[s.end]; !isHexDigit(ch) {
			return fmt.Errorf("not a hex digit: %q", s.runeAt(s.end))
		}
		s.advance(1)
	}
	return nil
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) failf(msg string, args ...any) error {
	return s.setErr(posError{s.end, fmt.Errorf(msg, args...)})
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, disallowed by the JSON grammar.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
