// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"fmt"

	"github.com/creachadair/jtok/scan"
	"github.com/tailscale/hujson"
)

// Parse tokenizes the JSON values in text and returns the tokens, written to
// toks[:0] in pre-order. Parse does not grow toks: if the input needs more
// than cap(toks) tokens, it reports ErrTooManyTokens along with the tokens
// produced so far. Use Count to find the required capacity.
//
// If text contains several top-level values, their tokens are stored one
// after another. In case of a syntax error, the error has concrete type
// *scan.SyntaxError.
func Parse(text []byte, toks []Token) ([]Token, error) {
	p := &tokenizer{toks: toks[:0]}
	err := scan.NewStream(text).Parse(p)
	return p.toks, err
}

// Count reports the number of tokens Parse needs to tokenize text.
func Count(text []byte) (int, error) {
	p := &tokenizer{count: true}
	if err := scan.NewStream(text).Parse(p); err != nil {
		return 0, err
	}
	return p.n, nil
}

// ParseHuJSON is as ParseDoc, but text may contain comments and trailing
// commas as permitted by HuJSON (JWCC). The text of the resulting Doc has the
// comments and trailing commas replaced by whitespace, so token offsets match
// positions in the original text. The text may be modified in place, and must
// contain exactly one top-level value.
func ParseHuJSON(text []byte, toks []Token) (Doc, error) {
	std, err := hujson.Standardize(text)
	if err != nil {
		return Doc{Text: text, Tokens: toks[:0]}, fmt.Errorf("standardize: %w", err)
	}
	return ParseDoc(std, toks)
}

// tokenizer implements the scan.Handler interface to record flat tokens.
type tokenizer struct {
	toks  []Token
	stk   []int // positions of open containers and keys
	count bool  // only count tokens
	n     int   // tokens seen
}

// push records a new token of the given kind and span, and credits it to the
// innermost open container or key.
func (p *tokenizer) push(kind Kind, sp scan.Span) (int, error) {
	p.n++
	if p.count {
		return -1, nil
	} else if len(p.toks) == cap(p.toks) {
		return -1, ErrTooManyTokens
	}
	if n := len(p.stk); n > 0 {
		p.toks[p.stk[n-1]].Size++
	}
	p.toks = append(p.toks, Token{Kind: kind, Start: sp.Pos, End: sp.End})
	return len(p.toks) - 1, nil
}

func (p *tokenizer) open(kind Kind, sp scan.Span) error {
	pos, err := p.push(kind, sp)
	if err == nil {
		p.stk = append(p.stk, pos)
	}
	return err
}

func (p *tokenizer) close(loc scan.Anchor) error {
	pos := p.stk[len(p.stk)-1]
	p.stk = p.stk[:len(p.stk)-1]
	if pos >= 0 {
		p.toks[pos].End = loc.Span().End
	}
	return nil
}

// BeginObject implements part of scan.Handler.
func (p *tokenizer) BeginObject(loc scan.Anchor) error { return p.open(Object, loc.Span()) }

// EndObject implements part of scan.Handler.
func (p *tokenizer) EndObject(loc scan.Anchor) error { return p.close(loc) }

// BeginArray implements part of scan.Handler.
func (p *tokenizer) BeginArray(loc scan.Anchor) error { return p.open(Array, loc.Span()) }

// EndArray implements part of scan.Handler.
func (p *tokenizer) EndArray(loc scan.Anchor) error { return p.close(loc) }

// BeginMember implements part of scan.Handler.
// The key is recorded as a String that owns the value of the member.
func (p *tokenizer) BeginMember(loc scan.Anchor) error { return p.open(String, unquoted(loc.Span())) }

// EndMember implements part of scan.Handler.
func (p *tokenizer) EndMember(loc scan.Anchor) error {
	p.stk = p.stk[:len(p.stk)-1]
	return nil
}

// Value implements part of scan.Handler.
func (p *tokenizer) Value(loc scan.Anchor) error {
	if loc.Token() == scan.String {
		_, err := p.push(String, unquoted(loc.Span()))
		return err
	}
	_, err := p.push(Primitive, loc.Span())
	return err
}

// EndOfInput implements part of scan.Handler.
func (p *tokenizer) EndOfInput(loc scan.Anchor) {}

func unquoted(sp scan.Span) scan.Span { return scan.Span{Pos: sp.Pos + 1, End: sp.End - 1} }
