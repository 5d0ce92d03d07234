// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"fmt"
	"iter"
)

// A Doc is a read-only view of a JSON document and its tokens, as produced by
// Parse. Methods that take a position interpret it as an offset in Tokens.
// Positions outside the range of Tokens have no kind, and operations that
// require a particular kind report ErrTypeMismatch for them.
type Doc struct {
	Text   []byte
	Tokens []Token
}

// ParseDoc tokenizes text into toks and returns a Doc for the result.
// See Parse for the meaning of toks.
func ParseDoc(text []byte, toks []Token) (Doc, error) {
	out, err := Parse(text, toks)
	return Doc{Text: text, Tokens: out}, err
}

// Root returns the position of the first top-level value of d.
func (d Doc) Root() int { return 0 }

// At returns the token at pos. It panics if pos is out of range.
func (d Doc) At(pos int) Token { return d.Tokens[pos] }

// Kind returns the kind of the token at pos, or Undefined if pos is out of
// range.
func (d Doc) Kind(pos int) Kind {
	if pos < 0 || pos >= len(d.Tokens) {
		return Undefined
	}
	return d.Tokens[pos].Kind
}

// Content returns a view of the source text of the token at pos. The caller
// must not modify the result. It returns nil if pos is out of range.
func (d Doc) Content(pos int) []byte {
	if d.Kind(pos) == Undefined {
		return nil
	}
	t := d.Tokens[pos]
	return d.Text[t.Start:t.End]
}

// Next returns the position of the first token after the subtree rooted at
// pos. For the last top-level value, this is len(d.Tokens).
func (d Doc) Next(pos int) int {
	// Each token consumes one pending slot and adds its own children.
	for want := 1; want > 0 && pos < len(d.Tokens); pos++ {
		want += d.Tokens[pos].Size - 1
	}
	return pos
}

// Child returns the position of the first child of the token at pos, and
// reports whether there is one.
func (d Doc) Child(pos int) (int, bool) {
	if d.Kind(pos) == Undefined || d.Tokens[pos].Size == 0 || pos+1 >= len(d.Tokens) {
		return -1, false
	}
	return pos + 1, true
}

// ObjectGet returns the position of the value of the first member of the
// object at pos whose key exactly equals key. Keys are compared byte for byte
// as written, without decoding escapes.
//
// It reports ErrTypeMismatch if pos is not an Object, and ErrNotFound if no
// member has the given key.
func (d Doc) ObjectGet(pos int, key string) (int, error) {
	if d.Kind(pos) != Object {
		return -1, ErrTypeMismatch
	}
	it := pos + 1
	for range d.Tokens[pos].Size {
		if it >= len(d.Tokens) {
			break // truncated token stream
		}

		// An entry that owns no value cannot be a key.
		if d.Tokens[it].Size > 0 && d.Equal(it, key) {
			return it + 1, nil
		}
		it = d.Next(it)
	}
	return -1, ErrNotFound
}

// Members returns a sequence of the key and value positions of the members of
// the object at pos, in document order. The sequence is empty if pos is not an
// Object. Entries that do not own a value are skipped.
func (d Doc) Members(pos int) iter.Seq2[int, int] {
	return func(yield func(key, value int) bool) {
		if d.Kind(pos) != Object {
			return
		}
		it := pos + 1
		for range d.Tokens[pos].Size {
			if it >= len(d.Tokens) {
				return
			}
			if d.Tokens[it].Size > 0 && !yield(it, it+1) {
				return
			}
			it = d.Next(it)
		}
	}
}

// ArrayGet returns the position of the element at offset index of the array
// at pos. It reports ErrTypeMismatch if pos is not an Array, and ErrIndexRange
// unless 0 ≤ index < size.
func (d Doc) ArrayGet(pos, index int) (int, error) {
	if d.Kind(pos) != Array {
		return -1, ErrTypeMismatch
	} else if index < 0 || index >= d.Tokens[pos].Size {
		return -1, ErrIndexRange
	}
	it := pos + 1
	for range index {
		it = d.Next(it)
	}
	if it >= len(d.Tokens) {
		return -1, ErrIndexRange // truncated token stream
	}
	return it, nil
}

// ArraySize returns the number of elements of the array at pos.  It reports
// -1 and ErrTypeMismatch if pos is not an Array.
func (d Doc) ArraySize(pos int) (int, error) {
	if d.Kind(pos) != Array {
		return -1, ErrTypeMismatch
	}
	return d.Tokens[pos].Size, nil
}

// Elements returns a sequence of the offsets and positions of the elements of
// the array at pos, in document order. The sequence is empty if pos is not an
// Array.
func (d Doc) Elements(pos int) iter.Seq2[int, int] {
	return func(yield func(index, value int) bool) {
		if d.Kind(pos) != Array {
			return
		}
		it := pos + 1
		for i := range d.Tokens[pos].Size {
			if it >= len(d.Tokens) || !yield(i, it) {
				return
			}
			it = d.Next(it)
		}
	}
}

// Find traverses a sequential path into the structure of the value at pos and
// returns the position of the value reached.  Path elements are strings
// (denoting object keys) or integers (denoting offsets into arrays). Negative
// offsets count backward from the end of the array (-1 is last).
//
// If the path cannot be completely consumed, Find reports an error that wraps
// the error from the step that failed.
func (d Doc) Find(pos int, path ...any) (int, error) {
	cur := pos
	for i, elt := range path {
		var next int
		var err error
		switch t := elt.(type) {
		case string:
			next, err = d.ObjectGet(cur, t)
		case int:
			n, serr := d.ArraySize(cur)
			if serr != nil {
				err = serr
				break
			}
			if t < 0 {
				t += n
			}
			next, err = d.ArrayGet(cur, t)
		default:
			err = ErrInvalidPath
		}
		if err != nil {
			return -1, fmt.Errorf("path element %d (%v): %w", i, elt, err)
		}
		cur = next
	}
	return cur, nil
}
