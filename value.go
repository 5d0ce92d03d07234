// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"fmt"

	"github.com/creachadair/jtok/internal/escape"

	"go4.org/mem"
)

// MaxNumberLen is the longest number literal, in bytes, that Int and Float
// will convert. Longer literals are reported as ErrBufferTooSmall.
const MaxNumberLen = 32

var (
	litTrue  = mem.S("true")
	litFalse = mem.S("false")
	litNull  = mem.S("null")
)

func (d Doc) primitive(pos int) (mem.RO, error) {
	if d.Kind(pos) != Primitive {
		return mem.RO{}, ErrTypeMismatch
	}
	return mem.B(d.Content(pos)), nil
}

// Bool returns the value of the boolean constant at pos. It reports
// ErrTypeMismatch if pos is not a Primitive, and ErrParse if it is not
// exactly true or false.
func (d Doc) Bool(pos int) (bool, error) {
	m, err := d.primitive(pos)
	if err != nil {
		return false, err
	}
	switch {
	case m.Equal(litTrue):
		return true, nil
	case m.Equal(litFalse):
		return false, nil
	}
	return false, ErrParse
}

// IsNull reports whether the token at pos is the constant null.
func (d Doc) IsNull(pos int) bool {
	m, err := d.primitive(pos)
	return err == nil && m.Equal(litNull)
}

func (d Doc) number(pos int) (mem.RO, error) {
	m, err := d.primitive(pos)
	if err != nil {
		return m, err
	} else if m.Len() > MaxNumberLen {
		return m, ErrBufferTooSmall
	}
	return m, nil
}

// Int returns the value of the decimal integer at pos. It reports
// ErrTypeMismatch if pos is not a Primitive, ErrBufferTooSmall if its text is
// longer than MaxNumberLen, and ErrParse if its text is not an integer in the
// range of int64.
func (d Doc) Int(pos int) (int64, error) {
	m, err := d.number(pos)
	if err != nil {
		return 0, err
	}
	v, err := mem.ParseInt(m, 10, 64)
	if err != nil {
		return 0, ErrParse
	}
	return v, nil
}

// Float returns the value of the number at pos. It reports ErrTypeMismatch if
// pos is not a Primitive, ErrBufferTooSmall if its text is longer than
// MaxNumberLen, and ErrParse if its text is not a number.
func (d Doc) Float(pos int) (float64, error) {
	m, err := d.number(pos)
	if err != nil {
		return 0, err
	}
	v, err := mem.ParseFloat(m, 64)
	if err != nil {
		return 0, ErrParse
	}
	return v, nil
}

// Equal reports whether the token at pos is a String whose content is exactly
// lit. The comparison is byte for byte, without decoding escapes.
func (d Doc) Equal(pos int, lit string) bool {
	return d.Kind(pos) == String && mem.B(d.Content(pos)).Equal(mem.S(lit))
}

// CopyContent copies the raw content of the token at pos into buf and returns
// the number of bytes copied. It reports ErrBufferTooSmall, and copies
// nothing, if the content is longer than buf.
func (d Doc) CopyContent(pos int, buf []byte) (int, error) {
	if d.Kind(pos) == Undefined {
		return -1, ErrTypeMismatch
	}
	c := d.Content(pos)
	if len(c) > len(buf) {
		return -1, ErrBufferTooSmall
	}
	return copy(buf, c), nil
}

// CopyString copies the content of the string value at pos into buf and
// returns the number of bytes copied. Escapes are not decoded (see Unquote).
// It reports ErrTypeMismatch if pos is not a String or is an object key.
func (d Doc) CopyString(pos int, buf []byte) (int, error) {
	if d.Kind(pos) != String || d.Tokens[pos].Size != 0 {
		return -1, ErrTypeMismatch
	}
	return d.CopyContent(pos, buf)
}

// Unquote appends the content of the String at pos to dst with its escape
// sequences decoded, and returns the extended slice. If dst has enough spare
// capacity, Unquote does not allocate.
func (d Doc) Unquote(pos int, dst []byte) ([]byte, error) {
	if d.Kind(pos) != String {
		return dst, ErrTypeMismatch
	}
	out, err := escape.Unquote(dst, mem.B(d.Content(pos)))
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return out, nil
}
