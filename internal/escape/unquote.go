// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the JSON encoding of a string from src and appends the
// result to dst. The input must have the enclosing double quotation marks
// already removed. If dst has enough spare capacity, Unquote does not
// allocate.
//
// Escape sequences are replaced with their unescaped equivalents. Invalid
// escapes are replaced by the Unicode replacement rune. Unquote reports an
// error for an incomplete escape sequence.
func Unquote(dst []byte, src mem.RO) ([]byte, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dst, src), nil
	}

	for src.Len() != 0 {
		dst = mem.Append(dst, src.SliceTo(i))

		// Decode the next rune after the escape to figure out what to
		// substitute. There should not be errors here, but if there are, insert
		// replacement runes (utf8.RuneError == '\ufffd').
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return dst, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}

		src = src.SliceFrom(n)
		switch r {
		case '"', '\\', '/':
			dst = append(dst, byte(r))
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			if src.Len() < 4 {
				return dst, errors.New("incomplete Unicode escape")
			}
			v, err := parseHex(src.SliceTo(4))
			src = src.SliceFrom(4)
			if err != nil {
				dst = utf8.AppendRune(dst, utf8.RuneError)
				break
			}

			// A high surrogate may be followed by an escaped low surrogate
			// to encode a rune outside the basic multilingual plane.
			r1 := rune(v)
			if utf16.IsSurrogate(r1) && src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
				if v2, err := parseHex(src.Slice(2, 6)); err == nil {
					if dec := utf16.DecodeRune(r1, rune(v2)); dec != utf8.RuneError {
						dst = utf8.AppendRune(dst, dec)
						src = src.SliceFrom(6)
						break
					}
				}
			}
			dst = utf8.AppendRune(dst, r1)
		default:
			dst = utf8.AppendRune(dst, utf8.RuneError)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dst = mem.Append(dst, src)
			break
		}
	}
	return dst, nil
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
