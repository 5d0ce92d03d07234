// Package jpath implements a minimal JSONPath-style expression for locating a
// single value in a tokenized document.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/jtok"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = "[" value "]"
  name = WORD
 value = "'" QTEXT "'"
 value = INDEX

  WORD = RE `\w+`
 QTEXT = RE `[^']*`
 INDEX = RE `-?\d+`

Each step selects exactly one value, so the wildcard, recursive descent,
slice, filter, and script forms of JSONPath are not supported.
*/

// An Expr is a parsed path expression.
type Expr []Step

// Parse parses s as a path expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var steps Expr
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", len(s)-len(t), err)
		}
		steps = append(steps, step)
		t = rest
	}
	return steps, nil
}

// MustParse is as Parse, but panics if s is not a valid expression.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("jpath: %v", err))
	}
	return e
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Member:
			fmt.Fprintf(&buf, ".%s", s.Name)
		case QName:
			fmt.Fprintf(&buf, "['%s']", s.Name)
		case Index:
			fmt.Fprintf(&buf, "[%d]", s.Index)
		}
	}
	return buf.String()
}

// Path returns the steps of e as path elements for jtok.Doc.Find.
func (e Expr) Path() []any {
	out := make([]any, len(e))
	for i, s := range e {
		if s.Op == Index {
			out[i] = s.Index
		} else {
			out[i] = s.Name
		}
	}
	return out
}

// Find evaluates e starting from the value at pos in d, and returns the
// position of the value reached. A step that fails reports an error wrapping
// the navigation error from that step.
func (e Expr) Find(d jtok.Doc, pos int) (int, error) { return d.Find(pos, e.Path()...) }

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		return Step{}, t, errors.New("recursive descent is not supported")
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		if m := wordRE.FindStringSubmatch(t); m != nil {
			return Step{Op: Member, Name: m[1]}, t[len(m[0]):], nil
		}
		return Step{}, t, errors.New("invalid .name")
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		var out Step
		if m := quoteRE.FindStringSubmatch(t); m != nil {
			out = Step{Op: QName, Name: m[1]}
			t = t[len(m[0]):]
		} else if m := indexRE.FindStringSubmatch(t); m != nil {
			v, err := strconv.Atoi(m[1])
			if err != nil {
				return Step{}, t, fmt.Errorf("invalid index: %w", err)
			}
			out = Step{Op: Index, Index: v}
			t = t[len(m[0]):]
		} else {
			return Step{}, t, fmt.Errorf("invalid value: %q", t)
		}
		u, ok := strings.CutPrefix(t, "]")
		if !ok {
			return Step{}, t, errors.New("missing close bracket")
		}
		return out, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	indexRE = regexp.MustCompile(`^(-?\d+)`)
	quoteRE = regexp.MustCompile(`^'([^']*)'`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Member            // member lookup by name (.name)
	QName             // member lookup by quoted name (['name'])
	Index             // array index lookup ([n])
)

var opText = [...]string{
	Invalid: "invalid",
	Member:  ".",
	QName:   "qname",
	Index:   "index",
}

func (o Op) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return opText[Invalid]
}

// A Step is a single step of a path expression.
type Step struct {
	Op    Op
	Name  string // for Member and QName
	Index int    // for Index; negative values count from the end
}
