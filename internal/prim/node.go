// Package prim holds the primitive regex algebra: the handful of node shapes
// every supported regular expression is lowered into.
package prim

import (
	"fmt"
	"strconv"
	"strings"
)

// Alphabet is the size of the ordinal domain covered by Set and NegSet.
const Alphabet = 128

type Node interface {
	String() string // S-expression form, stable enough to compare in tests
	primNode()
}

type AnchorKind int

const (
	StartOfString AnchorKind = iota
	EndOfString
	StartOfLine
	EndOfLine
	Lookahead
	NegativeLookahead
	Lookbehind
	NegativeLookbehind
)

var anchorNames = [...]string{
	StartOfString:      "bos",
	EndOfString:        "eos",
	StartOfLine:        "bol",
	EndOfLine:          "eol",
	Lookahead:          "lookahead",
	NegativeLookahead:  "negative_lookahead",
	Lookbehind:         "lookbehind",
	NegativeLookbehind: "negative_lookbehind",
}

func (k AnchorKind) String() string {
	if k < 0 || int(k) >= len(anchorNames) {
		return "anchor(" + strconv.Itoa(int(k)) + ")"
	}
	return anchorNames[k]
}

// IsLookaround reports whether anchors of this kind wrap an inner expression.
func (k AnchorKind) IsLookaround() bool { return k >= Lookahead }

type Empty struct{}

// Set matches one character whose ordinal is listed in Codes.
type Set struct{ Codes []int }

// NegSet matches one character whose ordinal is NOT listed in Codes.
type NegSet struct{ Codes []int }

type Seq struct{ Left, Right Node }

type Alt struct{ Left, Right Node }

type Star struct{ Inner Node }

// Group is a capturing group. ID has the form "<context>-<n>".
type Group struct {
	ID    string
	Inner Node
}

// Backref refers to a Group by id. The id is not checked against the tree;
// see DanglingBackrefs.
type Backref struct{ ID string }

// Anchor is a zero-width assertion. Inner is set only for lookarounds.
type Anchor struct {
	Kind  AnchorKind
	Inner Node
}

func (Empty) primNode()   {}
func (Set) primNode()     {}
func (NegSet) primNode()  {}
func (Seq) primNode()     {}
func (Alt) primNode()     {}
func (Star) primNode()    {}
func (Group) primNode()   {}
func (Backref) primNode() {}
func (Anchor) primNode()  {}

func (Empty) String() string    { return "empty" }
func (s Set) String() string    { return "(set" + codesString(s.Codes) + ")" }
func (s NegSet) String() string { return "(neg_set" + codesString(s.Codes) + ")" }
func (s Seq) String() string    { return fmt.Sprintf("(seq %s %s)", s.Left, s.Right) }
func (a Alt) String() string    { return fmt.Sprintf("(alt %s %s)", a.Left, a.Right) }
func (s Star) String() string   { return fmt.Sprintf("(star %s)", s.Inner) }
func (g Group) String() string  { return fmt.Sprintf("(group %q %s)", g.ID, g.Inner) }
func (b Backref) String() string {
	return fmt.Sprintf("(backref %q)", b.ID)
}

func (a Anchor) String() string {
	if a.Inner == nil {
		return "(anchor " + a.Kind.String() + ")"
	}
	return fmt.Sprintf("(anchor %s %s)", a.Kind, a.Inner)
}

func codesString(codes []int) string {
	var b strings.Builder
	for _, c := range codes {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

// Members expands a Set or NegSet into a membership table over the alphabet.
// Any other node yields an empty table and false.
func Members(n Node) (m [Alphabet]bool, ok bool) {
	switch t := n.(type) {
	case Set:
		for _, c := range t.Codes {
			if c >= 0 && c < Alphabet {
				m[c] = true
			}
		}
		return m, true
	case NegSet:
		for i := range m {
			m[i] = true
		}
		for _, c := range t.Codes {
			if c >= 0 && c < Alphabet {
				m[c] = false
			}
		}
		return m, true
	}
	return m, false
}
