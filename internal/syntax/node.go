// Package syntax defines the regex syntax tree consumed by the translator and
// a parser producing it from pattern text.
package syntax

import "fmt"

type Kind int

const (
	KindCapture Kind = iota
	KindAlternation
	KindLookahead
	KindNegativeLookahead
	KindLookbehind
	KindNegativeLookbehind
	KindSequence // generic container, see Container
	KindCharSet
	KindLiteral
	KindCharType // \d \w \s . and friends
	KindEscape   // \. \n \x41 ...
	KindBackref
	KindStartOfString
	KindEndOfString
	KindStartOfLine
	KindEndOfLine
	KindWordBoundary
	KindNonWordBoundary
	KindEndOfStringOrNewline
	KindStartOfMatch // \G
	KindMatchReset   // \K
)

var kindNames = map[Kind]string{
	KindCapture:              "capture",
	KindAlternation:          "alternation",
	KindLookahead:            "lookahead",
	KindNegativeLookahead:    "negative_lookahead",
	KindLookbehind:           "lookbehind",
	KindNegativeLookbehind:   "negative_lookbehind",
	KindSequence:             "sequence",
	KindCharSet:              "char_set",
	KindLiteral:              "literal",
	KindCharType:             "char_type",
	KindEscape:               "escape",
	KindBackref:              "backref",
	KindStartOfString:        "bos",
	KindEndOfString:          "eos",
	KindStartOfLine:          "bol",
	KindEndOfLine:            "eol",
	KindWordBoundary:         "word_boundary",
	KindNonWordBoundary:      "nonword_boundary",
	KindEndOfStringOrNewline: "eos_ob_eol",
	KindStartOfMatch:         "match_start",
	KindMatchReset:           "keep",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Container is the exact subtype of a KindSequence node.
type Container int

const (
	ContainerPlain Container = iota
	ContainerRoot
	ContainerPassive // (?:...)
	ContainerBranch  // one side of an alternation
	ContainerAtomic  // (?>...)
	ContainerOptions // (?i:...)
)

var containerNames = [...]string{"plain", "root", "passive", "branch", "atomic", "options"}

func (c Container) String() string {
	if c < 0 || int(c) >= len(containerNames) {
		return fmt.Sprintf("container(%d)", int(c))
	}
	return containerNames[c]
}

// Unbounded is the Quantifier.Max of open-ended repetitions.
const Unbounded = -1

type QuantMode int

const (
	Greedy QuantMode = iota
	Reluctant
	Possessive
)

type Quantifier struct {
	Min, Max int
	Mode     QuantMode
	Text     string
}

type Node struct {
	Kind      Kind
	Container Container // KindSequence only
	Children  []*Node
	Text      string   // leaf kinds: raw source text
	Negated   bool     // KindCharSet
	Members   []string // KindCharSet
	Quant     *Quantifier
}

func (n *Node) Quantified() bool { return n.Quant != nil }

func (n *Node) String() string {
	s := n.Kind.String()
	if n.Kind == KindSequence {
		s += ":" + n.Container.String()
	}
	if n.Text != "" {
		s += fmt.Sprintf(" %q", n.Text)
	}
	if n.Quant != nil {
		s += " " + n.Quant.Text
	}
	return s
}
