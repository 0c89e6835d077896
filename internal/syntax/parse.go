package syntax

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var ErrBadRepeat = errors.New("bad repetition")

// Parse turns pattern text into a syntax tree rooted at a KindSequence node
// with ContainerRoot.
func Parse(pattern string) (*Node, error) {
	root := &Node{Kind: KindSequence, Container: ContainerRoot}
	if pattern == "" {
		return root, nil
	}
	ast, err := parser.ParseString("pattern", pattern)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", pattern, err)
	}
	root.Children, err = body(ast.Items)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", pattern, err)
	}
	return root, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) *Node {
	n, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return n
}

// body converts the items of a group or of the whole pattern. Without bars
// the items become the children directly; with bars the single child is an
// alternation of branch containers.
func body(items []*item) ([]*Node, error) {
	var branches [][]*piece
	cur := []*piece{}
	for _, it := range items {
		if it.Bar {
			branches = append(branches, cur)
			cur = []*piece{}
			continue
		}
		cur = append(cur, it.Piece)
	}
	branches = append(branches, cur)

	if len(branches) == 1 {
		return pieces(branches[0])
	}
	alt := &Node{Kind: KindAlternation}
	for _, br := range branches {
		children, err := pieces(br)
		if err != nil {
			return nil, err
		}
		alt.Children = append(alt.Children, &Node{Kind: KindSequence, Container: ContainerBranch, Children: children})
	}
	return []*Node{alt}, nil
}

// pieces converts a run of pieces. Consecutive unquantified characters are
// merged into one literal; a quantified character stands alone so the
// quantifier applies to it only.
func pieces(ps []*piece) ([]*Node, error) {
	var out []*Node
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, &Node{Kind: KindLiteral, Text: lit.String()})
			lit.Reset()
		}
	}
	for _, p := range ps {
		if p.Atom.Char != nil && p.Quant == nil {
			lit.WriteString(*p.Atom.Char)
			continue
		}
		flush()
		n, err := convertAtom(p.Atom)
		if err != nil {
			return nil, err
		}
		if p.Quant != nil {
			if n.Quant, err = convertQuant(p.Quant); err != nil {
				return nil, err
			}
		}
		out = append(out, n)
	}
	flush()
	return out, nil
}

type groupKind struct {
	kind      Kind
	container Container
}

// Openers missing here are inline option groups such as "(?i:".
var groupKinds = map[string]groupKind{
	"(":    {KindCapture, ContainerPlain},
	"(?:":  {KindSequence, ContainerPassive},
	"(?=":  {KindLookahead, ContainerPlain},
	"(?!":  {KindNegativeLookahead, ContainerPlain},
	"(?<=": {KindLookbehind, ContainerPlain},
	"(?<!": {KindNegativeLookbehind, ContainerPlain},
	"(?>":  {KindSequence, ContainerAtomic},
}

var anchorKinds = map[string]Kind{
	`\A`: KindStartOfString,
	`\z`: KindEndOfString,
	`\Z`: KindEndOfStringOrNewline,
	`\b`: KindWordBoundary,
	`\B`: KindNonWordBoundary,
	`\G`: KindStartOfMatch,
	`\K`: KindMatchReset,
	`^`:  KindStartOfLine,
	`$`:  KindEndOfLine,
}

func convertAtom(a *atom) (*Node, error) {
	switch {
	case a.Group != nil:
		n := &Node{Kind: KindSequence, Container: ContainerOptions, Text: a.Group.Open}
		if gk, ok := groupKinds[a.Group.Open]; ok {
			n.Kind, n.Container = gk.kind, gk.container
		}
		children, err := body(a.Group.Items)
		if err != nil {
			return nil, err
		}
		n.Children = children
		return n, nil
	case a.Class != nil:
		negated, members := splitClass(*a.Class)
		return &Node{Kind: KindCharSet, Text: *a.Class, Negated: negated, Members: members}, nil
	case a.Backref != nil:
		return &Node{Kind: KindBackref, Text: *a.Backref}, nil
	case a.Anchor != nil:
		return &Node{Kind: anchorKinds[*a.Anchor], Text: *a.Anchor}, nil
	case a.CharType != nil:
		return &Node{Kind: KindCharType, Text: *a.CharType}, nil
	case a.Escape != nil:
		return &Node{Kind: KindEscape, Text: *a.Escape}, nil
	case a.Char != nil:
		return &Node{Kind: KindLiteral, Text: *a.Char}, nil
	}
	return nil, fmt.Errorf("empty atom")
}

func convertQuant(q *quantifier) (*Quantifier, error) {
	out := &Quantifier{Text: q.Op + q.Mode}
	switch q.Mode {
	case "?":
		out.Mode = Reluctant
	case "+":
		out.Mode = Possessive
	}
	switch q.Op {
	case "*":
		out.Min, out.Max = 0, Unbounded
	case "+":
		out.Min, out.Max = 1, Unbounded
	case "?":
		out.Min, out.Max = 0, 1
	default:
		lo, hi, comma := strings.Cut(q.Op[1:len(q.Op)-1], ",")
		var err error
		if lo != "" {
			if out.Min, err = strconv.Atoi(lo); err != nil {
				return nil, fmt.Errorf("%w %s: %v", ErrBadRepeat, q.Op, err)
			}
		}
		switch {
		case !comma:
			out.Max = out.Min
		case hi == "":
			out.Max = Unbounded
		default:
			if out.Max, err = strconv.Atoi(hi); err != nil {
				return nil, fmt.Errorf("%w %s: %v", ErrBadRepeat, q.Op, err)
			}
			if out.Max < out.Min {
				return nil, fmt.Errorf("%w %s: max below min", ErrBadRepeat, q.Op)
			}
		}
	}
	return out, nil
}

// splitClass breaks "[^a-cx\d]" into (true, ["a-c", "x", `\d`]).
func splitClass(text string) (bool, []string) {
	inner := text[1 : len(text)-1]
	negated := strings.HasPrefix(inner, "^")
	if negated {
		inner = inner[1:]
	}

	var units []string
	for i := 0; i < len(inner); {
		size := 1
		if j := posixEnd(inner[i:]); j > 0 {
			size = j
		} else if inner[i] == '\\' && i+1 < len(inner) {
			_, sz := utf8.DecodeRuneInString(inner[i+1:])
			size = 1 + sz
		} else {
			_, size = utf8.DecodeRuneInString(inner[i:])
		}
		units = append(units, inner[i:i+size])
		i += size
	}

	var members []string
	for i := 0; i < len(units); i++ {
		if i+2 < len(units) && units[i+1] == "-" {
			members = append(members, units[i]+"-"+units[i+2])
			i += 2
			continue
		}
		members = append(members, units[i])
	}
	return negated, members
}

// posixEnd returns the length of a leading "[:name:]" member, or 0.
func posixEnd(s string) int {
	if !strings.HasPrefix(s, "[:") {
		return 0
	}
	if j := strings.Index(s, ":]"); j > 2 {
		return j + 2
	}
	return 0
}
