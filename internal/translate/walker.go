// Package translate lowers a regex syntax tree into the primitive algebra of
// package prim.
package translate

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"rxprim/internal/charclass"
	"rxprim/internal/prim"
	"rxprim/internal/syntax"
)

// Walker holds translation settings only. Group numbering lives in the
// Groups value threaded through each Parse call, so one Walker can serve
// any number of contexts, concurrently.
type Walker struct {
	classes *charclass.Resolver
	log     *slog.Logger
	strict  bool
}

type Option func(*Walker)

// WithOracle resolves character classes through o instead of regexp2.
func WithOracle(o charclass.Oracle) Option {
	return func(w *Walker) { w.classes = charclass.NewResolver(o) }
}

// WithResolver shares a resolver, and its compiled-class cache, between walkers.
func WithResolver(r *charclass.Resolver) Option {
	return func(w *Walker) { w.classes = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Walker) { w.log = l }
}

// WithStrictBackrefs rejects translations containing a backreference to a
// group id the output tree does not define.
func WithStrictBackrefs() Option {
	return func(w *Walker) { w.strict = true }
}

func New(opts ...Option) *Walker {
	w := &Walker{}
	for _, opt := range opts {
		opt(w)
	}
	if w.classes == nil {
		w.classes = charclass.NewResolver(nil)
	}
	if w.log == nil {
		w.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w
}

// Translate parses pattern and walks it with a fresh Walker.
func Translate(pattern, context string, opts ...Option) (prim.Node, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return New(opts...).Parse(tree, context)
}

// Parse translates root. Capturing groups are numbered "<context>-1",
// "<context>-2", ... in the order their opening parentheses appear.
func (w *Walker) Parse(root *syntax.Node, context string) (prim.Node, error) {
	out, groups, err := w.walk(root, NewGroups(context))
	if err != nil {
		return nil, err
	}
	if w.strict {
		if dangling := prim.DanglingBackrefs(out); len(dangling) > 0 {
			return nil, fmt.Errorf("%w: %s", prim.ErrDanglingBackref, strings.Join(dangling, ", "))
		}
	}
	w.log.Debug("translated", "context", context, "groups", groups.Issued())
	return out, nil
}

var permittedContainers = map[syntax.Container]bool{
	syntax.ContainerPlain:   true,
	syntax.ContainerRoot:    true,
	syntax.ContainerPassive: true,
	syntax.ContainerBranch:  true,
}

var lookarounds = map[syntax.Kind]prim.AnchorKind{
	syntax.KindLookahead:          prim.Lookahead,
	syntax.KindNegativeLookahead:  prim.NegativeLookahead,
	syntax.KindLookbehind:         prim.Lookbehind,
	syntax.KindNegativeLookbehind: prim.NegativeLookbehind,
}

var anchors = map[syntax.Kind]prim.AnchorKind{
	syntax.KindStartOfString: prim.StartOfString,
	syntax.KindEndOfString:   prim.EndOfString,
	syntax.KindStartOfLine:   prim.StartOfLine,
	syntax.KindEndOfLine:     prim.EndOfLine,
}

func (w *Walker) walk(n *syntax.Node, g Groups) (prim.Node, Groups, error) {
	if n == nil {
		return nil, g, fmt.Errorf("%w: nil node", prim.ErrUnsupportedConstruct)
	}

	var (
		out prim.Node
		err error
	)
	switch n.Kind {
	case syntax.KindCapture:
		var id string
		id, g = g.Next()
		w.log.Debug("group", "id", id)
		var inner prim.Node
		if inner, g, err = w.sequence(n.Children, g); err == nil {
			out = prim.Group{ID: id, Inner: inner}
		}
	case syntax.KindAlternation:
		var parts []prim.Node
		if parts, g, err = w.children(n.Children, g); err == nil {
			out, err = prim.Alternative(parts...)
		}
	case syntax.KindLookahead, syntax.KindNegativeLookahead,
		syntax.KindLookbehind, syntax.KindNegativeLookbehind:
		var inner prim.Node
		if inner, g, err = w.sequence(n.Children, g); err == nil {
			out = prim.Anchor{Kind: lookarounds[n.Kind], Inner: inner}
		}
	case syntax.KindSequence:
		if !permittedContainers[n.Container] {
			return nil, g, fmt.Errorf("%w: %s group", prim.ErrUnsupportedConstruct, n.Container)
		}
		out, g, err = w.sequence(n.Children, g)
	case syntax.KindCharSet:
		out, err = w.classes.Class(n.Negated, n.Members)
	case syntax.KindLiteral:
		out, err = w.classes.Literal(n.Text)
	case syntax.KindCharType, syntax.KindEscape:
		out, err = w.classes.Resolve(n.Text)
	case syntax.KindBackref:
		out, err = backref(n.Text, g)
	case syntax.KindStartOfString, syntax.KindEndOfString,
		syntax.KindStartOfLine, syntax.KindEndOfLine:
		out = prim.Anchor{Kind: anchors[n.Kind]}
	default:
		return nil, g, fmt.Errorf("%w: %s", prim.ErrUnsupportedConstruct, n)
	}
	if err != nil {
		return nil, g, err
	}

	if n.Quantified() {
		if out, err = w.quantify(out, n.Quant); err != nil {
			return nil, g, err
		}
	}
	return out, g, nil
}

func (w *Walker) children(nodes []*syntax.Node, g Groups) ([]prim.Node, Groups, error) {
	parts := make([]prim.Node, 0, len(nodes))
	for _, c := range nodes {
		p, next, err := w.walk(c, g)
		if err != nil {
			return nil, g, err
		}
		parts, g = append(parts, p), next
	}
	return parts, g, nil
}

func (w *Walker) sequence(nodes []*syntax.Node, g Groups) (prim.Node, Groups, error) {
	parts, g, err := w.children(nodes, g)
	if err != nil {
		return nil, g, err
	}
	return prim.Concat(parts...), g, nil
}

func (w *Walker) quantify(n prim.Node, q *syntax.Quantifier) (prim.Node, error) {
	if q.Min < 0 || q.Max < Unbounded || q.Max != Unbounded && q.Max < q.Min {
		return nil, fmt.Errorf("%w: {%d,%d}", prim.ErrInvalidQuantifier, q.Min, q.Max)
	}
	if g, ok := n.(prim.Group); ok {
		w.log.Debug("repeat group", "id", g.ID, "min", q.Min, "max", q.Max)
		return RepeatGroup(g, q.Min, q.Max), nil
	}
	return Repeat(n, q.Min, q.Max), nil
}

var backrefText = regexp.MustCompile(`\A\\(\d+)\z`)

// backref resolves \N to the id group N has, or would have, in this context.
func backref(text string, g Groups) (prim.Node, error) {
	m := backrefText.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%w: backreference %q", prim.ErrUnsupportedConstruct, text)
	}
	num, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: backreference %q: %v", prim.ErrUnsupportedConstruct, text, err)
	}
	return prim.Backref{ID: g.ID(num)}, nil
}
