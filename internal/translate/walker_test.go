package translate

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rxprim/internal/charclass"
	"rxprim/internal/prim"
	"rxprim/internal/syntax"
)

func set(codes ...int) prim.Set { return prim.Set{Codes: codes} }

func translate(t *testing.T, pattern, context string, opts ...Option) prim.Node {
	t.Helper()
	out, err := Translate(pattern, context, opts...)
	require.NoError(t, err, pattern)
	return out
}

func TestTranslateEndToEnd(t *testing.T) {
	a, b := set(97), set(98)
	for _, tc := range []struct {
		pattern string
		want    prim.Node
	}{
		{"", prim.Empty{}},
		{"a{2,3}", prim.Seq{Left: a, Right: prim.Seq{Left: a, Right: prim.Alt{Left: prim.Empty{}, Right: a}}}},
		{"(a)*", prim.Alt{Left: prim.Empty{}, Right: prim.Seq{Left: prim.Star{Inner: a}, Right: prim.Group{ID: "p2-1", Inner: a}}}},
		{"[^a-c]", prim.NegSet{Codes: []int{97, 98, 99}}},
		{"ab", prim.Seq{Left: a, Right: b}},
		{"a|b|c", prim.Alt{Left: prim.Alt{Left: a, Right: b}, Right: set(99)}},
		{"a|", prim.Alt{Left: a, Right: prim.Empty{}}},
		{"()", prim.Group{ID: "p2-1", Inner: prim.Empty{}}},
		{"a{0}b", b},
		{"(?:ab)?", prim.Alt{Left: prim.Empty{}, Right: prim.Seq{Left: a, Right: b}}},
		{"(ab){2}", prim.Seq{Left: prim.Seq{Left: a, Right: b}, Right: prim.Group{ID: "p2-1", Inner: prim.Seq{Left: a, Right: b}}}},
		{"(a)|b", prim.Alt{Left: prim.Group{ID: "p2-1", Inner: a}, Right: b}},
		{`(a)\1`, prim.Seq{Left: prim.Group{ID: "p2-1", Inner: a}, Right: prim.Backref{ID: "p2-1"}}},
		{`\1`, prim.Backref{ID: "p2-1"}},
		{`^a$`, prim.Seq{Left: prim.Seq{Left: prim.Anchor{Kind: prim.StartOfLine}, Right: a}, Right: prim.Anchor{Kind: prim.EndOfLine}}},
		{`\Aa\z`, prim.Seq{Left: prim.Seq{Left: prim.Anchor{Kind: prim.StartOfString}, Right: a}, Right: prim.Anchor{Kind: prim.EndOfString}}},
		{"(?=ab)", prim.Anchor{Kind: prim.Lookahead, Inner: prim.Seq{Left: a, Right: b}}},
		{"(?!a)", prim.Anchor{Kind: prim.NegativeLookahead, Inner: a}},
		{"(?<=a)", prim.Anchor{Kind: prim.Lookbehind, Inner: a}},
		{"(?<!a)", prim.Anchor{Kind: prim.NegativeLookbehind, Inner: a}},
		{`\d`, set(48, 49, 50, 51, 52, 53, 54, 55, 56, 57)},
		{`.`, prim.NegSet{Codes: []int{10}}},
		{`\.+`, prim.Seq{Left: prim.Star{Inner: set(46)}, Right: set(46)}},
		{`\h`, set(48, 49, 50, 51, 52, 53, 54, 55, 56, 57, 65, 66, 67, 68, 69, 70, 97, 98, 99, 100, 101, 102)},
		{`[^[:digit:]]`, prim.NegSet{Codes: []int{48, 49, 50, 51, 52, 53, 54, 55, 56, 57}}},
		{`[[:upper:]a]`, set(65, 66, 67, 68, 69, 70, 71, 72, 73, 74, 75, 76, 77, 78, 79, 80, 81, 82, 83, 84, 85, 86, 87, 88, 89, 90, 97)},
		{"(?:){3}", prim.Empty{}},
		{"a(?:){2}b", prim.Seq{Left: a, Right: b}},
	} {
		assert.Equal(t, tc.want, translate(t, tc.pattern, "p2"), tc.pattern)
	}
}

func TestGroupIDsFollowOpeningOrder(t *testing.T) {
	out := translate(t, "((a)b)(c(d))", "ctx")
	assert.Equal(t, []string{"ctx-1", "ctx-2", "ctx-3", "ctx-4"}, prim.GroupIDs(out))
}

func TestQuantifiedGroupKeepsInnerIDs(t *testing.T) {
	out := translate(t, "((a)){2}(b)", "q")
	a := set(97)
	inner := prim.Group{ID: "q-2", Inner: a}
	want := prim.Seq{
		Left:  prim.Seq{Left: inner, Right: prim.Group{ID: "q-1", Inner: inner}},
		Right: prim.Group{ID: "q-3", Inner: set(98)},
	}
	assert.Equal(t, want, out)
}

func TestContextsDoNotCollide(t *testing.T) {
	w := New()
	tree := syntax.MustParse("(a)(b)")
	first, err := w.Parse(tree, "left")
	require.NoError(t, err)
	second, err := w.Parse(tree, "right")
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, id := range append(prim.GroupIDs(first), prim.GroupIDs(second)...) {
		assert.False(t, ids[id], id)
		ids[id] = true
	}
	assert.Len(t, ids, 4)
}

func TestWalkerParallelContexts(t *testing.T) {
	w := New()
	tree := syntax.MustParse(`(a)(b|(c))\3`)
	var wg sync.WaitGroup
	results := make([]prim.Node, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := w.Parse(tree, fmt.Sprintf("c%d", i))
			assert.NoError(t, err)
			results[i] = out
		}(i)
	}
	wg.Wait()
	for i, out := range results {
		ctx := fmt.Sprintf("c%d", i)
		assert.Equal(t, []string{ctx + "-1", ctx + "-2", ctx + "-3"}, prim.GroupIDs(out))
		assert.Empty(t, prim.DanglingBackrefs(out))
	}
}

func TestBackrefPassThrough(t *testing.T) {
	out := translate(t, `(a)\2`, "p")
	assert.Equal(t, []string{"p-2"}, prim.DanglingBackrefs(out))
}

func TestStrictBackrefs(t *testing.T) {
	_, err := Translate(`(a)\2`, "p", WithStrictBackrefs())
	require.ErrorIs(t, err, prim.ErrDanglingBackref)
	assert.Contains(t, err.Error(), "p-2")

	_, err = Translate(`(a)\1`, "p", WithStrictBackrefs())
	require.NoError(t, err)
}

func TestUnsupportedConstructs(t *testing.T) {
	for _, pattern := range []string{`(?>a)`, `(?i:a)`, `a\b`, `\B`, `a\Z`, `\G`, `a\Gb`, `a\Kb`, `(\G)*`} {
		out, err := Translate(pattern, "p")
		assert.ErrorIs(t, err, prim.ErrUnsupportedConstruct, pattern)
		assert.Nil(t, out, pattern)
	}
}

func TestHandBuiltTrees(t *testing.T) {
	lit := &syntax.Node{Kind: syntax.KindLiteral, Text: "a"}
	for _, tc := range []struct {
		name string
		tree *syntax.Node
		err  error
	}{
		{"empty alternation", &syntax.Node{Kind: syntax.KindAlternation}, prim.ErrEmptyAlternative},
		{"unknown container", &syntax.Node{Kind: syntax.KindSequence, Container: syntax.Container(42)}, prim.ErrUnsupportedConstruct},
		{"unknown kind", &syntax.Node{Kind: syntax.Kind(999)}, prim.ErrUnsupportedConstruct},
		{"nil child", &syntax.Node{Kind: syntax.KindSequence, Children: []*syntax.Node{lit, nil}}, prim.ErrUnsupportedConstruct},
		{"malformed backref", &syntax.Node{Kind: syntax.KindBackref, Text: `\k<x>`}, prim.ErrUnsupportedConstruct},
		{"max below min", &syntax.Node{Kind: syntax.KindLiteral, Text: "a", Quant: &syntax.Quantifier{Min: 3, Max: 2}}, prim.ErrInvalidQuantifier},
		{"negative min", &syntax.Node{Kind: syntax.KindLiteral, Text: "a", Quant: &syntax.Quantifier{Min: -1, Max: 2}}, prim.ErrInvalidQuantifier},
		{"deep failure", &syntax.Node{Kind: syntax.KindCapture, Children: []*syntax.Node{{Kind: syntax.KindWordBoundary}}}, prim.ErrUnsupportedConstruct},
		{"match start", &syntax.Node{Kind: syntax.KindStartOfMatch, Text: `\G`}, prim.ErrUnsupportedConstruct},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := New().Parse(tc.tree, "h")
			require.ErrorIs(t, err, tc.err)
			assert.Nil(t, out)
		})
	}
}

func TestZeroWidthEscapeMatchesNothing(t *testing.T) {
	// a tree from another parser may still carry \G as a plain escape
	for _, text := range []string{`\G`, `\b`} {
		out, err := New().Parse(&syntax.Node{Kind: syntax.KindEscape, Text: text}, "h")
		require.NoError(t, err, text)
		assert.Equal(t, prim.Set{}, out, text)
	}
}

func TestPlainContainerAndBranch(t *testing.T) {
	tree := &syntax.Node{Kind: syntax.KindSequence, Container: syntax.ContainerPlain, Children: []*syntax.Node{
		{Kind: syntax.KindSequence, Container: syntax.ContainerBranch, Children: []*syntax.Node{
			{Kind: syntax.KindLiteral, Text: "ab"},
		}},
	}}
	out, err := New().Parse(tree, "h")
	require.NoError(t, err)
	assert.Equal(t, prim.Seq{Left: set(97), Right: set(98)}, out)
}

type noneOracle struct{}

func (noneOracle) Compile(string) (charclass.Predicate, error) {
	return func(rune) bool { return false }, nil
}

func (noneOracle) Quote(s string) string { return s }

func TestWithOracle(t *testing.T) {
	out := translate(t, "[a-z]x", "p", WithOracle(noneOracle{}))
	assert.Equal(t, prim.Seq{Left: prim.Set{}, Right: prim.Set{}}, out)
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	translate(t, "(a)+", "log", WithLogger(logger))
	assert.Contains(t, buf.String(), "id=log-1")
	assert.Contains(t, buf.String(), "msg=\"repeat group\"")
	assert.Contains(t, buf.String(), "groups=1")
}
