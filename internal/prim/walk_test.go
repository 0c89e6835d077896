package prim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupIDsDocumentOrder(t *testing.T) {
	n := Sequence(
		Group{ID: "x-1", Inner: Group{ID: "x-2", Inner: a}},
		Star{Inner: Group{ID: "x-3", Inner: b}},
	)
	assert.Equal(t, []string{"x-1", "x-2", "x-3"}, GroupIDs(n))
}

func TestDanglingBackrefs(t *testing.T) {
	n := Sequence(
		Group{ID: "x-1", Inner: a},
		Backref{ID: "x-1"},
		Backref{ID: "x-4"},
		Anchor{Kind: NegativeLookbehind, Inner: Backref{ID: "x-2"}},
		Backref{ID: "x-4"},
	)
	assert.Equal(t, []string{"x-2", "x-4"}, DanglingBackrefs(n))
	assert.Empty(t, DanglingBackrefs(Sequence(Group{ID: "x-1", Inner: a}, Backref{ID: "x-1"})))
}

func TestWalkSkipsChildren(t *testing.T) {
	var seen []string
	Walk(Seq{Left: Star{Inner: a}, Right: b}, func(n Node) bool {
		seen = append(seen, n.String())
		_, isStar := n.(Star)
		return !isStar
	})
	assert.Equal(t, []string{"(seq (star (set 97)) (set 98))", "(star (set 97))", "(set 98)"}, seen)
}
