package prim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	a = Set{Codes: []int{97}}
	b = Set{Codes: []int{98}}
	c = NegSet{Codes: []int{99}}
)

func TestSequence(t *testing.T) {
	assert.Equal(t, Empty{}, Sequence())
	assert.Equal(t, a, Sequence(a))
	assert.Equal(t, Seq{Left: a, Right: b}, Sequence(a, b))
	assert.Equal(t, Seq{Left: Seq{Left: a, Right: b}, Right: c}, Sequence(a, b, c))
}

func TestSequenceKeepsEmptyParts(t *testing.T) {
	got := Sequence(Empty{}, a, Empty{})
	assert.Equal(t, Seq{Left: Seq{Left: Empty{}, Right: a}, Right: Empty{}}, got)
}

func TestAlternative(t *testing.T) {
	got, err := Alternative(a)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	got, err = Alternative(a, b, c)
	require.NoError(t, err)
	assert.Equal(t, Alt{Left: Alt{Left: a, Right: b}, Right: c}, got)
}

func TestAlternativeEmpty(t *testing.T) {
	got, err := Alternative()
	require.ErrorIs(t, err, ErrEmptyAlternative)
	assert.Nil(t, got)
}

func TestString(t *testing.T) {
	n := Seq{
		Left: Group{ID: "p-1", Inner: a},
		Right: Alt{
			Left:  Empty{},
			Right: Anchor{Kind: Lookahead, Inner: Star{Inner: c}},
		},
	}
	assert.Equal(t, `(seq (group "p-1" (set 97)) (alt empty (anchor lookahead (star (neg_set 99)))))`, n.String())
	assert.Equal(t, "(anchor bol)", Anchor{Kind: StartOfLine}.String())
	assert.Equal(t, `(backref "p-3")`, Backref{ID: "p-3"}.String())
	assert.Equal(t, "(set)", Set{}.String())
}

func TestMembers(t *testing.T) {
	m, ok := Members(Set{Codes: []int{1, 2}})
	require.True(t, ok)
	n := 0
	for _, in := range m {
		if in {
			n++
		}
	}
	assert.Equal(t, 2, n)

	m, ok = Members(NegSet{Codes: []int{97, 98, 99}})
	require.True(t, ok)
	n = 0
	for _, in := range m {
		if in {
			n++
		}
	}
	assert.Equal(t, 125, n)
	assert.False(t, m[98])

	_, ok = Members(Empty{})
	assert.False(t, ok)
}

func TestConcatDropsEmpty(t *testing.T) {
	assert.Equal(t, Empty{}, Concat(Empty{}, Empty{}))
	assert.Equal(t, a, Concat(Empty{}, a))
	assert.Equal(t, Seq{Left: a, Right: b}, Concat(a, Empty{}, b))
}
