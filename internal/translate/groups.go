package translate

import "strconv"

// Groups issues capturing-group ids "<context>-<n>" with n counting from 1.
// It is a value: Next returns the id and the advanced context, leaving the
// receiver untouched, so the walk threads it explicitly.
type Groups struct {
	context string
	n       int
}

func NewGroups(context string) Groups { return Groups{context: context} }

func (g Groups) Next() (string, Groups) {
	g.n++
	return g.ID(g.n), g
}

// ID builds the id of group n in this context whether or not it was issued.
func (g Groups) ID(n int) string { return g.context + "-" + strconv.Itoa(n) }

// Issued is the number of ids handed out so far.
func (g Groups) Issued() int { return g.n }
