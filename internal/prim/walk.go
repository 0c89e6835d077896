package prim

import "sort"

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch t := n.(type) {
	case Seq:
		Walk(t.Left, fn)
		Walk(t.Right, fn)
	case Alt:
		Walk(t.Left, fn)
		Walk(t.Right, fn)
	case Star:
		Walk(t.Inner, fn)
	case Group:
		Walk(t.Inner, fn)
	case Anchor:
		Walk(t.Inner, fn)
	}
}

// GroupIDs lists the capturing group ids of n in document order. The same
// id may appear more than once when a quantifier duplicated a subtree.
func GroupIDs(n Node) []string {
	var ids []string
	Walk(n, func(n Node) bool {
		if g, ok := n.(Group); ok {
			ids = append(ids, g.ID)
		}
		return true
	})
	return ids
}

// DanglingBackrefs returns, sorted and deduplicated, the ids of backreferences
// in n that no Group in n defines.
func DanglingBackrefs(n Node) []string {
	defined := map[string]bool{}
	for _, id := range GroupIDs(n) {
		defined[id] = true
	}
	seen := map[string]bool{}
	var out []string
	Walk(n, func(n Node) bool {
		if b, ok := n.(Backref); ok && !defined[b.ID] && !seen[b.ID] {
			seen[b.ID] = true
			out = append(out, b.ID)
		}
		return true
	})
	sort.Strings(out)
	return out
}
