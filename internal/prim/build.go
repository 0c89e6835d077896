package prim

import "fmt"

// Sequence concatenates parts. Zero parts give Empty, one part is returned
// as is, more are folded pairwise from the left: (a b c) -> Seq(Seq(a,b),c).
func Sequence(parts ...Node) Node {
	switch len(parts) {
	case 0:
		return Empty{}
	case 1:
		return parts[0]
	}
	acc := parts[0]
	for _, p := range parts[1:] {
		acc = Seq{Left: acc, Right: p}
	}
	return acc
}

// Alternative is the alternation counterpart of Sequence. Zero parts is a
// caller error.
func Alternative(parts ...Node) (Node, error) {
	switch len(parts) {
	case 0:
		return nil, fmt.Errorf("alternative: %w", ErrEmptyAlternative)
	case 1:
		return parts[0], nil
	}
	acc := parts[0]
	for _, p := range parts[1:] {
		acc = Alt{Left: acc, Right: p}
	}
	return acc, nil
}

// Maybe is Alt(Empty, n), the optional form used by quantifier expansion.
func Maybe(n Node) Node { return Alt{Left: Empty{}, Right: n} }

// Concat is Sequence with Empty parts dropped first, so concatenating with
// nothing leaves the other side unchanged.
func Concat(parts ...Node) Node {
	kept := make([]Node, 0, len(parts))
	for _, p := range parts {
		if _, ok := p.(Empty); !ok {
			kept = append(kept, p)
		}
	}
	return Sequence(kept...)
}
