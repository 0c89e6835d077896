package translate

import "rxprim/internal/prim"

// Unbounded is the max of an open-ended quantifier.
const Unbounded = -1

// Repeat expands node{min,max} into the primitive algebra. An unbounded
// repeat is a star followed by min copies; a bounded one is min copies
// followed by max-min optional copies. Copies nest to the right:
// x{1,3} = Seq(x, Seq(x?, x?)).
func Repeat(node prim.Node, min, max int) prim.Node {
	var parts []prim.Node
	if max == Unbounded {
		parts = append(parts, prim.Star{Inner: node})
	}
	for i := 0; i < min; i++ {
		parts = append(parts, node)
	}
	if max != Unbounded {
		for i := min; i < max; i++ {
			parts = append(parts, prim.Maybe(node))
		}
	}
	return chain(parts)
}

// RepeatGroup expands a quantified capturing group. Only the last iteration
// captures: (a){2,3} is a{1,2}(a), (a)* is |a*(a). Earlier iterations reuse
// the group's inner body so no extra ids are issued.
func RepeatGroup(group prim.Group, min, max int) prim.Node {
	base := group.Inner
	switch {
	case max == Unbounded && min == 0:
		return prim.Maybe(prim.Concat(Repeat(base, 0, Unbounded), group))
	case max == Unbounded:
		return prim.Concat(Repeat(base, min-1, Unbounded), group)
	case max == 0:
		return prim.Empty{}
	case min == 0:
		return prim.Maybe(prim.Concat(Repeat(base, 0, max-1), group))
	default:
		return prim.Concat(Repeat(base, min-1, max-1), group)
	}
}

// chain nests parts to the right, dropping Empty copies.
func chain(parts []prim.Node) prim.Node {
	kept := parts[:0:0]
	for _, p := range parts {
		if _, ok := p.(prim.Empty); !ok {
			kept = append(kept, p)
		}
	}
	return nest(kept)
}

func nest(parts []prim.Node) prim.Node {
	switch len(parts) {
	case 0:
		return prim.Empty{}
	case 1:
		return parts[0]
	}
	return prim.Seq{Left: parts[0], Right: nest(parts[1:])}
}
