// Package automaton builds finite automata from primitive trees: Thompson
// NFA, subset-construction DFA over the 128-ordinal alphabet, minimisation,
// language equivalence and Graphviz export.
package automaton

import (
	"errors"
	"fmt"

	"rxprim/internal/prim"
)

// ErrNotRegular is returned for nodes no finite automaton can express:
// backreferences and anchors.
var ErrNotRegular = errors.New("not a regular construct")

type nfaState struct {
	id     int
	edges  []*nfaEdge
	accept bool
	// group markers
	openGroups  []string
	closeGroups []string
}

type nfaEdge struct {
	class *[prim.Alphabet]bool // nil = ε
	to    *nfaState
}

type nfaFrag struct {
	start *nfaState
	outs  []*nfaState // states whose ε edge still needs patching
}

type NFA struct {
	Start  *nfaState
	Accept *nfaState
	size   int
}

// Size is the number of states.
func (n *NFA) Size() int { return n.size }

type builder struct{ next int }

func (b *builder) newState() *nfaState {
	s := &nfaState{id: b.next}
	b.next++
	return s
}

func patchOuts(outs []*nfaState, to *nfaState) {
	for _, s := range outs {
		s.edges = append(s.edges, &nfaEdge{to: to})
	}
}

// Build runs Thompson's construction over n. Groups are transparent apart
// from their open/close markers.
func Build(n prim.Node) (*NFA, error) {
	b := &builder{}
	frag, err := b.build(n)
	if err != nil {
		return nil, err
	}
	accept := b.newState()
	accept.accept = true
	patchOuts(frag.outs, accept)
	return &NFA{Start: frag.start, Accept: accept, size: b.next}, nil
}

func (b *builder) build(node prim.Node) (nfaFrag, error) {
	switch n := node.(type) {
	case prim.Empty:
		s := b.newState()
		return nfaFrag{start: s, outs: []*nfaState{s}}, nil
	case prim.Set, prim.NegSet:
		members, _ := prim.Members(n)
		s1 := b.newState()
		s2 := b.newState()
		s1.edges = append(s1.edges, &nfaEdge{class: &members, to: s2})
		return nfaFrag{start: s1, outs: []*nfaState{s2}}, nil
	case prim.Seq:
		f1, err := b.build(n.Left)
		if err != nil {
			return nfaFrag{}, err
		}
		f2, err := b.build(n.Right)
		if err != nil {
			return nfaFrag{}, err
		}
		patchOuts(f1.outs, f2.start)
		return nfaFrag{start: f1.start, outs: f2.outs}, nil
	case prim.Alt:
		f1, err := b.build(n.Left)
		if err != nil {
			return nfaFrag{}, err
		}
		f2, err := b.build(n.Right)
		if err != nil {
			return nfaFrag{}, err
		}
		s := b.newState()
		s.edges = append(s.edges, &nfaEdge{to: f1.start}, &nfaEdge{to: f2.start})
		return nfaFrag{start: s, outs: append(f1.outs, f2.outs...)}, nil
	case prim.Star:
		f, err := b.build(n.Inner)
		if err != nil {
			return nfaFrag{}, err
		}
		s := b.newState()
		patchOuts(f.outs, s)
		s.edges = append(s.edges, &nfaEdge{to: f.start})
		return nfaFrag{start: s, outs: []*nfaState{s}}, nil
	case prim.Group:
		f, err := b.build(n.Inner)
		if err != nil {
			return nfaFrag{}, err
		}
		f.start.openGroups = append(f.start.openGroups, n.ID)
		for _, o := range f.outs {
			o.closeGroups = append(o.closeGroups, n.ID)
		}
		return f, nil
	case prim.Backref, prim.Anchor:
		return nfaFrag{}, fmt.Errorf("%w: %s", ErrNotRegular, n)
	}
	return nfaFrag{}, fmt.Errorf("%w: unknown node %T", ErrNotRegular, node)
}
