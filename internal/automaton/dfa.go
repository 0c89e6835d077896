package automaton

import (
	"fmt"
	"sort"

	"rxprim/internal/prim"
)

type dfaState struct {
	id     int
	accept bool
	trans  [prim.Alphabet]*dfaState
}

// DFA is complete: every state has a transition on every ordinal, with
// rejected input running into a non-accepting sink.
type DFA struct {
	Start  *dfaState
	States []*dfaState
}

func epsilonClosure(set map[*nfaState]struct{}) map[*nfaState]struct{} {
	stack := make([]*nfaState, 0, len(set))
	for s := range set {
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		elem := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range elem.edges {
			if e.class != nil {
				continue
			}
			if _, ok := set[e.to]; !ok {
				set[e.to] = struct{}{}
				stack = append(stack, e.to)
			}
		}
	}
	return set
}

func moveNFA(set map[*nfaState]struct{}, c int) map[*nfaState]struct{} {
	res := make(map[*nfaState]struct{})
	for s := range set {
		for _, e := range s.edges {
			if e.class != nil && e.class[c] {
				res[e.to] = struct{}{}
			}
		}
	}
	return res
}

func setKey(set map[*nfaState]struct{}) string {
	ids := make([]int, 0, len(set))
	for s := range set {
		ids = append(ids, s.id)
	}
	sort.Ints(ids)
	return fmt.Sprint(ids)
}

func hasAccept(set map[*nfaState]struct{}) bool {
	for s := range set {
		if s.accept {
			return true
		}
	}
	return false
}

// Determinize runs the subset construction. The empty NFA state set becomes
// the sink.
func Determinize(n *NFA) *DFA {
	initSet := epsilonClosure(map[*nfaState]struct{}{n.Start: {}})
	start := &dfaState{id: 0, accept: hasAccept(initSet)}
	mp := map[string]*dfaState{setKey(initSet): start}
	states := []*dfaState{start}
	queue := []map[*nfaState]struct{}{initSet}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		from := mp[setKey(cur)]
		for c := 0; c < prim.Alphabet; c++ {
			clo := epsilonClosure(moveNFA(cur, c))
			k := setKey(clo)
			to, ok := mp[k]
			if !ok {
				to = &dfaState{id: len(states), accept: hasAccept(clo)}
				mp[k] = to
				states = append(states, to)
				queue = append(queue, clo)
			}
			from.trans[c] = to
		}
	}
	return &DFA{Start: start, States: states}
}

// Compile builds the minimal DFA of a primitive tree.
func Compile(n prim.Node) (*DFA, error) {
	nfa, err := Build(n)
	if err != nil {
		return nil, err
	}
	return Minimize(Determinize(nfa)), nil
}

// Accepts reports whether the whole of s is in the language. Bytes outside
// the alphabet are rejected.
func (d *DFA) Accepts(s string) bool {
	cur := d.Start
	for i := 0; i < len(s); i++ {
		if s[i] >= prim.Alphabet {
			return false
		}
		cur = cur.trans[s[i]]
	}
	return cur.accept
}

// isSink reports whether s is non-accepting and loops to itself on every
// ordinal.
func (s *dfaState) isSink() bool {
	if s.accept {
		return false
	}
	for _, t := range s.trans {
		if t != s {
			return false
		}
	}
	return true
}
