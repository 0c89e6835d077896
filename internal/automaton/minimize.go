package automaton

import (
	"fmt"

	"rxprim/internal/prim"
)

// Minimize merges indistinguishable states by partition refinement. The
// start state of the result has id 0.
func Minimize(d *DFA) *DFA {
	if d == nil || d.Start == nil {
		return d
	}

	// initial partition: accepting / non-accepting
	block := make(map[*dfaState]int, len(d.States))
	for _, s := range d.States {
		if s.accept {
			block[s] = 1
		} else {
			block[s] = 0
		}
	}
	count := countBlocks(block)

	for {
		next := make(map[*dfaState]int, len(d.States))
		sigs := map[string]int{}
		for _, s := range d.States {
			sig := signature(s, block)
			id, ok := sigs[sig]
			if !ok {
				id = len(sigs)
				sigs[sig] = id
			}
			next[s] = id
		}
		block = next
		if len(sigs) == count {
			break
		}
		count = len(sigs)
	}

	// one representative per block, numbered breadth-first from the start
	reps := map[int]*dfaState{}
	var states, pending []*dfaState
	rep := func(old *dfaState) *dfaState {
		b := block[old]
		if r, ok := reps[b]; ok {
			return r
		}
		r := &dfaState{id: len(states), accept: old.accept}
		reps[b] = r
		states = append(states, r)
		pending = append(pending, old)
		return r
	}
	start := rep(d.Start)
	for len(pending) > 0 {
		old := pending[0]
		pending = pending[1:]
		r := reps[block[old]]
		for c, t := range old.trans {
			r.trans[c] = rep(t)
		}
	}
	return &DFA{Start: start, States: states}
}

func countBlocks(block map[*dfaState]int) int {
	seen := map[int]bool{}
	for _, b := range block {
		seen[b] = true
	}
	return len(seen)
}

func signature(s *dfaState, block map[*dfaState]int) string {
	sig := make([]int, 0, prim.Alphabet+1)
	sig = append(sig, block[s])
	for _, t := range s.trans {
		sig = append(sig, block[t])
	}
	return fmt.Sprint(sig)
}
