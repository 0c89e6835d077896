package automaton

// Complement flips acceptance. The DFA is complete, so this is exact.
func Complement(d *DFA) *DFA {
	newStates := make([]*dfaState, len(d.States))
	for i, s := range d.States {
		newStates[i] = &dfaState{id: i, accept: !s.accept}
	}
	for i, s := range d.States {
		for c, t := range s.trans {
			newStates[i].trans[c] = newStates[t.id]
		}
	}
	return &DFA{Start: newStates[d.Start.id], States: newStates}
}

// Product runs a and b in lock step; a pair state accepts when op does.
func Product(a, b *DFA, op func(bool, bool) bool) *DFA {
	type pair struct{ i, j *dfaState }
	mp := map[pair]*dfaState{}
	startPair := pair{a.Start, b.Start}
	start := &dfaState{id: 0, accept: op(a.Start.accept, b.Start.accept)}
	mp[startPair] = start
	queue := []pair{startPair}
	states := []*dfaState{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		cur := mp[p]
		for c := range cur.trans {
			np := pair{p.i.trans[c], p.j.trans[c]}
			ns, exists := mp[np]
			if !exists {
				ns = &dfaState{id: len(states), accept: op(np.i.accept, np.j.accept)}
				mp[np] = ns
				states = append(states, ns)
				queue = append(queue, np)
			}
			cur.trans[c] = ns
		}
	}
	return &DFA{Start: start, States: states}
}

func IntersectDFA(a, b *DFA) *DFA { return Product(a, b, func(x, y bool) bool { return x && y }) }

func UnionDFA(a, b *DFA) *DFA { return Product(a, b, func(x, y bool) bool { return x || y }) }

// Equivalent reports whether a and b accept the same strings.
func Equivalent(a, b *DFA) bool {
	diff := Product(a, b, func(x, y bool) bool { return x != y })
	for _, s := range diff.States {
		if s.accept {
			return false
		}
	}
	return true
}
