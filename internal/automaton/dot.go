package automaton

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"rxprim/internal/prim"
)

// ExportDOT writes a Graphviz description of an *NFA or *DFA to w. Sink
// states of a DFA are left out unless the sink is the start state. NFA
// states carry their capture group markers as xlabels.
func ExportDOT(w io.Writer, g any) error {
	var b strings.Builder
	b.WriteString("digraph G {\n    rankdir=LR;\n")

	switch t := g.(type) {
	case *DFA:
		for _, s := range t.States {
			if s.isSink() && s != t.Start {
				continue
			}
			fmt.Fprintf(&b, "    q%d [shape=%s];\n", s.id, shape(s.accept))
			byTarget := map[*dfaState]*[prim.Alphabet]bool{}
			var targets []*dfaState
			for c, to := range s.trans {
				if to.isSink() {
					continue
				}
				if byTarget[to] == nil {
					byTarget[to] = &[prim.Alphabet]bool{}
					targets = append(targets, to)
				}
				byTarget[to][c] = true
			}
			sort.Slice(targets, func(i, j int) bool { return targets[i].id < targets[j].id })
			for _, to := range targets {
				fmt.Fprintf(&b, "    q%d -> q%d [label=%q];\n", s.id, to.id, classLabel(byTarget[to]))
			}
		}
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> q%d;\n", t.Start.id)

	case *NFA:
		visited := map[*nfaState]bool{}
		var dfs func(*nfaState)
		dfs = func(s *nfaState) {
			if visited[s] {
				return
			}
			visited[s] = true
			if m := groupMarkers(s); m != "" {
				fmt.Fprintf(&b, "    n%d [shape=%s, xlabel=%q];\n", s.id, shape(s.accept), m)
			} else {
				fmt.Fprintf(&b, "    n%d [shape=%s];\n", s.id, shape(s.accept))
			}
			for _, e := range s.edges {
				label := "ε"
				if e.class != nil {
					label = classLabel(e.class)
				}
				fmt.Fprintf(&b, "    n%d -> n%d [label=%q];\n", s.id, e.to.id, label)
				dfs(e.to)
			}
		}
		dfs(t.Start)
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> n%d;\n", t.Start.id)

	default:
		return fmt.Errorf("export dot: unsupported graph %T", g)
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// groupMarkers renders "(g-1" for groups opening at s and "g-1)" for groups
// closing there.
func groupMarkers(s *nfaState) string {
	var marks []string
	for _, id := range s.openGroups {
		marks = append(marks, "("+id)
	}
	for _, id := range s.closeGroups {
		marks = append(marks, id+")")
	}
	return strings.Join(marks, " ")
}

func shape(accept bool) string {
	if accept {
		return "doublecircle"
	}
	return "circle"
}

// classLabel renders a membership table as ranges, e.g. "a-c_", or "^a-c"
// when the complement is shorter.
func classLabel(m *[prim.Alphabet]bool) string {
	var in, out [prim.Alphabet]bool
	n := 0
	for c, ok := range m {
		in[c] = ok
		out[c] = !ok
		if ok {
			n++
		}
	}
	if n > prim.Alphabet-n {
		return "^" + ranges(&out)
	}
	return ranges(&in)
}

func ranges(m *[prim.Alphabet]bool) string {
	var b strings.Builder
	for lo := 0; lo < prim.Alphabet; lo++ {
		if !m[lo] {
			continue
		}
		hi := lo
		for hi+1 < prim.Alphabet && m[hi+1] {
			hi++
		}
		b.WriteString(printable(lo))
		if hi > lo+1 {
			b.WriteByte('-')
		}
		if hi > lo {
			b.WriteString(printable(hi))
		}
		lo = hi
	}
	return b.String()
}

func printable(c int) string {
	if c > ' ' && c < 0x7f {
		return string(rune(c))
	}
	return fmt.Sprintf("\\x%02x", c)
}
