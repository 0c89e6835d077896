package charclass

import (
	"strings"
	"sync"

	"rxprim/internal/prim"
)

// Resolver resolves class fragments through an Oracle. Compiled predicates
// are cached per fragment; a Resolver is safe for concurrent use.
type Resolver struct {
	oracle Oracle

	mu    sync.Mutex
	cache map[string]Predicate
}

func NewResolver(o Oracle) *Resolver {
	if o == nil {
		o = Regexp2{}
	}
	return &Resolver{oracle: o, cache: map[string]Predicate{}}
}

// Resolve evaluates fragment for every ordinal and picks the smaller of the
// two representations: Set(matches) or NegSet(non-matches). Ties give Set.
func (r *Resolver) Resolve(fragment string) (prim.Node, error) {
	pred, err := r.compile(fragment)
	if err != nil {
		return nil, err
	}
	var in, out []int
	for c := 0; c < prim.Alphabet; c++ {
		if pred(rune(c)) {
			in = append(in, c)
		} else {
			out = append(out, c)
		}
	}
	if len(in) > prim.Alphabet-len(in) {
		return prim.NegSet{Codes: out}, nil
	}
	return prim.Set{Codes: in}, nil
}

// Class resolves a bracket expression given its members, e.g. ["a-c", "x"].
func (r *Resolver) Class(negated bool, members []string) (prim.Node, error) {
	var b strings.Builder
	b.WriteByte('[')
	if negated {
		b.WriteByte('^')
	}
	for _, m := range members {
		b.WriteString(m)
	}
	b.WriteByte(']')
	return r.Resolve(b.String())
}

// Literal lowers text into a sequence of single-character sets, one per
// character.
func (r *Resolver) Literal(text string) (prim.Node, error) {
	var parts []prim.Node
	for _, ch := range text {
		n, err := r.Resolve(r.oracle.Quote(string(ch)))
		if err != nil {
			return nil, err
		}
		parts = append(parts, n)
	}
	return prim.Sequence(parts...), nil
}

func (r *Resolver) compile(fragment string) (Predicate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.cache[fragment]; ok {
		return p, nil
	}
	p, err := r.oracle.Compile(fragment)
	if err != nil {
		return nil, err
	}
	r.cache[fragment] = p
	return p, nil
}
