package main

import (
	"fmt"

	"rxprim/internal/prim"
	"rxprim/internal/syntax"
	"rxprim/internal/translate"
)

func translatePattern(w *translate.Walker, pattern, context string) (prim.Node, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	out, err := w.Parse(tree, context)
	if err != nil {
		return nil, fmt.Errorf("translate %q: %w", pattern, err)
	}
	return out, nil
}
