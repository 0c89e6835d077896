// Package render writes primitive trees for people and tools.
package render

import (
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"rxprim/internal/prim"
)

type treeNode struct {
	Kind   string    `yaml:"kind"`
	ID     string    `yaml:"id,omitempty"`
	Anchor string    `yaml:"anchor,omitempty"`
	Codes  []int     `yaml:"codes,omitempty,flow"`
	Left   *treeNode `yaml:"left,omitempty"`
	Right  *treeNode `yaml:"right,omitempty"`
	Inner  *treeNode `yaml:"inner,omitempty"`
}

func tree(n prim.Node) *treeNode {
	switch t := n.(type) {
	case prim.Empty:
		return &treeNode{Kind: "empty"}
	case prim.Set:
		return &treeNode{Kind: "set", Codes: t.Codes}
	case prim.NegSet:
		return &treeNode{Kind: "neg_set", Codes: t.Codes}
	case prim.Seq:
		return &treeNode{Kind: "seq", Left: tree(t.Left), Right: tree(t.Right)}
	case prim.Alt:
		return &treeNode{Kind: "alt", Left: tree(t.Left), Right: tree(t.Right)}
	case prim.Star:
		return &treeNode{Kind: "star", Inner: tree(t.Inner)}
	case prim.Group:
		return &treeNode{Kind: "group", ID: t.ID, Inner: tree(t.Inner)}
	case prim.Backref:
		return &treeNode{Kind: "backref", ID: t.ID}
	case prim.Anchor:
		out := &treeNode{Kind: "anchor", Anchor: t.Kind.String()}
		if t.Inner != nil {
			out.Inner = tree(t.Inner)
		}
		return out
	}
	return nil
}

// YAML encodes n as nested mappings keyed by kind.
func YAML(w io.Writer, n prim.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree(n)); err != nil {
		return err
	}
	return enc.Close()
}

// Pretty is the S-expression form of n with one child per line.
func Pretty(n prim.Node) string {
	var b strings.Builder
	pretty(&b, n, 0)
	b.WriteByte('\n')
	return b.String()
}

func pretty(b *strings.Builder, n prim.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	open := func(head string, children ...prim.Node) {
		b.WriteString(indent + "(" + head)
		for _, c := range children {
			b.WriteByte('\n')
			pretty(b, c, depth+1)
		}
		b.WriteByte(')')
	}
	switch t := n.(type) {
	case prim.Seq:
		open("seq", t.Left, t.Right)
	case prim.Alt:
		open("alt", t.Left, t.Right)
	case prim.Star:
		open("star", t.Inner)
	case prim.Group:
		open(`group "`+t.ID+`"`, t.Inner)
	case prim.Anchor:
		if t.Inner != nil {
			open("anchor "+t.Kind.String(), t.Inner)
			return
		}
		b.WriteString(indent + t.String())
	default:
		b.WriteString(indent + n.String())
	}
}
