// Package render formats tree contents for a terminal.
package render

import (
	"fmt"
	"iter"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/AlonMell/ordtree/internal/rbtree"
)

// Empty is printed in place of a tree or traversal with no keys.
const Empty = "tree is empty"

// Entry formats one key with its color tag, e.g. "20(B)".
func Entry(key int, c rbtree.Color) string {
	return fmt.Sprintf("%d(%s)", key, c)
}

// Sequence joins a traversal into a single space separated line.
func Sequence(seq iter.Seq2[int, rbtree.Color]) string {
	var parts []string
	for k, c := range seq {
		parts = append(parts, Entry(k, c))
	}
	if len(parts) == 0 {
		return Empty
	}
	return strings.Join(parts, " ")
}

// Shape draws the tree structure, one node per line, with the left child
// listed before the right. A missing child next to a present one is drawn
// as "nil" so the two sides stay distinguishable.
func Shape(tree *rbtree.Tree) string {
	root, ok := tree.Root()
	if !ok {
		return Empty
	}

	out := treeprint.NewWithRoot(Entry(root.Key(), root.Color()))
	walk(out, root)
	return strings.TrimRight(out.String(), "\n")
}

func walk(branch treeprint.Tree, n rbtree.Node) {
	l, hasLeft := n.Left()
	r, hasRight := n.Right()
	if !hasLeft && !hasRight {
		return
	}

	addChild(branch, "L", l, hasLeft)
	addChild(branch, "R", r, hasRight)
}

func addChild(branch treeprint.Tree, side string, n rbtree.Node, ok bool) {
	if !ok {
		branch.AddNode(side + " nil")
		return
	}

	label := side + " " + Entry(n.Key(), n.Color())
	_, hasLeft := n.Left()
	_, hasRight := n.Right()
	if !hasLeft && !hasRight {
		branch.AddNode(label)
		return
	}
	walk(branch.AddBranch(label), n)
}
