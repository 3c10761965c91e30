package rbtree

// Color is the red/black tag carried by every node. It is exposed for
// inspection only and is not part of a key's logical value.
type Color bool

const (
	Red   Color = true
	Black Color = false
)

func (c Color) String() string {
	if c == Red {
		return "R"
	}
	return "B"
}

// dir names a child slot. Fixups are written once against a dir and its
// opposite, which covers both mirror images of every case.
type dir int

const (
	left dir = iota
	right
)

func (d dir) opposite() dir {
	return 1 - d
}

func (d dir) String() string {
	if d == left {
		return "left"
	}
	return "right"
}

type node struct {
	key                 int
	color               Color
	left, right, parent *node
}

func (n *node) child(d dir) *node {
	if d == left {
		return n.left
	}
	return n.right
}

func (n *node) setChild(d dir, c *node) {
	if d == left {
		n.left = c
	} else {
		n.right = c
	}
}

// side reports which child slot of its parent n occupies. n may be the
// sentinel standing in for a removed leaf, in which case its parent link was
// set by transplant.
func (n *node) side() dir {
	if n == n.parent.left {
		return left
	}
	return right
}

// Node is a read-only handle on a tree position, used for rendering and
// inspection. A Node is invalidated by any mutation of its tree.
type Node struct {
	t *Tree
	n *node
}

// Root returns the root node, or false if the tree is empty.
func (t *Tree) Root() (Node, bool) {
	return t.handle(t.root)
}

func (t *Tree) handle(n *node) (Node, bool) {
	if n == t.nilNode {
		return Node{}, false
	}
	return Node{t: t, n: n}, true
}

func (n Node) Key() int     { return n.n.key }
func (n Node) Color() Color { return n.n.color }

// Left returns the left child, or false if it is the sentinel.
func (n Node) Left() (Node, bool) { return n.t.handle(n.n.left) }

// Right returns the right child, or false if it is the sentinel.
func (n Node) Right() (Node, bool) { return n.t.handle(n.n.right) }
