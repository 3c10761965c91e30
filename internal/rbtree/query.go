package rbtree

// Min returns the smallest key, or false if the tree is empty.
func (t *Tree) Min() (int, bool) {
	n := t.minimum(t.root)
	return n.key, n != t.nilNode
}

// Max returns the largest key, or false if the tree is empty.
func (t *Tree) Max() (int, bool) {
	n := t.maximum(t.root)
	return n.key, n != t.nilNode
}

// Successor returns the smallest key strictly greater than key. key itself
// need not be present.
func (t *Tree) Successor(key int) (int, bool) {
	n := t.root
	succ := t.nilNode
	for n != t.nilNode {
		if key < n.key {
			succ = n
			n = n.left
		} else {
			n = n.right
		}
	}
	return succ.key, succ != t.nilNode
}

// Predecessor returns the largest key strictly less than key. key itself
// need not be present.
func (t *Tree) Predecessor(key int) (int, bool) {
	n := t.root
	pred := t.nilNode
	for n != t.nilNode {
		if key > n.key {
			pred = n
			n = n.right
		} else {
			n = n.left
		}
	}
	return pred.key, pred != t.nilNode
}

func (t *Tree) next(n *node) *node {
	if n.right != t.nilNode {
		return t.minimum(n.right)
	}
	p := n.parent
	for p != t.nilNode && n == p.right {
		n = p
		p = p.parent
	}
	return p
}

func (t *Tree) prev(n *node) *node {
	if n.left != t.nilNode {
		return t.maximum(n.left)
	}
	p := n.parent
	for p != t.nilNode && n == p.left {
		n = p
		p = p.parent
	}
	return p
}

// Height returns the number of nodes on the longest root-to-leaf path.
// An empty tree has height 0.
func (t *Tree) Height() int {
	return t.height(t.root)
}

func (t *Tree) height(n *node) int {
	if n == t.nilNode {
		return 0
	}
	return 1 + max(t.height(n.left), t.height(n.right))
}

// BlackHeight returns the number of black nodes on any path from the root
// down to the sentinel, counting the sentinel and not the root itself.
// An empty tree has black-height 0.
func (t *Tree) BlackHeight() int {
	if t.root == t.nilNode {
		return 0
	}
	bh := 0
	for n := t.root.left; ; n = n.left {
		if n.color == Black {
			bh++
		}
		if n == t.nilNode {
			return bh
		}
	}
}
