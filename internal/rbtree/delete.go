package rbtree

import "fmt"

// Remove deletes key from the tree while maintaining Red-Black Tree
// properties. It reports false, leaving the tree untouched, if key is absent.
//
// A node with two children keeps its position and color and takes the key of
// its in-order successor; the successor node is the one spliced out.
func (t *Tree) Remove(key int) bool {
	z := t.findNode(key)
	if z == t.nilNode {
		t.stats.RemoveMisses++
		return false
	}

	y := z
	if z.left != t.nilNode && z.right != t.nilNode {
		y = t.minimum(z.right)
		z.key = y.key
	}

	// y has at most one real child; x takes its place, sentinel included.
	x := y.left
	if x == t.nilNode {
		x = y.right
	}
	removedColor := y.color
	t.transplant(y, x)

	y.left, y.right, y.parent = nil, nil, nil
	t.size--
	t.stats.Removes++

	if removedColor == Black {
		t.fixDelete(x)
	}
	return true
}

// transplant puts v where u hangs. v's parent link is set even when v is the
// sentinel so that fixDelete can climb from it.
func (t *Tree) transplant(u, v *node) {
	if u.parent == t.nilNode {
		t.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}
	v.parent = u.parent
}

// DeleteCase is the structural configuration seen by one step of the
// deletion fixup, named from the point of view of the doubly-black node x.
type DeleteCase int

const (
	// SiblingRed: rotate the parent so x gets a black sibling.
	SiblingRed DeleteCase = iota
	// NephewsBlack: recolor the sibling red and push the deficit up.
	NephewsBlack
	// NearNephewRed: rotate the sibling so the red nephew is on the far side.
	NearNephewRed
	// FarNephewRed: recolor and rotate the parent; terminal.
	FarNephewRed

	numDeleteCases
)

func (c DeleteCase) String() string {
	switch c {
	case SiblingRed:
		return "sibling_red"
	case NephewsBlack:
		return "nephews_black"
	case NearNephewRed:
		return "near_nephew_red"
	case FarNephewRed:
		return "far_nephew_red"
	}
	return fmt.Sprintf("DeleteCase(%d)", int(c))
}

// classifyDelete inspects black, non-root x. side is the slot x occupies;
// the sibling sits opposite, its near child on side and far child opposite.
func (t *Tree) classifyDelete(x *node) (DeleteCase, dir) {
	side := x.side()
	sibling := x.parent.child(side.opposite())
	near := sibling.child(side)
	far := sibling.child(side.opposite())

	switch {
	case sibling.color == Red:
		return SiblingRed, side
	case near.color == Black && far.color == Black:
		return NephewsBlack, side
	case far.color == Black:
		return NearNephewRed, side
	default:
		return FarNephewRed, side
	}
}

func (t *Tree) fixDelete(x *node) {
	for x != t.root && x.color == Black {
		c, side := t.classifyDelete(x)
		t.stats.DeleteFixups[c]++
		t.log.Debug("delete fixup", "parent", x.parent.key, "case", c, "side", side)

		parent := x.parent
		sibling := parent.child(side.opposite())

		switch c {
		case SiblingRed:
			sibling.color = Black
			parent.color = Red
			t.rotate(parent, side)
		case NephewsBlack:
			sibling.color = Red
			x = parent
		case NearNephewRed:
			sibling.child(side).color = Black
			sibling.color = Red
			t.rotate(sibling, side.opposite())
		case FarNephewRed:
			sibling.color = parent.color
			parent.color = Black
			sibling.child(side.opposite()).color = Black
			t.rotate(parent, side)
			x = t.root
		}
	}
	x.color = Black
}
