package rbtree

import (
	"errors"
	"fmt"
	"math"
)

// Invariant violations reported by Verify.
var (
	ErrOrder         = errors.New("keys out of order")
	ErrRootColor     = errors.New("root is not black")
	ErrSentinelColor = errors.New("sentinel is not black")
	ErrRedRed        = errors.New("consecutive red spotted")
	ErrBlackHeight   = errors.New("unbalanced blacks")
	ErrParentLink    = errors.New("broken parent link")
	ErrHeight        = errors.New("height exceeds 2*log2(n+1)")
	ErrSize          = errors.New("node count mismatch")
)

// maxHeight is the Red-Black bound on the height of a tree with n keys.
func maxHeight(n int) float64 {
	return 2 * math.Log2(float64(n)+1)
}

// Verify validates Red-Black Tree invariants:
// 1. Keys are in binary-search-tree order
// 2. Root and sentinel are black
// 3. Red nodes must have black children
// 4. All paths from node to leaves have same black node count
// It also checks parent links, the cached size and the height bound.
// Returns nil if all properties are satisfied.
func (t *Tree) Verify() error {
	if t.nilNode.color != Black {
		return ErrSentinelColor
	}
	if t.root == t.nilNode {
		if t.size != 0 {
			return fmt.Errorf("%w: empty tree, size %d", ErrSize, t.size)
		}
		return nil
	}
	if t.root.color != Black {
		return fmt.Errorf("%w: root %d", ErrRootColor, t.root.key)
	}
	if t.root.parent != t.nilNode {
		return fmt.Errorf("%w: root %d has a parent", ErrParentLink, t.root.key)
	}

	count := 0
	if _, err := t.checkSubtree(t.root, nil, nil, &count); err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("%w: counted %d, size %d", ErrSize, count, t.size)
	}

	if h := t.Height(); float64(h) > maxHeight(count) {
		return fmt.Errorf("%w: height %d with %d keys", ErrHeight, h, count)
	}
	return nil
}

// checkSubtree returns the black-height of n counting the sentinel. lo and
// hi, when set, are exclusive bounds inherited from ancestors.
func (t *Tree) checkSubtree(n *node, lo, hi *int, count *int) (int, error) {
	if n == t.nilNode {
		return 1, nil
	}
	*count++

	if (lo != nil && n.key <= *lo) || (hi != nil && n.key >= *hi) {
		return 0, fmt.Errorf("%w: key %d", ErrOrder, n.key)
	}

	for _, d := range []dir{left, right} {
		c := n.child(d)
		if c != t.nilNode && c.parent != n {
			return 0, fmt.Errorf("%w: %s child %d of %d", ErrParentLink, d, c.key, n.key)
		}
		if n.color == Red && c.color == Red {
			return 0, fmt.Errorf("%w: %d under %d", ErrRedRed, c.key, n.key)
		}
	}

	leftCount, err := t.checkSubtree(n.left, lo, &n.key, count)
	if err != nil {
		return 0, err
	}
	rightCount, err := t.checkSubtree(n.right, &n.key, hi, count)
	if err != nil {
		return 0, err
	}

	if leftCount != rightCount {
		return 0, fmt.Errorf("%w: {%d,%d} at %d", ErrBlackHeight, leftCount, rightCount, n.key)
	}

	if n.color == Black {
		leftCount++
	}
	return leftCount, nil
}
