package rbtree

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Order selects a depth-first traversal order.
type Order int

const (
	PreOrder Order = iota
	InOrder
	PostOrder
)

// ErrUnknownOrder is returned by ParseOrder for an unrecognised name.
var ErrUnknownOrder = errors.New("unknown traversal order")

func (o Order) String() string {
	switch o {
	case PreOrder:
		return "pre"
	case InOrder:
		return "in"
	case PostOrder:
		return "post"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder maps "pre", "in" or "post" (or the "preorder" style long
// forms) to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pre", "preorder", "pre-order":
		return PreOrder, nil
	case "in", "inorder", "in-order":
		return InOrder, nil
	case "post", "postorder", "post-order":
		return PostOrder, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// Traverse returns a lazy sequence of keys and their colors in the given
// order. Each range over the sequence starts afresh; the tree must not be
// mutated while a range is in progress.
func (t *Tree) Traverse(order Order) iter.Seq2[int, Color] {
	switch order {
	case PreOrder:
		return t.PreOrder()
	case PostOrder:
		return t.PostOrder()
	default:
		return t.InOrder()
	}
}

// PreOrder yields each node before its subtrees.
func (t *Tree) PreOrder() iter.Seq2[int, Color] {
	return func(yield func(int, Color) bool) {
		if t.root == t.nilNode {
			return
		}

		stack := []*node{t.root}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current.key, current.color) {
				return
			}

			if current.right != t.nilNode {
				stack = append(stack, current.right)
			}
			if current.left != t.nilNode {
				stack = append(stack, current.left)
			}
		}
	}
}

// InOrder yields keys in strictly increasing order.
func (t *Tree) InOrder() iter.Seq2[int, Color] {
	return func(yield func(int, Color) bool) {
		stack := []*node{}
		current := t.root
		for current != t.nilNode || len(stack) > 0 {

			for current != t.nilNode {
				stack = append(stack, current)
				current = current.left
			}

			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current.key, current.color) {
				return
			}

			current = current.right
		}
	}
}

// PostOrder yields each node after both of its subtrees.
func (t *Tree) PostOrder() iter.Seq2[int, Color] {
	return func(yield func(int, Color) bool) {
		stack := []*node{}
		var last *node
		current := t.root
		for current != t.nilNode || len(stack) > 0 {

			for current != t.nilNode {
				stack = append(stack, current)
				current = current.left
			}

			top := stack[len(stack)-1]
			if top.right != t.nilNode && top.right != last {
				current = top.right
				continue
			}

			stack = stack[:len(stack)-1]
			if !yield(top.key, top.color) {
				return
			}
			last = top
		}
	}
}

// Descend yields keys in strictly decreasing order.
func (t *Tree) Descend() iter.Seq2[int, Color] {
	return func(yield func(int, Color) bool) {
		for n := t.maximum(t.root); n != t.nilNode; n = t.prev(n) {
			if !yield(n.key, n.color) {
				return
			}
		}
	}
}

// AscendFrom yields keys greater than or equal to from in increasing order.
func (t *Tree) AscendFrom(from int) iter.Seq2[int, Color] {
	return func(yield func(int, Color) bool) {
		for n := t.ceiling(from); n != t.nilNode; n = t.next(n) {
			if !yield(n.key, n.color) {
				return
			}
		}
	}
}

// ceiling returns the node with the smallest key >= key, or the sentinel.
func (t *Tree) ceiling(key int) *node {
	n := t.root
	found := t.nilNode
	for n != t.nilNode {
		switch {
		case key < n.key:
			found = n
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n
		}
	}
	return found
}

// Keys returns every key in ascending order.
func (t *Tree) Keys() []int {
	keys := make([]int, 0, t.size)
	for key := range t.InOrder() {
		keys = append(keys, key)
	}
	return keys
}
