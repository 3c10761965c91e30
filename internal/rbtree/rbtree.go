// Package rbtree implements an ordered set of int keys kept in a
// Red-Black Tree, with insertion, deletion, search and traversal.
//
// Red-Black Tree is a self-balancing binary search tree that guarantees
// O(log n) time complexity for basic operations: no path from the root to a
// leaf is more than twice as long as any other.
//
// A Tree is not safe for concurrent use.
package rbtree

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrAllocation is returned by Insert when the tree cannot take another
	// node. The tree is left exactly as it was before the call.
	ErrAllocation = errors.New("node allocation failed")
)

// Config holds construction options for a Tree.
type Config struct {
	// Maximum number of keys the tree may hold; 0 means no limit.
	MaxNodes int

	// Logger receives fixup and rotation traces at debug level.
	// Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with no node limit and no logging.
func DefaultConfig() *Config {
	return &Config{
		MaxNodes: 0,
	}
}

// Tree represents a Red-Black Tree instance.
// Use New() to create a new tree instance.
type Tree struct {
	root     *node
	nilNode  *node // Sentinel node
	size     int
	maxNodes int
	log      *slog.Logger
	stats    Stats
}

// New creates and returns a new empty Red-Black Tree.
func New() *Tree {
	return NewWithConfig(nil)
}

// NewWithConfig creates an empty tree using config. A nil config is the same
// as DefaultConfig().
func NewWithConfig(config *Config) *Tree {
	if config == nil {
		config = DefaultConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	nilNode := &node{color: Black}
	return &Tree{
		root:     nilNode,
		nilNode:  nilNode,
		maxNodes: config.MaxNodes,
		log:      logger,
	}
}

// Len returns the number of keys in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Empty reports whether the tree holds no keys.
func (t *Tree) Empty() bool {
	return t.root == t.nilNode
}

// Clear drops every key. Operation counters are kept.
func (t *Tree) Clear() {
	t.root = t.nilNode
	t.nilNode.parent = nil
	t.size = 0
}

// Insert adds key to the tree while maintaining Red-Black Tree properties.
// Inserting a key that is already present is a no-op and returns nil.
// The only error is one wrapping ErrAllocation.
func (t *Tree) Insert(key int) error {
	parent := t.nilNode
	current := t.root
	side := left

	for current != t.nilNode {
		parent = current
		switch {
		case key < current.key:
			current, side = current.left, left
		case key > current.key:
			current, side = current.right, right
		default:
			t.stats.Duplicates++
			return nil
		}
	}

	n, err := t.newNode(key)
	if err != nil {
		return err
	}

	n.parent = parent
	if parent == t.nilNode {
		t.root = n
	} else {
		parent.setChild(side, n)
	}
	t.size++
	t.stats.Inserts++

	if parent == t.nilNode {
		n.color = Black
		return nil
	}
	if parent.color == Black {
		return nil
	}

	t.fixInsert(n)
	return nil
}

// newNode allocates a red node with sentinel links. It fails before anything
// is linked into the tree.
func (t *Tree) newNode(key int) (*node, error) {
	if t.maxNodes > 0 && t.size >= t.maxNodes {
		t.stats.AllocFailures++
		t.log.Warn("node limit reached", "key", key, "limit", t.maxNodes)
		return nil, fmt.Errorf("insert %d: %w: limit of %d nodes reached", key, ErrAllocation, t.maxNodes)
	}

	return &node{
		key:    key,
		color:  Red,
		left:   t.nilNode,
		right:  t.nilNode,
		parent: t.nilNode,
	}, nil
}

// InsertCase is the structural configuration seen by one step of the
// insertion fixup.
type InsertCase int

const (
	// UncleRed: recolor parent and uncle black, grandparent red, move up.
	UncleRed InsertCase = iota
	// InnerGrandchild: zig-zag, rotate the parent to make it an outer case.
	InnerGrandchild
	// OuterGrandchild: recolor and rotate the grandparent; terminal.
	OuterGrandchild

	numInsertCases
)

func (c InsertCase) String() string {
	switch c {
	case UncleRed:
		return "uncle_red"
	case InnerGrandchild:
		return "inner_grandchild"
	case OuterGrandchild:
		return "outer_grandchild"
	}
	return fmt.Sprintf("InsertCase(%d)", int(c))
}

// classifyInsert inspects red k under a red parent. side is the slot the
// parent occupies under the grandparent; the uncle sits opposite.
func (t *Tree) classifyInsert(k *node) (InsertCase, dir) {
	parent := k.parent
	side := parent.side()
	uncle := parent.parent.child(side.opposite())

	switch {
	case uncle.color == Red:
		return UncleRed, side
	case k.side() != side:
		return InnerGrandchild, side
	default:
		return OuterGrandchild, side
	}
}

func (t *Tree) fixInsert(k *node) {
	for k != t.root && k.parent.color == Red {
		c, side := t.classifyInsert(k)
		t.stats.InsertFixups[c]++
		t.log.Debug("insert fixup", "key", k.key, "case", c, "side", side)

		switch c {
		case UncleRed:
			grandparent := k.parent.parent
			k.parent.color = Black
			grandparent.child(side.opposite()).color = Black
			grandparent.color = Red
			k = grandparent
		case InnerGrandchild:
			k = k.parent
			t.rotate(k, side)
		case OuterGrandchild:
			grandparent := k.parent.parent
			k.parent.color = Black
			grandparent.color = Red
			t.rotate(grandparent, side.opposite())
		}
	}
	t.root.color = Black
}

// rotate moves pivot down into slot d of the child coming up from the
// opposite slot. rotate(x, left) is a left rotation.
func (t *Tree) rotate(pivot *node, d dir) {
	up := pivot.child(d.opposite())
	moved := up.child(d)

	pivot.setChild(d.opposite(), moved)
	if moved != t.nilNode {
		moved.parent = pivot
	}

	up.parent = pivot.parent
	if pivot.parent == t.nilNode {
		t.root = up
	} else {
		pivot.parent.setChild(pivot.side(), up)
	}

	up.setChild(d, pivot)
	pivot.parent = up

	if d == left {
		t.stats.LeftRotations++
	} else {
		t.stats.RightRotations++
	}
	t.log.Debug("rotate", "pivot", pivot.key, "dir", d, "promoted", up.key)
}

func (t *Tree) rotateLeft(x *node) {
	/*
		Left rotation around node x:
			    Before:               After:
		          P                    P
		          |                    |
		          x                    y
		         / \                  / \
		        A   y       →        x   C
		           / \              / \
		          B   C            A   B
	*/
	t.rotate(x, left)
}

func (t *Tree) rotateRight(y *node) {
	/*
		Right rotation around node y:
		    Before:               After:
		       P                    P
		       |                    |
		       y                    x
		      / \                  / \
		     x   C       →        A   y
		    / \                      / \
		   A   B                    B   C
	*/
	t.rotate(y, right)
}

// Contains reports whether key is present in the tree.
func (t *Tree) Contains(key int) bool {
	return t.findNode(key) != t.nilNode
}

func (t *Tree) findNode(key int) *node {
	current := t.root
	for current != t.nilNode {
		switch {
		case key < current.key:
			current = current.left
		case key > current.key:
			current = current.right
		default:
			return current
		}
	}
	return t.nilNode
}

// minimum and maximum return the sentinel for an empty subtree.
func (t *Tree) minimum(x *node) *node {
	for x != t.nilNode && x.left != t.nilNode {
		x = x.left
	}
	return x
}

func (t *Tree) maximum(x *node) *node {
	for x != t.nilNode && x.right != t.nilNode {
		x = x.right
	}
	return x
}
