package bst

import "errors"

// ErrDuplicateValue is returned by [Tree.Insert] when the value is already
// stored. The tree is left unchanged.
var ErrDuplicateValue = errors.New("duplicate value")

// Node holds one stored value and owns its children.
type Node struct {
	value int
	left  *Node
	right *Node
}

// Value returns the node's key.
func (n *Node) Value() int { return n.value }

// Left returns the left child, or nil.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child, or nil.
func (n *Node) Right() *Node { return n.right }

// Tree is an unbalanced binary search tree of unique integers.
// The zero value is an empty tree ready to use.
type Tree struct {
	root *Node
	size int
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// FromValues builds a tree by inserting values in order.
// Duplicates are skipped; the number skipped is returned alongside the tree.
func FromValues(values ...int) (*Tree, int) {
	t := New()
	skipped := 0
	for _, v := range values {
		if err := t.Insert(v); err != nil {
			skipped++
		}
	}
	return t, skipped
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node { return t.root }

// Len returns the number of stored values.
func (t *Tree) Len() int { return t.size }

// Empty reports whether the tree holds no values.
func (t *Tree) Empty() bool { return t.root == nil }

// Insert adds v to the tree. If v is already present it returns
// ErrDuplicateValue and leaves the tree untouched.
func (t *Tree) Insert(v int) error {
	root, err := insert(t.root, v)
	if err != nil {
		return err
	}
	t.root = root
	t.size++
	return nil
}

func insert(n *Node, v int) (*Node, error) {
	if n == nil {
		return &Node{value: v}, nil
	}
	var err error
	switch {
	case v < n.value:
		n.left, err = insert(n.left, v)
	case v > n.value:
		n.right, err = insert(n.right, v)
	default:
		return n, ErrDuplicateValue
	}
	return n, err
}

// Search returns the node holding v, or nil if v is not stored.
func (t *Tree) Search(v int) *Node {
	n := t.root
	for n != nil {
		switch {
		case v < n.value:
			n = n.left
		case v > n.value:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// Contains reports whether v is stored.
func (t *Tree) Contains(v int) bool {
	return t.Search(v) != nil
}

// Delete removes v from the tree. It reports whether a value was removed;
// deleting an absent value is a no-op.
func (t *Tree) Delete(v int) bool {
	var removed bool
	t.root = remove(t.root, v, &removed)
	if removed {
		t.size--
	}
	return removed
}

func remove(n *Node, v int, removed *bool) *Node {
	if n == nil {
		return nil
	}
	switch {
	case v < n.value:
		n.left = remove(n.left, v, removed)
	case v > n.value:
		n.right = remove(n.right, v, removed)
	default:
		if n.left == nil {
			*removed = true
			return n.right
		}
		if n.right == nil {
			*removed = true
			return n.left
		}
		// Two children: take the in-order successor's value, then splice the
		// successor out of the right subtree. It has no left child, so the
		// recursion ends in one of the cases above.
		n.value = minNode(n.right).value
		n.right = remove(n.right, n.value, removed)
	}
	return n
}

func minNode(n *Node) *Node {
	for n.left != nil {
		n = n.left
	}
	return n
}

func maxNode(n *Node) *Node {
	for n.right != nil {
		n = n.right
	}
	return n
}

// Min returns the smallest stored value. ok is false for an empty tree.
func (t *Tree) Min() (v int, ok bool) {
	if t.root == nil {
		return 0, false
	}
	return minNode(t.root).value, true
}

// Max returns the largest stored value. ok is false for an empty tree.
func (t *Tree) Max() (v int, ok bool) {
	if t.root == nil {
		return 0, false
	}
	return maxNode(t.root).value, true
}

// Height returns the number of levels in the tree: 0 when empty, 1 for a
// lone root.
func (t *Tree) Height() int {
	return height(t.root)
}

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}

// Values returns the stored values in ascending order.
func (t *Tree) Values() []int {
	return t.InOrder()
}

// Clear removes every value.
func (t *Tree) Clear() {
	t.root = nil
	t.size = 0
}
