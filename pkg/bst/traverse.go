package bst

import (
	"fmt"
	"strings"
)

// Traversal names a visiting order.
type Traversal string

// Supported traversals.
const (
	InOrder      Traversal = "inorder"
	PreOrder     Traversal = "preorder"
	PostOrder    Traversal = "postorder"
	BreadthFirst Traversal = "bfs"
	DepthFirst   Traversal = "dfs"
)

// Traversals lists every supported traversal in display order.
var Traversals = []Traversal{InOrder, PreOrder, PostOrder, BreadthFirst, DepthFirst}

// ParseTraversal resolves a traversal name. Matching is case-insensitive and
// accepts a few common aliases ("in-order", "level", ...).
func ParseTraversal(s string) (Traversal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inorder", "in-order", "in":
		return InOrder, nil
	case "preorder", "pre-order", "pre":
		return PreOrder, nil
	case "postorder", "post-order", "post":
		return PostOrder, nil
	case "bfs", "breadth-first", "breadthfirst", "level":
		return BreadthFirst, nil
	case "dfs", "depth-first", "depthfirst":
		return DepthFirst, nil
	}
	return "", fmt.Errorf("unknown traversal %q", s)
}

// Label returns the upper-case name used in operation logs.
func (k Traversal) Label() string {
	return strings.ToUpper(string(k))
}

// Traverse runs the traversal named by k. Unknown kinds return nil.
func (t *Tree) Traverse(k Traversal) []int {
	switch k {
	case InOrder:
		return t.InOrder()
	case PreOrder:
		return t.PreOrder()
	case PostOrder:
		return t.PostOrder()
	case BreadthFirst:
		return t.BreadthFirst()
	case DepthFirst:
		return t.DepthFirst()
	}
	return nil
}

// InOrder returns left subtree, node, right subtree. The result is always
// sorted ascending.
func (t *Tree) InOrder() []int {
	out := make([]int, 0, t.size)
	return inOrder(t.root, out)
}

func inOrder(n *Node, out []int) []int {
	if n == nil {
		return out
	}
	out = inOrder(n.left, out)
	out = append(out, n.value)
	return inOrder(n.right, out)
}

// PreOrder returns node, left subtree, right subtree.
func (t *Tree) PreOrder() []int {
	out := make([]int, 0, t.size)
	return preOrder(t.root, out)
}

func preOrder(n *Node, out []int) []int {
	if n == nil {
		return out
	}
	out = append(out, n.value)
	out = preOrder(n.left, out)
	return preOrder(n.right, out)
}

// PostOrder returns left subtree, right subtree, node.
func (t *Tree) PostOrder() []int {
	out := make([]int, 0, t.size)
	return postOrder(t.root, out)
}

func postOrder(n *Node, out []int) []int {
	if n == nil {
		return out
	}
	out = postOrder(n.left, out)
	out = postOrder(n.right, out)
	return append(out, n.value)
}

// BreadthFirst returns the values level by level, left to right.
func (t *Tree) BreadthFirst() []int {
	out := make([]int, 0, t.size)
	if t.root == nil {
		return out
	}
	queue := []*Node{t.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		out = append(out, n.value)
		if n.left != nil {
			queue = append(queue, n.left)
		}
		if n.right != nil {
			queue = append(queue, n.right)
		}
	}
	return out
}

// DepthFirst walks the tree with an explicit stack. The right child is
// pushed first so the left one is visited first; the output matches
// PreOrder.
func (t *Tree) DepthFirst() []int {
	out := make([]int, 0, t.size)
	if t.root == nil {
		return out
	}
	stack := []*Node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n.value)
		if n.right != nil {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
	return out
}
