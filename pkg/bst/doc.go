// Package bst implements the binary search tree behind the visualizer.
//
// # Overview
//
// A [Tree] stores unique integers. Every node's left subtree holds strictly
// smaller values and its right subtree strictly larger ones. There is no
// rebalancing: the shape of the tree is fully determined by the insertion
// and deletion sequence, which is what makes it useful to look at.
//
// # Operations
//
//	t := bst.New()
//	_ = t.Insert(50)          // nil
//	err := t.Insert(50)       // errors.Is(err, bst.ErrDuplicateValue)
//	n := t.Search(50)         // *Node, nil when absent
//	t.Delete(50)              // no-op when absent
//
// Deleting a node with two children copies the in-order successor (the
// leftmost node of the right subtree) into it and then deletes the
// successor from the right subtree.
//
// # Traversals
//
// [Tree.InOrder], [Tree.PreOrder] and [Tree.PostOrder] are recursive.
// [Tree.BreadthFirst] walks level by level with a FIFO queue.
// [Tree.DepthFirst] walks with an explicit LIFO stack, pushing the right
// child before the left one, so its output always equals PreOrder.
// All traversals return freshly allocated slices.
//
// # Concurrency
//
// A Tree is not safe for concurrent use. Callers sharing one tree across
// goroutines must guard every operation, reads included, with a single
// lock; see pkg/session.
package bst
