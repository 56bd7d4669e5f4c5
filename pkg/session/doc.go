// Package session drives a tree the way an interactive visualizer does.
//
// A [Session] owns one bst.Tree together with the state a viewer needs
// around it: the current highlight (last search or traversal), the pan and
// zoom [view.View] and an append-only operation log. Every mutation clears
// or replaces the highlight following the same rules:
//
//   - insert and delete clear the highlight;
//   - search highlights the node found, or nothing;
//   - a traversal highlights every visited value;
//   - reset restores the default view and clears the highlight.
//
// Textual commands ("insert 5", "traverse bfs", "zoom -120") are parsed by
// [ParseCommand] and [ParseScript] and executed with [Session.Apply].
//
// # Stores
//
// Multi-user front ends keep sessions in a [Store]. [MemoryStore] holds
// them in memory keyed by a random UUID and drops sessions idle for longer
// than their TTL. Nothing is ever written to disk.
//
// # Concurrency
//
// A Session guards its tree with a single mutex. Every exported method
// takes the lock, and [Session.With] exposes a consistent read-only view
// for rendering.
package session
