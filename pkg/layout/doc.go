// Package layout projects a binary search tree onto 2D drawing coordinates.
//
// # Algorithm
//
// [Project] places the root at the given origin and recurses:
//
//   - a left child goes to (x - spacing, y + RowHeight) and is projected
//     with spacing / LeftShrink (2.5);
//   - a right child goes to (x + spacing, y + RowHeight) and is projected
//     with spacing / RightShrink (1.5).
//
// The left spacing shrinks faster than the right one. This keeps left-heavy
// subtrees compact and is intentional.
//
// # Output
//
// A [Layout] holds one [Point] per node, in pre-order, and one [Segment]
// per parent-child edge. Sinks in pkg/render consume it; the projector has
// no notion of colour or highlight.
//
// Projection never mutates the tree and keeps no state between calls, so
// callers simply re-project after every change.
package layout
