package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/observability"
	"github.com/matzehuels/bstviz/pkg/view"
)

// Kind labels a log entry.
type Kind string

const (
	KindInsert   Kind = "insert"
	KindSearch   Kind = "search"
	KindDelete   Kind = "delete"
	KindTraverse Kind = "traverse"
	KindReset    Kind = "reset"
	KindView     Kind = "view"
	KindClear    Kind = "clear"
)

// logSeparator precedes every rendered entry in a transcript.
const logSeparator = "--------------------"

// Entry is one line of the operation log.
type Entry struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	Warning bool      `json:"warning,omitempty"`
	Time    time.Time `json:"time"`
}

// String formats the entry as "[KIND] message".
func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(e.Kind)), e.Message)
}

// Session is a tree plus its view, highlight and log.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	tree      *bst.Tree
	view      view.View
	highlight highlight.Highlight
	log       []Entry
	lastUsed  time.Time
	now       func() time.Time
}

// New creates a session with an empty tree.
func New(id string) *Session {
	s := &Session{
		ID:   id,
		tree: bst.New(),
		view: view.Default(),
		now:  time.Now,
	}
	s.CreatedAt = s.now()
	s.lastUsed = s.CreatedAt
	return s
}

// State is a read-only snapshot handed to [Session.With]. Tree must not be
// mutated or retained after the callback returns.
type State struct {
	Tree      *bst.Tree
	View      view.View
	Highlight highlight.Highlight
}

// With runs fn while holding the session lock.
func (s *Session) With(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(State{Tree: s.tree, View: s.view, Highlight: s.highlight})
}

// Insert adds v. A duplicate is logged as a warning and reported as a
// DUPLICATE_VALUE error; the tree is unchanged.
func (s *Session) Insert(ctx context.Context, v int) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.tree.Insert(v)
	observability.Tree().OnInsert(ctx, v, err)
	s.highlight = highlight.None()
	if err != nil {
		return s.record(KindInsert, true, "Value already exists: %d", v), errors.FromTree(err, v)
	}
	return s.record(KindInsert, false, "Inserted: %d", v), nil
}

// Search looks v up and highlights it when found.
func (s *Session) Search(ctx context.Context, v int) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.tree.Search(v) != nil
	observability.Tree().OnSearch(ctx, v, found)
	if !found {
		s.highlight = highlight.None()
		return s.record(KindSearch, false, "Not found: %d", v), false
	}
	s.highlight = highlight.Found(v)
	return s.record(KindSearch, false, "Found: %d", v), true
}

// Delete removes v. Deleting an absent value only logs it.
func (s *Session) Delete(ctx context.Context, v int) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.tree.Delete(v)
	observability.Tree().OnDelete(ctx, v, removed)
	s.highlight = highlight.None()
	if !removed {
		return s.record(KindDelete, false, "Not present: %d", v), false
	}
	return s.record(KindDelete, false, "Removed: %d", v), true
}

// Traverse runs k and highlights the visited values.
func (s *Session) Traverse(ctx context.Context, k bst.Traversal) (Entry, []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.tree.Traverse(k)
	observability.Tree().OnTraverse(ctx, string(k), len(order))
	s.highlight = highlight.Visited(order)
	return s.record(KindTraverse, false, "%s: %s", k.Label(), joinInts(order)), order
}

// Reset restores the default view and clears the highlight.
func (s *Session) Reset() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.Reset()
	s.highlight = highlight.None()
	return s.record(KindReset, false, "View reset (zoom/pan).")
}

// Clear removes every value from the tree.
func (s *Session) Clear() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.tree.Len()
	s.tree.Clear()
	s.highlight = highlight.None()
	return s.record(KindClear, false, "Cleared %d values", n)
}

// Pan moves the view. View changes are not logged.
func (s *Session) Pan(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Pan(dx, dy)
	s.touch()
}

// ZoomAt zooms the view around a screen point.
func (s *Session) ZoomAt(mx, my, delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ZoomAt(mx, my, delta)
	s.touch()
}

// View returns the current view.
func (s *Session) View() view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Highlight returns the current highlight.
func (s *Session) Highlight() highlight.Highlight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlight
}

// Values returns the stored values in ascending order.
func (s *Session) Values() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.InOrder()
}

// Log returns a copy of the operation log.
func (s *Session) Log() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.log...)
}

// Transcript renders the log the way the visualizer's output pane shows it.
func (s *Session) Transcript() string {
	var b strings.Builder
	for _, e := range s.Log() {
		b.WriteString(logSeparator)
		b.WriteByte('\n')
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// LastUsed returns the time of the last operation.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) touch() {
	s.lastUsed = s.now()
}

func (s *Session) record(kind Kind, warning bool, format string, args ...any) Entry {
	s.touch()
	e := Entry{Kind: kind, Message: fmt.Sprintf(format, args...), Warning: warning, Time: s.lastUsed}
	s.log = append(s.log, e)
	return e
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
