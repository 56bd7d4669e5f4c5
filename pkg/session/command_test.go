package session

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr errors.Code
	}{
		{"insert 5", Command{Op: OpInsert, Value: 5}, ""},
		{"I -3", Command{Op: OpInsert, Value: -3}, ""},
		{"find 7", Command{Op: OpSearch, Value: 7}, ""},
		{"rm 7", Command{Op: OpDelete, Value: 7}, ""},
		{"traverse bfs", Command{Op: OpTraverse, Traversal: bst.BreadthFirst}, ""},
		{"inorder", Command{Op: OpTraverse, Traversal: bst.InOrder}, ""},
		{"reset", Command{Op: OpReset}, ""},
		{"clear", Command{Op: OpClear}, ""},
		{"pan 10 -5", Command{Op: OpPan, DX: 10, DY: -5}, ""},
		{"zoom -120", Command{Op: OpZoom, Delta: -120}, ""},
		{"zoom 50 400 300", Command{Op: OpZoom, Delta: 50, X: 400, Y: 300}, ""},

		{"", Command{}, errors.ErrCodeInvalidCommand},
		{"jump 5", Command{}, errors.ErrCodeInvalidCommand},
		{"insert", Command{}, errors.ErrCodeInvalidCommand},
		{"insert abc", Command{}, errors.ErrCodeInvalidInput},
		{"traverse sideways", Command{}, errors.ErrCodeInvalidTraversal},
		{"reset now", Command{}, errors.ErrCodeInvalidCommand},
		{"pan 1", Command{}, errors.ErrCodeInvalidCommand},
		{"zoom x", Command{}, errors.ErrCodeInvalidInput},
		{"insert \x00", Command{}, errors.ErrCodeInvalidCommand},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseCommand(%q) error = %v, want code %v", tt.line, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCommand(%q) error: %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseScript(t *testing.T) {
	script := `
# build the example tree
insert 50
insert 30

search 30
traverse preorder
`
	cmds, err := ParseScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("ParseScript() error: %v", err)
	}
	if len(cmds) != 4 {
		t.Fatalf("len(cmds) = %d, want 4", len(cmds))
	}
	if cmds[3].Traversal != bst.PreOrder {
		t.Errorf("cmds[3] = %+v", cmds[3])
	}
}

func TestParseScriptReportsLine(t *testing.T) {
	_, err := ParseScript(strings.NewReader("insert 1\n\ninsert x\n"))
	if err == nil {
		t.Fatal("ParseScript() should fail")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %q should mention line 3", err)
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	s := New("apply")

	lines := []string{"insert 50", "insert 30", "insert 70", "insert 20", "insert 40", "insert 60", "insert 80", "delete 30", "search 30", "pan 5 5", "zoom -100"}
	for _, line := range lines {
		cmd, err := ParseCommand(line)
		if err != nil {
			t.Fatalf("ParseCommand(%q) error: %v", line, err)
		}
		if _, err := s.Apply(ctx, cmd); err != nil {
			t.Fatalf("Apply(%q) error: %v", line, err)
		}
	}

	want := []int{20, 40, 50, 60, 70, 80}
	if got := s.Values(); !slices.Equal(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
	if s.View().IsDefault() {
		t.Error("pan/zoom should change the view")
	}
	// insert x7, delete, search; pan and zoom are not logged.
	if len(s.Log()) != 9 {
		t.Errorf("len(Log()) = %d, want 9", len(s.Log()))
	}

	if _, err := s.Apply(ctx, Command{Op: OpInsert, Value: 50}); !errors.Is(err, errors.ErrCodeDuplicateValue) {
		t.Errorf("duplicate Apply error = %v", err)
	}
	if _, err := s.Apply(ctx, Command{Op: "bogus"}); !errors.Is(err, errors.ErrCodeInvalidCommand) {
		t.Errorf("bogus Apply error = %v", err)
	}
}
