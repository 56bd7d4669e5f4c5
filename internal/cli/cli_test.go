package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bstviz/pkg/errors"
)

// execute runs the root command with args against an empty config file and
// returns what the command wrote to its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.out = &out
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func TestRunTranscript(t *testing.T) {
	got, err := execute(t, "run", "50", "30", "70", "30", "--transcript",
		"--ops", "search 30; traverse inorder; delete 99")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	want := []string{
		"[INSERT] Inserted: 50",
		"[INSERT] Inserted: 30",
		"[INSERT] Inserted: 70",
		"[INSERT] Value already exists: 30",
		"[SEARCH] Found: 30",
		"[TRAVERSE] INORDER: 30, 50, 70",
		"[DELETE] Not present: 99",
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(got), "\n") {
		if !strings.HasPrefix(line, "---") {
			lines = append(lines, line)
		}
	}
	if len(lines) != len(want) {
		t.Fatalf("transcript has %d entries, want %d:\n%s", len(lines), len(want), got)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRunScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "ops.txt")
	data := "# build\ninsert 8\ninsert 3\ninsert 10\n\nbfs\n"
	if err := os.WriteFile(script, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := execute(t, "run", "--script", script, "--transcript")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(got, "[TRAVERSE] BFS: 8, 3, 10") {
		t.Errorf("transcript missing BFS entry:\n%s", got)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad value", []string{"run", "5", "x"}, errors.ErrCodeInvalidInput},
		{"bad op", []string{"run", "--ops", "jump 5"}, errors.ErrCodeInvalidCommand},
		{"missing script", []string{"run", "--script", "/nonexistent/ops.txt"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestTraverseCommand(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"inorder", "20\n30\n40\n50\n70\n"},
		{"preorder", "50\n30\n20\n40\n70\n"},
		{"postorder", "20\n40\n30\n70\n50\n"},
		{"bfs", "50\n30\n70\n20\n40\n"},
		{"dfs", "50\n30\n20\n40\n70\n"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := execute(t, "traverse", "--values", "50,30,70,20,40", tt.kind)
			if err != nil {
				t.Fatalf("traverse error: %v", err)
			}
			if got != tt.want {
				t.Errorf("traverse %s = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}

	t.Run("table", func(t *testing.T) {
		got, err := execute(t, "traverse", "--values", "2,1,3")
		if err != nil {
			t.Fatalf("traverse error: %v", err)
		}
		for _, label := range []string{"INORDER", "PREORDER", "POSTORDER", "BFS", "DFS", "1, 2, 3"} {
			if !strings.Contains(got, label) {
				t.Errorf("table missing %q:\n%s", label, got)
			}
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := execute(t, "traverse", "--values", "1", "zigzag")
		if !errors.Is(err, errors.ErrCodeInvalidTraversal) {
			t.Errorf("error = %v, want INVALID_TRAVERSAL", err)
		}
	})
}

func TestRenderToStdout(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		checks []string
	}{
		{"svg", []string{"-f", "svg"}, []string{"<svg", "50", "</svg>"}},
		{"json", []string{"-f", "json"}, []string{`"value": 50`}},
		{"dot", []string{"-f", "dot", "--search", "30"}, []string{"digraph", "30"}},
		{"text", []string{"-f", "txt"}, []string{"50", "30", "70"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "--values", "50,30,70"}, tt.args...)
			got, err := execute(t, args...)
			if err != nil {
				t.Fatalf("render error: %v", err)
			}
			for _, want := range tt.checks {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad traversal", []string{"-t", "zigzag"}, errors.ErrCodeInvalidTraversal},
		{"search with traversal", []string{"--search", "5", "-t", "bfs"}, errors.ErrCodeInvalidInput},
		{"negative width", []string{"--width", "-1"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "--values", "5,3"}, tt.args...)
			_, err := execute(t, args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestConfigCommand(t *testing.T) {
	got, err := execute(t, "config")
	if err != nil {
		t.Fatalf("config error: %v", err)
	}
	for _, want := range []string{"[canvas]", "[colors]", "[server]", `addr = ":8080"`} {
		if !strings.Contains(got, want) {
			t.Errorf("config output missing %q:\n%s", want, got)
		}
	}

	got, err = execute(t, "config", "path")
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(got), "config.toml") {
		t.Errorf("config path = %q, want a config.toml path", got)
	}
}

func TestInvalidConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[canvas]\nwidth = -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(io.Discard, LogInfo)
	c.out = io.Discard
	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "config"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}
