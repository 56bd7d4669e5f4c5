package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/pipeline"
	"github.com/matzehuels/bstviz/pkg/render/sink"
	"github.com/matzehuels/bstviz/pkg/session"
)

const (
	// panStep is the arrow-key pan distance in pixels.
	panStep = 40.0

	// wheelDelta is the zoom delta for one wheel notch or +/- key press.
	wheelDelta = 120.0

	// logLines is the height of the operation log pane.
	logLines = 6

	// maxInput bounds the value being typed.
	maxInput = 11
)

// Pane styles
var (
	tuiHeaderStyle = StyleTitle.Padding(0, 1)
	tuiBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	tuiInputStyle  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	tuiHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	tuiErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// traversalKeys maps keys to the traversal they run.
var traversalKeys = map[string]bst.Traversal{
	"n": bst.InOrder,
	"p": bst.PreOrder,
	"o": bst.PostOrder,
	"b": bst.BreadthFirst,
	"f": bst.DepthFirst,
}

// tuiCommand creates the tui command, an interactive terminal visualizer.
func (c *CLI) tuiCommand() *cobra.Command {
	var values string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Explore a tree interactively in the terminal",
		Long: `Open an interactive visualizer. Type a number, then:

  enter/i insert   s search   d delete   c clear
  n/p/o   in-, pre-, post-order   b bfs   f dfs
  arrows/drag pan   +/-/wheel zoom   r reset view   q quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := parseValuesFlag(values)
			if err != nil {
				return err
			}
			m := newTreeModel(cmd.Context(), c.renderOptions())
			for _, v := range vs {
				_, _ = m.sess.Insert(cmd.Context(), v)
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&values, "values", "", "values to insert before starting, e.g. 50,30,70")
	return cmd
}

// =============================================================================
// treeModel - Interactive tree visualizer
// =============================================================================

// treeModel is the bubbletea model for the interactive visualizer. The tree
// pane is a viewport onto the same canvas the SVG renderer draws, at
// sink.CellWidth x sink.CellHeight pixels per character.
type treeModel struct {
	ctx  context.Context
	sess *session.Session
	opts pipeline.Options

	input string
	err   error

	width, height int
	dragX, dragY  int
	dragging      bool
}

func newTreeModel(ctx context.Context, opts pipeline.Options) treeModel {
	opts.SetDefaults()
	return treeModel{
		ctx:    ctx,
		sess:   session.New(session.GenerateID()),
		opts:   opts,
		width:  80,
		height: 24,
	}
}

func (m treeModel) Init() tea.Cmd {
	return nil
}

func (m treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

// handleKey routes keyboard input.
func (m treeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.err = nil

	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case "enter", "i":
		m.withValue(func(v int) {
			if _, err := m.sess.Insert(m.ctx, v); err != nil {
				m.err = err
			}
		})
	case "s":
		m.withValue(func(v int) { m.sess.Search(m.ctx, v) })
	case "d", "x":
		m.withValue(func(v int) { m.sess.Delete(m.ctx, v) })
	case "c":
		m.sess.Clear()
	case "r":
		m.sess.Reset()
	case "left":
		m.sess.Pan(-panStep, 0)
	case "right":
		m.sess.Pan(panStep, 0)
	case "up":
		m.sess.Pan(0, -panStep)
	case "down":
		m.sess.Pan(0, panStep)
	case "+", "=":
		m.zoomAtCenter(-wheelDelta)
	case "_":
		m.zoomAtCenter(wheelDelta)
	case "-":
		// A leading minus starts a negative value; otherwise zoom out.
		if m.input == "" {
			m.input = "-"
		} else {
			m.zoomAtCenter(wheelDelta)
		}
	default:
		if k, ok := traversalKeys[key]; ok {
			m.sess.Traverse(m.ctx, k)
		} else if len(key) == 1 && key[0] >= '0' && key[0] <= '9' && len(m.input) < maxInput {
			m.input += key
		}
	}
	return m, nil
}

// withValue parses the typed value and runs fn with it. The input is
// cleared either way.
func (m *treeModel) withValue(fn func(v int)) {
	defer func() { m.input = "" }()
	v, err := errors.ParseValue(m.input)
	if err != nil {
		m.err = err
		return
	}
	fn(v)
}

// handleMouse zooms on the wheel and pans on left-button drags.
func (m treeModel) handleMouse(msg tea.MouseMsg) treeModel {
	x, y := m.toCanvas(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.sess.ZoomAt(x, y, -wheelDelta)
	case msg.Button == tea.MouseButtonWheelDown:
		m.sess.ZoomAt(x, y, wheelDelta)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging, m.dragX, m.dragY = true, msg.X, msg.Y
	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.sess.Pan(float64(msg.X-m.dragX)*sink.CellWidth, float64(msg.Y-m.dragY)*sink.CellHeight)
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}
	return m
}

func (m treeModel) zoomAtCenter(delta float64) {
	cols, rows := m.treeSize()
	m.sess.ZoomAt(float64(cols)*sink.CellWidth/2, float64(rows)*sink.CellHeight/2, delta)
}

// toCanvas converts a terminal cell to canvas pixels inside the tree pane.
func (m treeModel) toCanvas(col, row int) (float64, float64) {
	// One border column and the header plus one border row precede the pane.
	return float64(col-1) * sink.CellWidth, float64(row-2) * sink.CellHeight
}

// treeSize is the tree pane's interior in cells.
func (m treeModel) treeSize() (cols, rows int) {
	cols = max(m.width-2, 10)
	// header, two borders, log pane (with its borders), input and help lines
	rows = max(m.height-1-2-(logLines+2)-2, 3)
	return cols, rows
}

func (m treeModel) View() string {
	cols, rows := m.treeSize()

	var drawing string
	var nodes, height int
	m.sess.With(func(st session.State) {
		nodes, height = st.Tree.Len(), st.Tree.Height()
		opts := m.opts
		opts.Width = float64(cols) * sink.CellWidth
		opts.View = st.View
		l := pipeline.ComputeLayout(st.Tree, opts)
		v := st.View
		drawing = sink.RenderText(l, st.Highlight, sink.TextOptions{Width: cols, Height: rows, View: &v, Color: true})
	})
	if drawing == "" {
		drawing = StyleDim.Render("(empty tree)")
	}

	header := tuiHeaderStyle.Render(fmt.Sprintf("%s  %d nodes  height %d  zoom %.2fx",
		appName, nodes, height, m.sess.View().Scale))
	tree := tuiBorderStyle.Width(cols).Height(rows).Render(drawing)
	logPane := tuiBorderStyle.Width(cols).Height(logLines).Render(m.renderLog())

	input := "› " + tuiInputStyle.Render(m.input) + StyleDim.Render("_")
	if m.err != nil {
		input += "  " + tuiErrorStyle.Render(errors.UserMessage(m.err))
	}
	help := tuiHelpStyle.Render("enter insert · s search · d delete · n/p/o/b/f traverse · arrows pan · +/- zoom · r reset · c clear · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, tree, logPane, input, help)
}

// renderLog shows the newest log entries, oldest first.
func (m treeModel) renderLog() string {
	entries := m.sess.Log()
	if len(entries) > logLines {
		entries = entries[len(entries)-logLines:]
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		if e.Warning {
			lines[i] = StyleWarning.Render(e.String())
		} else {
			lines[i] = e.String()
		}
	}
	return strings.Join(lines, "\n")
}
