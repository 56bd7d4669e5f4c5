package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/pipeline"
	"github.com/matzehuels/bstviz/pkg/render/sink"
	"github.com/matzehuels/bstviz/pkg/session"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	ops        string // semicolon-separated commands
	script     string // script file, "-" for stdin
	transcript bool   // print the plain "[KIND] message" transcript
	draw       bool   // draw the final tree as text
	width      int    // text drawing width in columns (0 = fit the tree)
}

// runCommand creates the run command, which replays operations against a
// fresh tree and prints the operation log.
func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{draw: true}

	cmd := &cobra.Command{
		Use:   "run [values...]",
		Short: "Insert values and replay operations on a tree",
		Long: `Run inserts the given values into an empty tree, then applies the
operations from --ops and --script in order.

Operations are one per line (or separated by ';' in --ops):

  insert 42     search 42     delete 42
  traverse bfs  inorder       reset       clear`,
		Example: `  bstviz run 50 30 70 20 40 --ops "search 40; traverse inorder"
  bstviz run --script ops.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValuesFlag(strings.Join(args, " "))
			if err != nil {
				return err
			}
			cmds, err := loadCommands(opts.ops, opts.script, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runSession(cmd.Context(), values, cmds, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ops, "ops", "", `operations separated by ';' (e.g. "search 5; traverse bfs")`)
	cmd.Flags().StringVar(&opts.script, "script", "", `file with one operation per line ("-" for stdin)`)
	cmd.Flags().BoolVar(&opts.transcript, "transcript", false, "print the plain-text operation log")
	cmd.Flags().BoolVar(&opts.draw, "draw", opts.draw, "draw the final tree")
	cmd.Flags().IntVar(&opts.width, "width", 0, "drawing width in columns (0 fits the tree)")

	return cmd
}

// loadCommands parses --ops followed by the --script contents.
func loadCommands(ops, script string, stdin io.Reader) ([]session.Command, error) {
	var cmds []session.Command
	if ops != "" {
		parsed, err := session.ParseScript(strings.NewReader(strings.ReplaceAll(ops, ";", "\n")))
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, parsed...)
	}
	if script == "" {
		return cmds, nil
	}

	r := stdin
	if script != "-" {
		f, err := os.Open(script)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open script")
		}
		defer f.Close()
		r = f
	}
	parsed, err := session.ParseScript(r)
	if err != nil {
		return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidCommand), err, "%s", script)
	}
	return append(cmds, parsed...), nil
}

// runSession applies values and cmds to a new session and prints the result.
// Duplicates are reported in the log, not returned as errors.
func (c *CLI) runSession(ctx context.Context, values []int, cmds []session.Command, opts runOpts) error {
	sess := session.New(session.GenerateID())
	c.Logger.Debug("run", "values", len(values), "commands", len(cmds))

	for _, v := range values {
		if _, err := sess.Insert(ctx, v); err != nil && !errors.Is(err, errors.ErrCodeDuplicateValue) {
			return err
		}
	}
	for _, cmd := range cmds {
		if _, err := sess.Apply(ctx, cmd); err != nil && !errors.Is(err, errors.ErrCodeDuplicateValue) {
			return err
		}
	}

	out := c.stdout()
	if opts.transcript {
		_, err := io.WriteString(out, sess.Transcript())
		return err
	}

	for _, e := range sess.Log() {
		printEntry(e)
	}

	var drawing string
	var nodes, height int
	sess.With(func(st session.State) {
		nodes, height = st.Tree.Len(), st.Tree.Height()
		if opts.draw {
			drawing = c.drawTree(st.Tree, st.Highlight, opts.width)
		}
	})
	printStats(nodes, height)
	if drawing != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, drawing)
	}
	return nil
}

// drawTree renders t as coloured text using the configured canvas.
func (c *CLI) drawTree(t *bst.Tree, h highlight.Highlight, width int) string {
	opts := c.renderOptions()
	opts.SetDefaults()
	l := pipeline.ComputeLayout(t, opts)
	return sink.RenderText(l, h, sink.TextOptions{Width: width, Color: true})
}
