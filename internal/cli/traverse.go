package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
)

// traverseCommand creates the traverse command. With a kind it prints that
// order, one value per line; without one it tabulates every traversal.
func (c *CLI) traverseCommand() *cobra.Command {
	var values string

	kinds := make([]string, len(bst.Traversals))
	for i, k := range bst.Traversals {
		kinds[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:       "traverse [inorder|preorder|postorder|bfs|dfs]",
		Short:     "Print traversal orders of a tree",
		Example:   `  bstviz traverse --values 50,30,70,20,40 bfs`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := parseValuesFlag(values)
			if err != nil {
				return err
			}
			t, dups := bst.FromValues(vs...)
			if dups > 0 {
				c.Logger.Warnf("Skipped %d duplicate value(s)", dups)
			}

			if len(args) == 0 {
				fmt.Fprintln(c.stdout(), traversalTable(t))
				return nil
			}
			kind, err := bst.ParseTraversal(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidTraversal, err, "traverse")
			}
			var b strings.Builder
			for _, v := range t.Traverse(kind) {
				b.WriteString(strconv.Itoa(v))
				b.WriteByte('\n')
			}
			_, err = fmt.Fprint(c.stdout(), b.String())
			return err
		},
	}

	cmd.Flags().StringVar(&values, "values", "", "values to insert, e.g. 50,30,70")
	return cmd
}

// traversalTable renders every traversal of t as a bordered table.
func traversalTable(t *bst.Tree) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	kindStyle := lipgloss.NewStyle().Foreground(colorCyan).PaddingRight(1)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite).PaddingLeft(1)

	rows := make([][]string, 0, len(bst.Traversals))
	for _, k := range bst.Traversals {
		order := t.Traverse(k)
		parts := make([]string, len(order))
		for i, v := range order {
			parts[i] = strconv.Itoa(v)
		}
		rows = append(rows, []string{k.Label(), strings.Join(parts, ", ")})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Traversal", "Order").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return kindStyle
			default:
				return cellStyle
			}
		}).
		Render()
}
