package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	values    string  // values to insert, in order
	output    string  // output file (single format) or base path (multiple)
	formats   string  // comma-separated output formats
	search    int     // value to highlight as a search hit
	traversal string  // traversal whose members are highlighted
	width     float64 // canvas width in pixels
	height    float64 // canvas height in pixels
	canvas    bool    // render the full canvas instead of cropping to the tree
	detailed  bool    // show depth in Graphviz labels
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a tree to SVG, Graphviz, JSON, text, PDF or PNG",
		Long: `Render builds a tree from --values and writes it in the requested formats.

With a single format and no --output the artifact goes to stdout. With
several formats, --output is a base path and each artifact gets its
format's extension.`,
		Example: `  bstviz render --values 50,30,70,20,40 -o tree.svg
  bstviz render --values 8,3,10,1,6 --traversal bfs -f svg,dot,json -o tree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValuesFlag(opts.values)
			if err != nil {
				return err
			}
			popts := c.renderOptions()
			popts.Formats = pipeline.ParseFormats(opts.formats)
			popts.Traversal = opts.traversal
			popts.Canvas = opts.canvas
			popts.Detailed = opts.detailed
			if cmd.Flags().Changed("search") {
				popts.Search = &opts.search
			}
			if cmd.Flags().Changed("width") {
				popts.Width = opts.width
			}
			if cmd.Flags().Changed("height") {
				popts.Height = opts.height
			}
			if err := popts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), values, popts, opts.output)
		},
	}

	cmd.Flags().StringVar(&opts.values, "values", "", "values to insert, e.g. 50,30,70")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().IntVar(&opts.search, "search", 0, "highlight this value if present")
	cmd.Flags().StringVarP(&opts.traversal, "traversal", "t", "", "highlight a traversal: inorder, preorder, postorder, bfs, dfs")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default from config)")
	cmd.Flags().BoolVar(&opts.canvas, "canvas", false, "render the full canvas instead of cropping to the tree")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node depth in Graphviz output")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runRender builds the tree, runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, values []int, opts pipeline.Options, output string) error {
	t, dups := bst.FromValues(values...)
	if dups > 0 {
		printWarning("Skipped %d duplicate value(s)", dups)
	}

	toStdout := output == "" && len(opts.Formats) == 1
	var spinner *Spinner
	if !toStdout {
		spinner = newSpinner(ctx, os.Stderr, "Rendering...")
		spinner.Start()
	}

	prog := newProgress(c.Logger)
	result, err := c.newRunner().Execute(ctx, t, opts)
	if err != nil {
		switch {
		case spinner == nil:
		case spinner.Cancelled():
			spinner.Stop()
		default:
			spinner.StopWithError("Render failed")
		}
		return err
	}

	if toStdout {
		_, err := c.stdout().Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	spinner.Update("Writing files...")
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output)
	if err != nil {
		spinner.StopWithError("Write failed")
		return err
	}
	spinner.StopWithSuccess("Rendered tree")
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(paths)))

	printStats(result.Stats.NodeCount, result.Stats.Height)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each format to its own file and returns the paths
// in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	base := basePath(output)
	single := len(formats) == 1 && output != "" && filepath.Ext(output) != ""

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + pipeline.Extension(format)
		if single {
			path = output
		}
		if err := writeFile(path, artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath strips a known format extension from output. An empty output
// becomes "tree".
func basePath(output string) string {
	if output == "" {
		return "tree"
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
