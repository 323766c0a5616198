package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runstack/runstack/pkg/render"
)

// graphCommand creates the graph command: export the dependency graph as
// Graphviz DOT or rendered SVG.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		in     inputOpts
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the dependency graph as DOT or SVG",
		Long: `Export the dependency graph. Edges point from each prerequisite to its
dependents, so the drawing reads top-to-bottom in execution order.

Examples:
  runstack graph                        # DOT to stdout
  runstack graph -o deps.dot
  runstack graph --format svg -o deps.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadMap(in)
			if err != nil {
				return err
			}
			dot := render.ToDOT(m)

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				prog := newProgress(c.Logger)
				data, err = render.SVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
				prog.done("Rendered SVG")
			default:
				return fmt.Errorf("invalid format: %q (must be dot or svg)", format)
			}

			if output == "" {
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			c.Logger.Infof("Wrote graph to %s", output)
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&format, "format", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
