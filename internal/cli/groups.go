package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runstack/runstack/pkg/report"
)

// groupsCommand creates the groups command: classify units by direct
// prerequisite fan-in for display or JSON export.
func (c *CLI) groupsCommand() *cobra.Command {
	var (
		in     inputOpts
		output string
	)

	cmd := &cobra.Command{
		Use:   "groups [target]",
		Short: "Group units by direct prerequisite count",
		Long: `Group units into three buckets by direct prerequisite count: none,
exactly one, and more than one. This is a display projection - the buckets
say nothing about execution order.

With a target, only the target and its transitive prerequisites are grouped.

Examples:
  runstack groups                       # styled terminal view
  runstack groups -o grouped.json       # JSON export
  runstack groups report.txt            # only what report.txt needs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadMap(in)
			if err != nil {
				return err
			}
			order, err := planFrom(m, args)
			if err != nil {
				return err
			}
			groups := report.ByFanIn(order, m)

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), groups.Render())
				return nil
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			if err := groups.WriteJSON(f); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			c.Logger.Infof("Wrote groups to %s", output)
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON export to file instead of the terminal view")
	return cmd
}
