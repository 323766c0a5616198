package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// planCommand creates the plan command: print the execution order without
// running anything.
func (c *CLI) planCommand() *cobra.Command {
	var in inputOpts

	cmd := &cobra.Command{
		Use:   "plan [target]",
		Short: "Show the dependency-safe execution order",
		Long: `Show the dependency-safe execution order without running anything.

With no argument the order covers every declared unit. With a target, it is
restricted to the target and its transitive prerequisites.

Examples:
  runstack plan                      # order for all units
  runstack plan report.txt           # only what report.txt needs
  runstack plan -m deps.toml         # TOML manifest`,
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

			title := "Execution order (all units)"
			if len(args) == 1 {
				title = fmt.Sprintf("Execution order for %s", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), renderOrder(title, order))
			return nil
		},
	}

	in.register(cmd)
	return cmd
}
