package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/runstack/runstack/pkg/runner"
)

// defaultScriptDir holds the unit files when neither flag nor config set
// a directory.
const defaultScriptDir = "scripts"

// runCommand creates the run command: execute all units, or one target with
// its transitive prerequisites, in dependency-safe order.
func (c *CLI) runCommand() *cobra.Command {
	var (
		in          inputOpts
		dir         string
		keepGoing   bool
		dryRun      bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "run [target]",
		Short: "Execute units in dependency-safe order",
		Long: `Execute units in dependency-safe order.

With no argument every unit runs. With a target, only the target and its
transitive prerequisites run. Each unit's script file is read from the
script directory and written to stdout.

By default the run aborts on the first failure so that no unit ever runs
after a failed prerequisite. With --continue-on-failure the run keeps
going, but units whose prerequisites failed are still skipped.

Examples:
  runstack run                       # run everything
  runstack run report.txt            # run report.txt and what it needs
  runstack run -d sql/ --continue-on-failure
  runstack run -i report.txt         # interactive progress view`,
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

			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), renderOrder("Execution order (dry run)", order))
				return nil
			}

			opts := runner.Options{
				ContinueOnFailure: keepGoing || c.cfg.ContinueOnFailure,
				Deps:              m,
			}
			scriptDir := value(dir, c.cfg.Dir, defaultScriptDir)

			if interactive {
				return c.runInteractive(cmd.Context(), order, scriptDir, opts)
			}

			exec := &runner.ScriptExecutor{Dir: scriptDir, Out: cmd.OutOrStdout()}
			opts.OnEvent = c.logEvent

			prog := newProgress(c.Logger)
			res, err := runner.Run(cmd.Context(), order, exec, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Executed %d units", len(res.Completed)))
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory holding the unit script files (default: scripts)")
	cmd.Flags().BoolVar(&keepGoing, "continue-on-failure", false, "keep running after a unit fails (dependents are still skipped)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the order without executing")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "show an interactive progress view")
	return cmd
}

// logEvent mirrors run progress to the logger.
func (c *CLI) logEvent(ev runner.Event) {
	switch ev.Status {
	case runner.StatusRunning:
		c.Logger.Infof("Running %s (%d/%d)", ev.Unit, ev.Index+1, ev.Total)
	case runner.StatusOK:
		c.Logger.Debugf("Finished %s (%s)", ev.Unit, ev.Elapsed.Round(time.Millisecond))
	case runner.StatusFailed:
		c.Logger.Errorf("Failed %s: %v", ev.Unit, ev.Err)
	case runner.StatusSkipped:
		c.Logger.Warnf("Skipped %s: %v", ev.Unit, ev.Err)
	}
}

// runInteractive drives the bubbletea progress view. Script output is
// buffered during the TUI session and flushed to stdout afterwards, so the
// renderer and the scripts don't fight over the terminal.
func (c *CLI) runInteractive(ctx context.Context, order []string, scriptDir string, opts runner.Options) error {
	var buf bytes.Buffer
	exec := &runner.ScriptExecutor{Dir: scriptDir, Out: &buf}

	res, err := runTUI(ctx, order, exec, opts)

	if buf.Len() > 0 {
		_, _ = os.Stdout.Write(buf.Bytes())
	}
	if err != nil {
		return err
	}
	printSuccess("Executed %d units", len(res.Completed))
	if len(res.Skipped) > 0 {
		printWarning("Skipped %d units", len(res.Skipped))
	}
	return nil
}
