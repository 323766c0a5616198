package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ScriptExecutor runs a unit by reading its script file under Dir and
// writing the content to Out, framed by a banner. It is the prototype
// execution used by the CLI; anything implementing [Executor] can replace
// it.
type ScriptExecutor struct {
	Dir string    // directory holding one file per unit
	Out io.Writer // destination for banners and file content
}

// Execute reads Dir/unit and writes it to Out. A missing file is an error;
// a file with only whitespace prints a placeholder instead of the content.
func (e *ScriptExecutor) Execute(ctx context.Context, unit string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(e.Dir, unit)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	fmt.Fprintf(e.Out, "=== RUNNING %s ===\n", unit)
	if strings.TrimSpace(string(data)) == "" {
		fmt.Fprintln(e.Out, "[file is empty]")
		return nil
	}
	if _, err := e.Out.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		fmt.Fprintln(e.Out)
	}
	return nil
}

// Ensure ScriptExecutor implements Executor.
var _ Executor = (*ScriptExecutor)(nil)
