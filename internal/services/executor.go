package services

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandExecutor is the default executor behind the external tool clients.
// It runs the binary via exec.CommandContext so context cancellation kills
// in-flight processes, and folds captured output into the returned error.
type CommandExecutor struct{}

// Run blocks until the process exits. The returned error keeps the
// underlying *exec.ExitError in its chain so ExitCode can recover the
// process exit status.
func (CommandExecutor) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		if detail := outputTail(output); detail != "" {
			return fmt.Errorf("%s: %w: %s", binary, err, detail)
		}
		return fmt.Errorf("%s: %w", binary, err)
	}
	return nil
}

// outputTail keeps error messages readable when a tool dumps pages of
// output before failing.
func outputTail(output []byte) string {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > 10 {
		lines = lines[len(lines)-10:]
	}
	return strings.Join(lines, "\n")
}
