package collab

import (
	"bufio"
	"context"
	"os/exec"
	"strings"

	"github.com/sniperrifle2004/fish-shell/expand"
)

// MaxOutputBytes bounds how much a single command substitution may emit
// before Exec reports expand.ErrReadTooMuch, mirroring the real shell's
// guard against a runaway subshell filling memory.
const MaxOutputBytes = 10 * 1024 * 1024

// Executor runs a command substitution's source through `sh -c` (the
// Shell field, looked up on PATH), the way a standalone tool with no shell
// of its own has to.
type Executor struct {
	Shell string // defaults to "sh"
}

// NewExecutor returns the os/exec-backed CmdsubstExecutor.
func NewExecutor() *Executor { return &Executor{Shell: "sh"} }

func (e *Executor) Exec(ctx context.Context, source string, applyExitStatus bool) ([]string, error) {
	shell := e.Shell
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", source)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	var lines []string
	var total int
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		total += len(line)
		if total > MaxOutputBytes {
			_ = cmd.Process.Kill()
			return nil, expand.ErrReadTooMuch
		}
		lines = append(lines, strings.TrimRight(line, "\r"))
	}

	_ = cmd.Wait() // applyExitStatus would update $status in a real shell; no such variable exists here

	return lines, nil
}
