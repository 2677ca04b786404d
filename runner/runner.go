package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Outcome reports the result of a single command invocation.
//
// Exactly one of three outcomes is represented: success (ExitCode==0),
// a non-zero exit (ExitCode!=0, Stderr may be empty), or a timeout
// (TimedOut==true, ExitCode is meaningless in that case).
type Outcome struct {
	ExitCode int
	Stderr   string
	TimedOut bool
}

// Runner executes a command and reports how it finished.
//
// Run must not block past timeout: once exceeded, the underlying
// process is killed and Run returns an Outcome with TimedOut set.
// A non-nil error indicates Run itself could not determine an
// outcome (for example, the shell could not be started) and is
// distinct from the command's own exit status.
type Runner interface {
	Run(ctx context.Context, command string, timeout time.Duration) (Outcome, error)
}

// Shell runs command through the platform shell (/bin/sh -c by
// default) and reports its exit code, captured stderr, and whether it
// was killed for exceeding timeout.
type Shell struct {
	// Path is the shell binary used to interpret Command. Defaults to
	// "/bin/sh" when empty.
	Path string
}

// waitDelay is how long Run keeps reading stderr after the shell has
// exited or been killed before it closes the pipe and returns.
const waitDelay = 100 * time.Millisecond

// NewShell returns a Shell runner using the default shell.
func NewShell() *Shell {
	return &Shell{}
}

func (s *Shell) path() string {
	if s.Path != "" {
		return s.Path
	}
	return "/bin/sh"
}

// Run invokes command via "<shell> -c <command>", enforcing timeout as
// a hard wall-clock bound: once timeout passes, the shell is killed and
// Run returns within waitDelay, even if a child the shell started still
// holds stderr open.
func (s *Shell) Run(ctx context.Context, command string, timeout time.Duration) (Outcome, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.path(), "-c", command)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return Outcome{TimedOut: true}, nil
	}
	if err == nil || errors.Is(err, exec.ErrWaitDelay) {
		return Outcome{ExitCode: 0}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Outcome{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}, nil
	}
	return Outcome{}, err
}
