package executil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/gopak/scoopx/internal/config"
)

type Result struct {
	Stdout string
	Stderr string
	Code   int
	Err    error
}

// Runner executes scripts through the host shell.
type Runner interface {
	// Capture runs script and collects its output streams.
	Capture(ctx context.Context, script string) Result
	// Stream runs script with the terminal attached and returns its exit code.
	Stream(ctx context.Context, script string) (int, error)
}

type Shell struct {
	Program string
	Args    []string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

func NewShell(c config.Shell) *Shell {
	return &Shell{
		Program: c.Program,
		Args:    append([]string{}, c.Args...),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

func (s *Shell) command(ctx context.Context, script string) *exec.Cmd {
	args := append(append([]string{}, s.Args...), script)
	return exec.CommandContext(ctx, s.Program, args...)
}

func (s *Shell) Capture(ctx context.Context, script string) Result {
	cmd := s.command(ctx, script)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	code, err := exitCode(err)
	return Result{Stdout: out.String(), Stderr: errb.String(), Code: code, Err: err}
}

func (s *Shell) Stream(ctx context.Context, script string) (int, error) {
	cmd := s.command(ctx, script)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	return exitCode(cmd.Run())
}

// exitCode separates a non-zero exit, which is not an error here, from a
// failure to start or wait for the process.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if ee.ExitCode() >= 0 {
			return ee.ExitCode(), nil
		}
		return 1, err
	}
	return 1, err
}
