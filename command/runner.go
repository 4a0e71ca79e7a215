package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	log "github.com/sirupsen/logrus"
)

var (
	ErrTimeout = errors.New("external process timed out")
	ErrFailed  = errors.New("external process failed")
)

// InvocationError carries the full invocation of a failed external process.
type InvocationError struct {
	Command  string
	Args     []string
	ExitCode int
	Stderr   string
	Attempts int
	Err      error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Command, strings.Join(e.Args, " "), e.Err)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code %d)", e.ExitCode)
	}
	if e.Attempts > 1 {
		msg += fmt.Sprintf(" after %d attempts", e.Attempts)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Runner executes blocking external processes. Timeout bounds each attempt
// (zero means no bound); failed or timed out attempts are retried up to
// MaxRetries times with exponential backoff. A missing binary is never
// retried.
type Runner struct {
	Timeout       time.Duration
	MaxRetries    int
	RetryInterval time.Duration
	Dir           string
}

func NewRunner(timeout time.Duration, maxRetries int) *Runner {
	return &Runner{Timeout: timeout, MaxRetries: maxRetries, RetryInterval: 500 * time.Millisecond}
}

// Run returns the standard output of name invoked with args.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (string, error) {
	attempts := 0
	operation := func() (string, error) {
		attempts++
		out, err := r.runOnce(ctx, name, args)
		if err == nil {
			return out, nil
		}
		var invErr *InvocationError
		if ctx.Err() != nil || (errors.As(err, &invErr) && errors.Is(invErr.Err, exec.ErrNotFound)) {
			return "", backoff.Permanent(err)
		}
		log.WithFields(log.Fields{"command": name, "args": args, "attempt": attempts}).
			WithError(err).Warn("External process failed.")
		return "", err
	}

	b := backoff.NewExponentialBackOff()
	if r.RetryInterval > 0 {
		b.InitialInterval = r.RetryInterval
	}
	out, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(r.MaxRetries+1)))
	if err != nil {
		var invErr *InvocationError
		if errors.As(err, &invErr) {
			invErr.Attempts = attempts
			return "", invErr
		}
		return "", &InvocationError{Command: name, Args: args, Attempts: attempts, Err: err}
	}
	return out, nil
}

func (r *Runner) runOnce(ctx context.Context, name string, args []string) (string, error) {
	cmdCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(cmdCtx, name, args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.WithFields(log.Fields{"command": name, "args": args}).Debug("Running external process.")
	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	invErr := &InvocationError{Command: name, Args: args, Stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		invErr.Err = exec.ErrNotFound
	case cmdCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil:
		invErr.Err = ErrTimeout
	case ctx.Err() != nil:
		invErr.Err = ctx.Err()
	case errors.As(err, &exitErr):
		invErr.ExitCode = exitErr.ExitCode()
		invErr.Err = ErrFailed
	default:
		invErr.Err = err
	}
	return "", invErr
}
