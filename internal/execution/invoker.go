package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"contracheck/internal/config"
	"contracheck/internal/domain"
)

// waitDelay bounds how long pipes may stay open once a detector with a deadline
// has exited or been killed. Without a deadline output is always drained fully.
const waitDelay = 2 * time.Second

// Detector invokes the detector for one fixture pair in one mode
type Detector interface {
	Invoke(ctx context.Context, pair domain.FixturePair, mode domain.ExecutionMode) domain.InvocationResult
}

// Invoker runs the external detector executable
type Invoker struct {
	path    string
	modeEnv string
	modeID  func(domain.ExecutionMode) string
	timeout time.Duration
}

// NewInvoker creates a new Invoker from the configuration
func NewInvoker(cfg *config.Config) *Invoker {
	return &Invoker{
		path:    cfg.GetDetectorPath(),
		modeEnv: cfg.ModeEnv,
		modeID:  cfg.ModeID,
		timeout: cfg.Timeout,
	}
}

// Path returns the detector executable path
func (inv *Invoker) Path() string {
	return inv.path
}

// CheckExecutable verifies that path names a runnable regular file.
func CheckExecutable(path string) error {
	missing := func(reason string) error {
		return &domain.MissingExecutableError{Path: path, Reason: reason, Hint: config.DetectorBuildHint}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return missing("no such file")
		}
		return missing(err.Error())
	}
	if info.IsDir() {
		return missing("is a directory")
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return missing("not executable")
	}
	return nil
}

// Invoke runs `<detector> <implementation> <documentation>` with the mode
// variable set and blocks until the process exits and its output is drained.
func (inv *Invoker) Invoke(ctx context.Context, pair domain.FixturePair, mode domain.ExecutionMode) domain.InvocationResult {
	if inv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.timeout)
		defer cancel()
	}

	// #nosec G204 -- the detector path and fixture arguments come from local configuration.
	cmd := exec.CommandContext(ctx, inv.path, pair.Args()...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("%s=%s", inv.modeEnv, inv.modeID(mode)))
	if inv.timeout > 0 {
		cmd.WaitDelay = waitDelay
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := domain.InvocationResult{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
		result.Status = cmd.ProcessState.String()
	}

	if err == nil {
		return result
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			result.TimedOut = true
			return result
		}
		result.SpawnError = fmt.Errorf("invocation cancelled: %w", ctxErr)
		return result
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The detector ran; its status is the verdict
		return result
	}

	if errors.Is(err, exec.ErrWaitDelay) {
		// The detector exited but a descendant kept its output open past the
		// deadline's grace period; the status stands, output may be cut short
		result.Stderr += fmt.Sprintf("\n[contracheck] output truncated: %v\n", err)
		return result
	}

	result.SpawnError = fmt.Errorf("start %s: %w", inv.path, err)
	return result
}
