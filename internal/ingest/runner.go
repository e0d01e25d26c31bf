package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/ingestd/internal/config"
)

// waitDelay bounds how long a finished-or-cancelled invocation may keep
// waiting on its I/O pipes before Wait gives up on them.
const waitDelay = 5 * time.Second

// ToolRunner invokes the external ingestion tool once per call.
type ToolRunner interface {
	Run(ctx context.Context, reference, configPath, outputPath string) (*ProcessResult, error)
}

// Runner spawns the external packer tool. The tool's working directory is
// injected at construction, never read from the process environment at call
// time.
type Runner struct {
	binary  string
	workDir string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRunner creates a runner from tool configuration.
func NewRunner(cfg config.ToolConfig, logger *zap.Logger) *Runner {
	return &Runner{
		binary:  cfg.Binary,
		workDir: cfg.WorkDir,
		timeout: cfg.Timeout.Duration(),
		logger:  logger,
	}
}

// Run executes one tool invocation for reference against configPath,
// expecting the tool to populate outputPath.
//
// The output file is created eagerly and confirmed writable before the
// process is spawned, so scratch permission problems surface immediately
// rather than after a long external run. Arguments are passed as a discrete
// argv, never through a shell: the reference string originates from an
// untrusted caller.
//
// Stderr is buffered for diagnostics; stdout is drained and discarded (the
// artifact file is the source of truth). On timeout the tool's entire
// process group is killed and the result marked TimedOut.
//
// The returned error is non-nil only for pre-spawn scratch failures; every
// process outcome, including spawn failure, is encoded in ProcessResult.
func (r *Runner) Run(ctx context.Context, reference, configPath, outputPath string) (*ProcessResult, error) {
	f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: create output file %s: %v", ErrScratchIO, outputPath, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close output file %s: %v", ErrScratchIO, outputPath, err)
	}

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.binary, "--remote", reference, "--config", configPath, "--verbose")
	cmd.Dir = r.workDir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = io.Discard

	// The tool is the leader of its own process group, and cancellation
	// signals the whole group. Killing only the direct child would leave
	// helpers it spawned (git and friends) holding the stderr/stdout pipes,
	// keeping Run blocked past the deadline and leaking the descendants.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	// Bound the post-cancel wait on pipe I/O in case a descendant escaped
	// the group and still holds a pipe end.
	cmd.WaitDelay = waitDelay

	r.logger.Info("spawning ingestion tool",
		zap.String("binary", r.binary),
		zap.String("reference", reference),
		zap.String("config", configPath),
	)

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	result := &ProcessResult{
		ExitCode: 0,
		Stderr:   stderr.String(),
		TimedOut: errors.Is(runCtx.Err(), context.DeadlineExceeded),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// Spawn failure (binary missing, workdir invalid). No exit code
			// exists; fold the error into the diagnostic text.
			result.ExitCode = -1
			if result.Stderr != "" {
				result.Stderr += "\n"
			}
			result.Stderr += runErr.Error()
		}
	}

	r.logger.Info("ingestion tool finished",
		zap.Int("exit_code", result.ExitCode),
		zap.Bool("timed_out", result.TimedOut),
		zap.Duration("duration", duration),
	)

	return result, nil
}
