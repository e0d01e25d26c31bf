package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/ingestd/internal/config"
	"github.com/fyrsmithlabs/ingestd/internal/reference"
)

// Service runs the ingestion pipeline end to end. One pipeline instance
// executes per request; distinct requests share nothing but the scratch
// directories.
type Service struct {
	synth   *Synthesizer
	runner  ToolRunner
	scratch config.ScratchConfig
	timeout time.Duration
	logger  *zap.Logger
	metrics *Metrics
}

// NewService wires the pipeline stages. metrics may be nil.
func NewService(cfg *config.Config, runner ToolRunner, metrics *Metrics, logger *zap.Logger) *Service {
	return &Service{
		synth:   NewSynthesizer(cfg.Scratch.ConfigDir),
		runner:  runner,
		scratch: cfg.Scratch,
		timeout: cfg.Tool.Timeout.Duration(),
		logger:  logger,
		metrics: metrics,
	}
}

// Ingest executes one request: validate, synthesize, run, materialize.
//
// Validation happens before anything touches the filesystem, so rejected
// references leave zero scratch artifacts behind. Both scratch artifacts are
// deleted on every exit path unless retention is configured, in which case
// retention is logged per request.
//
// Failures are classified per errors.go. No retries happen here; each
// invocation consumes fresh unique scratch names, so callers may retry
// safely.
func (s *Service) Ingest(ctx context.Context, req *Request) (*Result, error) {
	start := time.Now()
	result, err := s.ingest(ctx, req)
	s.metrics.observe(err, time.Since(start))
	return result, err
}

func (s *Service) ingest(ctx context.Context, req *Request) (*Result, error) {
	if !reference.IsSupported(req.Reference) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReference, req.Reference)
	}

	if err := os.MkdirAll(s.scratch.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create output dir %s: %v", ErrScratchIO, s.scratch.OutputDir, err)
	}
	outputPath := filepath.Join(s.scratch.OutputDir, fmt.Sprintf("ingest-%s.output.txt", uuid.NewString()))

	configPath, err := s.synth.Synthesize(req, outputPath)
	if err != nil {
		return nil, err
	}
	defer s.cleanup(configPath, outputPath)

	proc, err := s.runner.Run(ctx, req.Reference, configPath, outputPath)
	if err != nil {
		return nil, err
	}

	if proc.TimedOut {
		return nil, fmt.Errorf("%w after %s: %s", ErrProcessTimeout, s.timeout, diagnostic(proc.Stderr))
	}
	if proc.ExitCode != 0 {
		return nil, fmt.Errorf("%w: exit code %d: %s", ErrProcessFailed, proc.ExitCode, diagnostic(proc.Stderr))
	}

	result, err := Materialize(outputPath)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ingestion complete",
		zap.String("reference", req.Reference),
		zap.String("output", outputPath),
		zap.Int("content_bytes", len(result.Content)),
	)

	return result, nil
}

// cleanup removes both scratch artifacts, or logs retention when configured.
func (s *Service) cleanup(configPath, outputPath string) {
	if s.scratch.Retain {
		s.logger.Info("retaining scratch artifacts",
			zap.String("config", configPath),
			zap.String("output", outputPath),
		)
		return
	}
	for _, path := range []string{configPath, outputPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove scratch artifact",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}
}

// diagnostic trims captured stderr for inclusion in error messages.
func diagnostic(stderr string) string {
	text := strings.TrimSpace(stderr)
	if text == "" {
		return "(no diagnostic output)"
	}
	return text
}
