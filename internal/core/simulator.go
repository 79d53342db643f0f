package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"sched-metrics/internal/logging"
	"sched-metrics/internal/schedulers"
)

var (
	ErrBinaryNotFound = errors.New("simulator binary not found")
	ErrOutputMissing  = errors.New("simulator output file missing")
)

// Simulator runs the external scheduler binaries. The binaries write their
// trace to a fixed file name in their working directory, so runs sharing a
// work dir must not overlap.
type Simulator struct {
	workDir string
	timeout time.Duration
	logger  *slog.Logger
}

func NewSimulator(workDir string, timeout time.Duration, logger *slog.Logger) *Simulator {
	if workDir == "" {
		workDir = "."
	}
	return &Simulator{workDir: workDir, timeout: timeout, logger: logger}
}

// Resolve finds the binary as given or inside the work dir. PATH is not
// searched: a scheduler whose binary is not present locally is skipped.
func (s *Simulator) Resolve(binary string) (string, error) {
	if filepath.IsAbs(binary) {
		if isFile(binary) {
			return binary, nil
		}
		return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, binary)
	}
	local := filepath.Join(s.workDir, binary)
	if isFile(local) {
		return filepath.Abs(local)
	}
	return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, binary)
}

// Run executes variant on the workload at inputPath and returns the trace
// it produced. The simulator's exit status is logged but not fatal: the
// trace it managed to write is still analysed.
func (s *Simulator) Run(ctx context.Context, variant schedulers.Variant, inputPath string) (string, error) {
	binary, err := s.Resolve(variant.Binary)
	if err != nil {
		return "", err
	}
	input, err := filepath.Abs(inputPath)
	if err != nil {
		return "", err
	}

	outputPath := filepath.Join(s.workDir, variant.OutputFile())
	if err := os.Remove(outputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("remove stale output %s: %w", outputPath, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, binary, input)
	cmd.Dir = s.workDir
	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("run %s: %w", variant.Name, ctx.Err())
		}
		s.logger.Warn("simulator exited with error",
			slog.String("scheduler", variant.Name),
			slog.String("input", inputPath),
			logging.ErrAttr(err),
		)
	}
	s.logger.Debug("simulator finished",
		slog.String("scheduler", variant.Name),
		slog.String("input", inputPath),
		slog.Duration("elapsed", time.Since(start)),
	)

	content, err := os.ReadFile(outputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrOutputMissing, outputPath)
		}
		return "", err
	}
	return string(content), nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
