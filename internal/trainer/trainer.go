// Package trainer invokes the external model-training process behind a narrow
// interface. The trainer is an opaque collaborator: it rewrites the prediction
// summary artifacts on disk and this package only reports whether the run
// finished, timed out, or failed.
package trainer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/taetu445/RescueBites/internal/pkg/logger"
)

// ErrTimeout indicates the trainer exceeded its deadline. Callers may retry.
var ErrTimeout = errors.New("trainer: timed out")

// stderrExcerptLen bounds the diagnostic excerpt carried in failure errors.
const stderrExcerptLen = 200

// Runner triggers a model recalibration.
type Runner interface {
	Run(ctx context.Context) error
}

// Trainer runs a configured command line in a working directory with a
// bounded timeout.
type Trainer struct {
	command string
	dir     string
	timeout time.Duration
	log     *logger.Logger
}

// New creates a Trainer for the given command line, working directory, and timeout.
func New(command, dir string, timeout time.Duration, l *logger.Logger) *Trainer {
	return &Trainer{command: command, dir: dir, timeout: timeout, log: l}
}

// Run executes the trainer and waits for it to exit. It returns ErrTimeout when
// the deadline expires, or an error carrying a truncated stderr excerpt when the
// process fails.
func (t *Trainer) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	parts := strings.Fields(t.command)
	if len(parts) == 0 {
		return errors.New("trainer: empty command")
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = t.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.log.Sugar().Errorf("Model training timed out after %s", time.Since(start))
		return ErrTimeout
	}
	if err != nil {
		excerpt := stderr.String()
		if len(excerpt) > stderrExcerptLen {
			excerpt = excerpt[:stderrExcerptLen]
		}
		t.log.Sugar().Errorf("Model training failed: %s", excerpt)
		return fmt.Errorf("trainer: %w: %s", err, excerpt)
	}

	t.log.Sugar().Infof("Model training finished in %s", time.Since(start))
	return nil
}
