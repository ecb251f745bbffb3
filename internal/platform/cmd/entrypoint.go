// Package cmd runs a bowling command with tracing and maps its result to a
// process exit code.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/xtding233/bowling-backend/internal/platform/otel"
)

// Service names reported on spans.
const (
	ServiceScore  = "score"
	ServiceServer = "server"
)

const flushTimeout = 5 * time.Second

// Command is one traced run of a CLI.
type Command struct {
	Service string
	Run     func(context.Context) error
	// Reported holds errors the command already explained on its own output.
	// They fail the process without another message.
	Reported []error
	Stderr   io.Writer
}

// Execute runs the command and returns the exit code: 0 on success, 1 on any
// error. Unreported errors are written to Stderr as "Error: ...".
func (c Command) Execute(ctx context.Context) int {
	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	err := c.traced(ctx)
	if err == nil {
		return 0
	}
	for _, reported := range c.Reported {
		if errors.Is(err, reported) {
			return 1
		}
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func (c Command) traced(ctx context.Context) error {
	service := strings.TrimSpace(c.Service)
	if service == "" {
		return errors.New("service name is required")
	}
	if c.Run == nil {
		return errors.New("run function is required")
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("%s telemetry: %w", service, err)
	}
	runErr := c.Run(ctx)

	flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := shutdown(flushCtx); err != nil && runErr == nil {
		return fmt.Errorf("%s telemetry flush: %w", service, err)
	}
	return runErr
}
