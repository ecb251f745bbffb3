package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

var errShown = errors.New("already shown")

func execute(t *testing.T, c Command) (int, string) {
	t.Helper()
	t.Setenv("BOWLING_OTEL_ENDPOINT", "")
	stderr := &bytes.Buffer{}
	c.Stderr = stderr
	return c.Execute(context.Background()), stderr.String()
}

func TestExecuteSuccess(t *testing.T) {
	called := false
	code, stderr := execute(t, Command{Service: ServiceScore, Run: func(context.Context) error {
		called = true
		return nil
	}})
	if code != 0 || stderr != "" || !called {
		t.Fatalf("code=%d stderr=%q called=%v", code, stderr, called)
	}
}

func TestExecutePrintsUnreportedError(t *testing.T) {
	code, stderr := execute(t, Command{Service: ServiceServer, Run: func(context.Context) error {
		return errors.New("listen: address in use")
	}})
	if code != 1 || stderr != "Error: listen: address in use\n" {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
}

func TestExecuteQuietForReportedError(t *testing.T) {
	code, stderr := execute(t, Command{
		Service:  ServiceScore,
		Run:      func(context.Context) error { return errors.Join(errShown) },
		Reported: []error{errShown},
	})
	if code != 1 || stderr != "" {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
}

func TestExecuteValidatesCommand(t *testing.T) {
	if code, stderr := execute(t, Command{Service: "  ", Run: func(context.Context) error { return nil }}); code != 1 || !strings.Contains(stderr, "service name") {
		t.Fatalf("blank service: code=%d stderr=%q", code, stderr)
	}
	if code, stderr := execute(t, Command{Service: ServiceScore}); code != 1 || !strings.Contains(stderr, "run function") {
		t.Fatalf("nil run: code=%d stderr=%q", code, stderr)
	}
}
