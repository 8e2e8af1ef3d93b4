package runner_test

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/qureni/trustgen/internal/runner"
)

func TestExecRunner_CapturesStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test shells out to POSIX tools")
	}
	r := runner.ExecRunner{}
	res, err := r.Run(context.Background(), runner.Command{Name: "sh", Args: []string{"-c", "echo hello"}})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := strings.TrimSpace(string(res.Stdout)); got != "hello" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestExecRunner_NonZeroExitIsToolError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test shells out to POSIX tools")
	}
	r := runner.ExecRunner{}
	_, err := r.Run(context.Background(), runner.Command{Name: "sh", Args: []string{"-c", "echo boom >&2; exit 3"}})
	if err == nil {
		t.Fatal("expected an error for a non-zero exit")
	}
	var te *runner.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected *ToolError, got %T: %v", err, err)
	}
	if !strings.Contains(te.Error(), "boom") {
		t.Fatalf("expected stderr in error message, got: %v", te)
	}
}

func TestCommand_String(t *testing.T) {
	c := runner.Command{Name: "gpg", Args: []string{"--version"}}
	if c.String() != "gpg --version" {
		t.Fatalf("unexpected command string: %q", c.String())
	}
}
