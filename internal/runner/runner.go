// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Package runner wraps external process execution behind a small interface so
// the gpg and openssl layers can be tested without the real binaries.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/qureni/trustgen/internal/logging"
)

// Command describes a single external tool invocation.
type Command struct {
	Name  string
	Args  []string
	Dir   string
	Env   []string // appended to the inherited environment
	Stdin io.Reader
}

// String renders the command the way a shell user would type it.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result holds the captured output of a completed invocation.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// Runner executes external commands. Implementations must be safe for
// sequential reuse; Trustgen never runs tools concurrently.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ToolError is returned when an external tool exits non-zero. It carries the
// tool's stderr so the failure can be surfaced verbatim to the user.
type ToolError struct {
	Command Command
	Stderr  string
	Err     error
}

// Error formats the failure including the invoked command line and stderr.
func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Command.String(), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Unwrap exposes the underlying exec error.
func (e *ToolError) Unwrap() error { return e.Err }

// ExecRunner runs commands with os/exec. It is the production Runner.
type ExecRunner struct{}

// Run executes the command, blocking until it exits. Stdout and stderr are
// captured in full; a non-zero exit produces a *ToolError.
func (ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	ec := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	ec.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		ec.Env = append(os.Environ(), cmd.Env...)
	}
	if cmd.Stdin != nil {
		ec.Stdin = cmd.Stdin
	}

	var stdout, stderr bytes.Buffer
	ec.Stdout = &stdout
	ec.Stderr = &stderr

	logging.Debugf("runner: exec %s", cmd.String())
	err := ec.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		return res, &ToolError{Command: cmd, Stderr: stderr.String(), Err: err}
	}
	return res, nil
}

// LookPath reports the resolved path for a tool name, or an error when the
// binary is not installed. Used for friendlier startup diagnostics.
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("external tool %q not found in PATH: %w", name, err)
	}
	return path, nil
}
