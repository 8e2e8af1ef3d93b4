// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/qureni/trustgen/internal/runner"
)

// FakeResponse is a scripted answer for one external invocation.
type FakeResponse struct {
	// Match is a substring of the rendered command line; the first response
	// whose Match is contained in the command is consumed.
	Match  string
	Stdout string
	Stderr string
	Err    error
}

// FakeRunner is a scripted in-memory runner used by tests to avoid invoking
// real gpg/openssl binaries. Responses are matched by command substring and
// consumed in order of registration.
type FakeRunner struct {
	Responses []FakeResponse
	Calls     []runner.Command
}

// Run records the call and returns the first unconsumed matching response.
func (f *FakeRunner) Run(_ context.Context, cmd runner.Command) (runner.Result, error) {
	f.Calls = append(f.Calls, cmd)
	line := cmd.String()
	for i, resp := range f.Responses {
		if resp.Match == "" || strings.Contains(line, resp.Match) {
			f.Responses = append(f.Responses[:i], f.Responses[i+1:]...)
			res := runner.Result{Stdout: []byte(resp.Stdout), Stderr: []byte(resp.Stderr)}
			if resp.Err != nil {
				return res, &runner.ToolError{Command: cmd, Stderr: resp.Stderr, Err: resp.Err}
			}
			return res, nil
		}
	}
	return runner.Result{}, fmt.Errorf("unexpected command: %s", line)
}

// CalledWith reports whether any recorded call contains the given substring.
func (f *FakeRunner) CalledWith(sub string) bool {
	for _, c := range f.Calls {
		if strings.Contains(c.String(), sub) {
			return true
		}
	}
	return false
}
