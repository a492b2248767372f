package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Scored, and the status gate (if any) was met
	ExitGateFailed = 1 // Status is below --fail-under
	ExitError      = 2 // Configuration or runtime error
)

// StatusGateError indicates that scoring succeeded but the resulting status
// is worse than the one requested with --fail-under.
type StatusGateError struct {
	Message string
}

func (e *StatusGateError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var gateErr *StatusGateError
	if errors.As(err, &gateErr) {
		return ExitGateFailed
	}
	return ExitError
}
