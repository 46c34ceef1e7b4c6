// Package faults defines the error markers shared by the pipeline and the
// mapping from those markers to process exit codes.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks a required collaborator that is missing or
	// misconfigured. Runs stop when they hit one.
	ErrConfiguration = errors.New("configuration error")
	// ErrParse marks a single artifact that could not be read.
	ErrParse = errors.New("parse error")
	// ErrFileOperation marks a failed copy, move or rename of one asset.
	ErrFileOperation = errors.New("file operation error")
)

// Wrap builds an error message that includes stage context while tagging it
// with marker for later classification.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFileOperation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration):
		return 2
	default:
		return 1
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{stage, operation, message} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
