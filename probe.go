package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// probeExecError reports an ffprobe invocation that did not exit cleanly.
type probeExecError struct {
	Path     string
	ExitCode int
	Stderr   string
}

func (e *probeExecError) Error() string {
	msg := fmt.Sprintf("ffprobe exited with code %d for %s", e.ExitCode, e.Path)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// probeParseError reports ffprobe output that is not well-formed JSON.
type probeParseError struct {
	Path string
	Err  error
}

func (e *probeParseError) Error() string {
	return fmt.Sprintf("parse ffprobe output for %s: %v", e.Path, e.Err)
}

func (e *probeParseError) Unwrap() error { return e.Err }

// inspect runs ffprobe against path and decodes the JSON report into a
// stream manifest. A probe failure is terminal for this file only; there
// are no retries and the caller moves on to the next file.
func inspect(ctx context.Context, binary, path string) (manifest, error) {
	if strings.TrimSpace(binary) == "" {
		binary = "ffprobe"
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return manifest{}, &probeExecError{
				Path:     path,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(string(exitErr.Stderr)),
			}
		}
		// Binary missing or not startable; no exit code to report.
		return manifest{}, &probeExecError{Path: path, ExitCode: -1, Stderr: err.Error()}
	}

	var m manifest
	if err := json.Unmarshal(output, &m); err != nil {
		return manifest{}, &probeParseError{Path: path, Err: err}
	}
	return m, nil
}
