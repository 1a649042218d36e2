package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// backupError means the original could not be set aside. Nothing was
// modified; the file is safe to retry.
type backupError struct {
	Path string
	Err  error
}

func (e *backupError) Error() string {
	return fmt.Sprintf("backup %s: %v", e.Path, e.Err)
}

func (e *backupError) Unwrap() error { return e.Err }

// transformError means the remux tool failed. The rollback has already
// run: the original content is back at its path.
type transformError struct {
	Path     string
	ExitCode int
	Stderr   string
}

func (e *transformError) Error() string {
	msg := fmt.Sprintf("remux of %s exited with code %d", e.Path, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// rollbackError is the one state requiring operator intervention: the
// pre-processing content survives only at BackupPath.
type rollbackError struct {
	Path       string
	BackupPath string
	Err        error
}

func (e *rollbackError) Error() string {
	return fmt.Sprintf("rollback of %s failed, original preserved at %s: %v", e.Path, e.BackupPath, e.Err)
}

func (e *rollbackError) Unwrap() error { return e.Err }

// rewriter runs the backup-remux-verify-commit/rollback protocol around
// ffmpeg for one file at a time.
type rewriter struct {
	ffmpegBin string
	log       *slog.Logger
}

// remuxArgs builds the ffmpeg argument list: every video stream plus
// exactly the kept audio streams addressed by absolute index, both
// stream-copied, overwriting the output path.
func remuxArgs(backupPath, outputPath string, keep []int) []string {
	args := []string{"-i", backupPath, "-map", "0:v"}
	for _, idx := range keep {
		args = append(args, "-map", "0:"+strconv.Itoa(idx))
	}
	args = append(args,
		"-c:v", "copy",
		"-c:a", "copy",
		"-y",
		outputPath)
	return args
}

// rewrite replaces the file at path with a remuxed copy holding only the
// kept audio streams. Invariant on every exit: exactly one of
// {path, path.backup} holds the valid pre-processing content - both
// exist only transiently while ffmpeg writes the new output.
//
// The protocol:
//  1. rename path -> path.backup (abort untouched on failure, including
//     a stale backup left by a crashed prior run)
//  2. ffmpeg reads the backup, writes the original path
//  3. exit code 0 is the sole success signal
//  4. success: delete the backup (failure there is a logged nuisance,
//     not data loss)
//  5. failure: remove any partial output, rename the backup back
func (rw *rewriter) rewrite(ctx context.Context, path string, keep []int) error {
	backupPath := path + ".backup"

	if _, err := os.Lstat(backupPath); err == nil {
		return &backupError{Path: path, Err: fmt.Errorf("%s already exists, likely from an interrupted run", backupPath)}
	}
	if err := os.Rename(path, backupPath); err != nil {
		return &backupError{Path: path, Err: err}
	}
	rw.log.Debug("backup created", "path", path, "backup", backupPath)

	cmd := exec.CommandContext(ctx, rw.ffmpegBin, remuxArgs(backupPath, path, keep)...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	if runErr == nil {
		if err := os.Remove(backupPath); err != nil {
			// A stray backup file is a recoverable nuisance, not data loss.
			rw.log.Warn("could not remove backup after successful remux",
				"backup", backupPath, "error", err)
		}
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	rw.log.Error("remux failed, rolling back",
		"path", path, "exit_code", exitCode, "error", runErr)

	if err := rw.rollback(path, backupPath); err != nil {
		return err
	}
	return &transformError{Path: path, ExitCode: exitCode, Stderr: strings.TrimSpace(stderr.String())}
}

// rollback deletes any partially-written output and restores the backup.
// Its own failure is escalated: the file stays in the backup-renamed
// state and no automatic recovery is attempted.
func (rw *rewriter) rollback(path, backupPath string) error {
	if _, err := os.Lstat(path); err == nil {
		if err := os.Remove(path); err != nil {
			rw.log.Error("rollback could not remove partial output, manual restore required",
				"path", path, "backup", backupPath, "error", err)
			return &rollbackError{Path: path, BackupPath: backupPath, Err: err}
		}
	}
	if err := os.Rename(backupPath, path); err != nil {
		rw.log.Error("rollback rename failed, manual restore required",
			"path", path, "backup", backupPath, "error", err)
		return &rollbackError{Path: path, BackupPath: backupPath, Err: err}
	}
	rw.log.Info("original restored after failed remux", "path", path)
	return nil
}
