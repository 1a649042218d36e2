package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(newLineHandler(io.Discard, slog.LevelDebug))
}

func writeVideoFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movie.mkv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRemuxArgs(t *testing.T) {
	args := remuxArgs("/tmp/a.mkv.backup", "/tmp/a.mkv", []int{1, 3})
	assert.Equal(t, []string{
		"-i", "/tmp/a.mkv.backup",
		"-map", "0:v",
		"-map", "0:1",
		"-map", "0:3",
		"-c:v", "copy",
		"-c:a", "copy",
		"-y", "/tmp/a.mkv",
	}, args)
}

func TestRewriteSuccess(t *testing.T) {
	path := writeVideoFixture(t, "original content")

	// Stands in for ffmpeg: writes the output path (last argument).
	bin := fakeTool(t, `for a in "$@"; do out="$a"; done
printf 'remuxed content' > "$out"`)

	rw := &rewriter{ffmpegBin: bin, log: testLogger()}
	require.NoError(t, rw.rewrite(context.Background(), path, []int{1}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "remuxed content", string(got))

	_, err = os.Lstat(path + ".backup")
	assert.True(t, os.IsNotExist(err), "backup must not survive a successful rewrite")
}

func TestRewriteTransformFailureRollsBack(t *testing.T) {
	path := writeVideoFixture(t, "original content")

	// Writes a partial output, then fails.
	bin := fakeTool(t, `for a in "$@"; do out="$a"; done
printf 'partial garbage' > "$out"
echo "muxing failed" >&2
exit 1`)

	rw := &rewriter{ffmpegBin: bin, log: testLogger()}
	err := rw.rewrite(context.Background(), path, []int{1})

	var tErr *transformError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, 1, tErr.ExitCode)
	assert.Contains(t, tErr.Stderr, "muxing failed")

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "original content", string(got), "rollback must restore the original bytes")

	_, statErr := os.Lstat(path + ".backup")
	assert.True(t, os.IsNotExist(statErr), "backup must not survive a rollback")
}

func TestRewriteFailureWithoutPartialOutput(t *testing.T) {
	path := writeVideoFixture(t, "original content")
	bin := fakeTool(t, `exit 2`)

	rw := &rewriter{ffmpegBin: bin, log: testLogger()}
	err := rw.rewrite(context.Background(), path, []int{1})

	var tErr *transformError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, 2, tErr.ExitCode)

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "original content", string(got))
}

func TestRewriteStaleBackupAborts(t *testing.T) {
	path := writeVideoFixture(t, "original content")
	require.NoError(t, os.WriteFile(path+".backup", []byte("stale"), 0o644))

	rw := &rewriter{ffmpegBin: "ffmpeg-should-not-run", log: testLogger()}
	err := rw.rewrite(context.Background(), path, []int{1})

	var bErr *backupError
	require.ErrorAs(t, err, &bErr)

	// Original untouched, stale backup left for the operator.
	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "original content", string(got))

	stale, readErr := os.ReadFile(path + ".backup")
	require.NoError(t, readErr)
	assert.Equal(t, "stale", string(stale))
}

func TestRewriteMissingFileAborts(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.mkv")
	rw := &rewriter{ffmpegBin: "ffmpeg-should-not-run", log: testLogger()}

	var bErr *backupError
	require.ErrorAs(t, rw.rewrite(context.Background(), missing, []int{1}), &bErr)
}
