package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool writes a shell script standing in for an external binary.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "tool.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestInspectParsesStreams(t *testing.T) {
	bin := fakeTool(t, `cat <<'EOF'
{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264"},
    {"index": 1, "codec_type": "audio", "codec_name": "aac", "channels": 2,
     "tags": {"language": "eng", "title": "Stereo"}}
  ],
  "format": {"filename": "in.mkv", "nb_streams": 2, "format_name": "matroska"}
}
EOF`)

	m, err := inspect(context.Background(), bin, "in.mkv")
	require.NoError(t, err)
	require.Len(t, m.Streams, 2)
	assert.Equal(t, "audio", m.Streams[1].CodecType)
	assert.Equal(t, "eng", m.Streams[1].Tags["language"])
	assert.Equal(t, "matroska", m.Format.FormatName)
}

func TestInspectExecutionError(t *testing.T) {
	bin := fakeTool(t, `echo "in.mkv: Invalid data found" >&2
exit 3`)

	_, err := inspect(context.Background(), bin, "in.mkv")
	var execErr *probeExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 3, execErr.ExitCode)
	assert.Contains(t, execErr.Stderr, "Invalid data found")
	assert.Equal(t, "in.mkv", execErr.Path)
}

func TestInspectMissingBinary(t *testing.T) {
	_, err := inspect(context.Background(), filepath.Join(t.TempDir(), "nope"), "in.mkv")
	var execErr *probeExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, -1, execErr.ExitCode)
}

func TestInspectParseError(t *testing.T) {
	bin := fakeTool(t, `echo "this is not json"`)

	_, err := inspect(context.Background(), bin, "in.mkv")
	var parseErr *probeParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "in.mkv", parseErr.Path)

	var execErr *probeExecError
	assert.False(t, errors.As(err, &execErr))
}
