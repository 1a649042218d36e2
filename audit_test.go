package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), auditLogName)
	audit := &auditLog{path: path}

	tracks := []audioTrack{
		{Index: 1, Language: "de", Title: "Deutsch", Codec: "ac3", Channels: 6},
		{Index: 2, Language: "ja", Codec: "aac", Channels: 2},
	}
	require.NoError(t, audit.record("/media/movie.mkv", tracks))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assert.Equal(t, "/media/movie.mkv", lines[0], "first line is the file path")
	assert.Equal(t, "---", lines[len(lines)-1], "block ends with the separator")
	assert.Contains(t, text, `"language": "de"`)
	assert.Contains(t, text, `"index": 2`)
}

func TestAuditLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), auditLogName)
	audit := &auditLog{path: path}

	require.NoError(t, audit.record("/media/a.mkv", []audioTrack{{Index: 1, Language: "fr"}}))
	require.NoError(t, audit.record("/media/b.mkv", []audioTrack{{Index: 1, Language: "de"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Equal(t, 2, strings.Count(text, "---\n"))
	assert.Less(t, strings.Index(text, "/media/a.mkv"), strings.Index(text, "/media/b.mkv"))
}
