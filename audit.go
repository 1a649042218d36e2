package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

const auditLogName = "no_english_tracks.log"

// auditLog records files whose audio tracks matched neither the language
// tag nor the title heuristic. One block per file: the path, an indented
// JSON dump of every track descriptor, and a separator line. The file is
// opened, appended, and closed per write; the batch is sequential so no
// lock is held across files.
type auditLog struct {
	path string
}

func (a *auditLog) record(filePath string, tracks []audioTrack) error {
	dump, err := json.MarshalIndent(tracks, "  ", "  ")
	if err != nil {
		return fmt.Errorf("marshal track list: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(filePath)
	buf.WriteByte('\n')
	buf.WriteString("  ")
	buf.Write(dump)
	buf.WriteByte('\n')
	buf.WriteString("---\n")

	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("append audit log: %w", err)
	}
	return f.Close()
}
