package main

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Container formats ffmpeg can remux in place.
var defaultVideoExtensions = []string{
	".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm",
	".m4v", ".3gp", ".ogv", ".ts", ".mts", ".m2ts",
}

// findVideoFiles walks root recursively and returns every file whose
// extension is in the allowed set, sorted for a deterministic batch
// order.
func findVideoFiles(root string, extensions []string) ([]string, error) {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(path))]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
