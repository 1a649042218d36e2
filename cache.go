package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const cacheFileName = ".audiopruner.cache"

// cache remembers files a previous run already handled so a resumed
// batch can skip them without reprobing. Keyed by absolute path, valued
// by modtime: a file touched since it was recorded is processed again.
// With an empty path the cache is disabled and every operation is a
// no-op, which is the default - a plain rerun reclassifies everything.
type cache struct {
	path  string
	items map[string]int64
}

func newCache(path string) *cache {
	return &cache{path: path, items: make(map[string]int64)}
}

// loadCache reads an existing cache file. A missing file is a fresh
// start, not an error.
func loadCache(path string) (*cache, error) {
	c := newCache(path)
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("read cache %s: %w", path, err)
	}
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c.items); err != nil {
		return nil, fmt.Errorf("parse cache %s: %w", path, err)
	}
	return c, nil
}

// check reports whether filePath was recorded and is unchanged on disk.
func (c *cache) check(filePath string) bool {
	if c.path == "" {
		return false
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return false
	}
	recorded, ok := c.items[absPath]
	if !ok {
		return false
	}
	stat, err := os.Stat(absPath)
	if err != nil {
		return false
	}
	return stat.ModTime().Unix() == recorded
}

// update records filePath with its current modtime.
func (c *cache) update(filePath string) error {
	if c.path == "" {
		return nil
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}
	stat, err := os.Stat(absPath)
	if err != nil {
		return err
	}
	c.items[absPath] = stat.ModTime().Unix()
	return nil
}

// save writes the cache atomically via a temp file sibling.
func (c *cache) save() error {
	if c.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(c.items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write cache temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}
