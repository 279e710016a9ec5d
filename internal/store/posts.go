package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/thibautnext/x-growth-extension/internal/config"
	"github.com/thibautnext/x-growth-extension/internal/types"
)

// ScoredPostsCacheDir returns the path to the scored-posts cache directory.
func ScoredPostsCacheDir() (string, error) {
	cacheDir, err := config.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "posts"), nil
}

// SaveScoredPosts serializes one pass's scored posts to a timestamped JSON
// file for debugging. Returns the path to the saved file.
func SaveScoredPosts(posts []types.ScoredPost) (string, error) {
	dir, err := ScoredPostsCacheDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	// Dashes instead of colons for filesystem compatibility
	filename := time.Now().Format("2006-01-02T15-04-05") + ".json"
	path := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}
