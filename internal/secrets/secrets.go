// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key
// name and the file contents (trimmed) are the value.
//
// The HTTP host accepts bearer tokens from every file named api-key*, so keys
// can be rotated by adding a new file before removing the old one.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// APIKeyPrefix marks secret files that hold HTTP bearer tokens.
const APIKeyPrefix = "api-key"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, log *zap.Logger) (map[string]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// APIKeys returns the distinct values of every api-key* secret, ordered by
// secret name.
func APIKeys(secrets map[string]string) []string {
	names := make([]string, 0, len(secrets))
	for name := range secrets {
		if strings.HasPrefix(name, APIKeyPrefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	seen := make(map[string]bool, len(names))
	keys := make([]string, 0, len(names))
	for _, name := range names {
		if v := secrets[name]; !seen[v] {
			seen[v] = true
			keys = append(keys, v)
		}
	}
	return keys
}
