package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LoadCounters reads the persisted counter file. A missing, unreadable or
// corrupt file is logged and treated as zero-initialized so startup never
// fails on bad counter data.
func LoadCounters(path string, logger *zap.Logger) map[string]int {
	counts := make(map[string]int)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read counter file, starting from zero", zap.String("path", path), zap.Error(err))
		}
		return counts
	}

	if err := json.Unmarshal(data, &counts); err != nil {
		logger.Warn("corrupt counter file, starting from zero", zap.String("path", path), zap.Error(err))
		return make(map[string]int)
	}
	return counts
}

// SaveCounters rewrites the counter file with the given values.
func SaveCounters(path string, counts map[string]int) error {
	data, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
