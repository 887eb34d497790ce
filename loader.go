package matrix

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dora-dhcp/compat-matrix/types"
)

// LoadResultSet reads a collector-produced results.json. A missing file or
// empty path is not an error at this layer and yields nil; malformed JSON is
// a pipeline error and propagates.
func LoadResultSet(path string) (*types.ResultSet, error) {
	data, err := readIfExists(path)
	if err != nil || data == nil {
		return nil, err
	}
	var rs types.ResultSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse results file %s: %w", path, err)
	}
	return &rs, nil
}

// LoadCombined reads a previously written combined.json, with the same
// missing-file semantics as LoadResultSet.
func LoadCombined(path string) (*types.CombinedMatrix, error) {
	data, err := readIfExists(path)
	if err != nil || data == nil {
		return nil, err
	}
	var m types.CombinedMatrix
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse combined file %s: %w", path, err)
	}
	return &m, nil
}

func readIfExists(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes content to path, creating parent directories as needed.
func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
