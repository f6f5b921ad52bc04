// Package security validates user-supplied file paths before they reach the
// filesystem: the SQLite database location and CLI input files.
package security

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// forbidden are shell metacharacters never expected in a data file path.
var forbidden = []string{";", "&", "|", "$", "`", "<", ">", "!", "\n", "\r"}

// ValidateFilePath cleans path, makes it absolute and resolves symlinks of an
// existing file. A path to a file that does not exist yet is returned cleaned.
func ValidateFilePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}
	for _, char := range forbidden {
		if strings.Contains(path, char) {
			return "", fmt.Errorf("file path contains forbidden character %q: %s", char, path)
		}
	}

	cleanPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cleanPath, nil
		}
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}
	return resolved, nil
}

// ValidateFilePathInDir additionally requires the path to stay under baseDir.
func ValidateFilePathInDir(path, baseDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("base directory cannot be empty")
	}
	cleanPath, err := ValidateFilePath(path)
	if err != nil {
		return "", err
	}
	base, err := ValidateFilePath(baseDir)
	if err != nil {
		return "", err
	}

	if cleanPath != base && !strings.HasPrefix(cleanPath, base+string(filepath.Separator)) {
		return "", fmt.Errorf("file path escapes base directory: %s is not within %s", path, baseDir)
	}
	return cleanPath, nil
}

// ReadJSONFile decodes the file at path into v after validating the path.
func ReadJSONFile(path string, v any) error {
	cleanPath, err := ValidateFilePath(path)
	if err != nil {
		return err
	}
	// #nosec G304 - path is validated above
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(cleanPath), err)
	}
	return nil
}
