// Package utils contains general helper functions used across the erd tool.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// Filesystem name constants used across the project.
const (
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// LocalConfigFileName is the per-directory settings file name.
	LocalConfigFileName = ".erd.yaml"
	// GlobalConfigDirectoryName is the settings directory below the configuration home.
	GlobalConfigDirectoryName = "erd"
	// GlobalConfigFileName is the settings file inside the global directory.
	GlobalConfigFileName = "config.yaml"
)

const (
	hiddenNamePrefix = "."
	homePathPrefix   = "~"

	// XDGConfigHomeEnvironmentVariable overrides the configuration base directory.
	XDGConfigHomeEnvironmentVariable = "XDG_CONFIG_HOME"
	// fallbackConfigDirectoryName is used below the home directory when the
	// XDG variable is unset.
	fallbackConfigDirectoryName = ".config"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// IsHiddenName reports whether a directory entry name is hidden by Unix
// convention, meaning it starts with a dot.
func IsHiddenName(entryName string) bool {
	return strings.HasPrefix(entryName, hiddenNamePrefix)
}

// ExpandHomePath replaces a leading "~" or "~/" with the invoker's home
// directory. Paths without the prefix, and paths of the "~user" form, are
// returned unchanged, as is the input when the home directory is unknown.
func ExpandHomePath(inputPath string) string {
	if inputPath != homePathPrefix && !strings.HasPrefix(inputPath, homePathPrefix+string(os.PathSeparator)) && !strings.HasPrefix(inputPath, homePathPrefix+"/") {
		return inputPath
	}
	homeDirectoryPath, homeDirectoryError := os.UserHomeDir()
	if homeDirectoryError != nil {
		return inputPath
	}
	if inputPath == homePathPrefix {
		return homeDirectoryPath
	}
	return filepath.Join(homeDirectoryPath, inputPath[len(homePathPrefix)+1:])
}

// ConfigHomeDirectory resolves the base directory for configuration files:
// $XDG_CONFIG_HOME when set, otherwise ~/.config.
func ConfigHomeDirectory() (string, error) {
	if configHome := os.Getenv(XDGConfigHomeEnvironmentVariable); configHome != "" {
		return configHome, nil
	}
	homeDirectoryPath, homeDirectoryError := os.UserHomeDir()
	if homeDirectoryError != nil {
		return "", homeDirectoryError
	}
	return filepath.Join(homeDirectoryPath, fallbackConfigDirectoryName), nil
}

