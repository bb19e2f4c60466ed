package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/shlex"

	"github.com/temirov/erd/internal/utils"
)

const (
	// RCFileName is the default-arguments file below the configuration home.
	RCFileName = "erd.rc"

	// errorReadRCFileFormat reports an unreadable default-arguments file.
	errorReadRCFileFormat = "read rc file %s: %w"
	// errorTokenizeRCFileFormat reports a default-arguments file that cannot be split.
	errorTokenizeRCFileFormat = "parse rc file %s: %w"
)

// DefaultRCFilePath returns $XDG_CONFIG_HOME/erd.rc with the ~/.config
// fallback. An unresolvable home yields an empty path, which loads as an
// empty argument list.
func DefaultRCFilePath() string {
	configHomePath, configHomeError := utils.ConfigHomeDirectory()
	if configHomeError != nil {
		return ""
	}
	return filepath.Join(configHomePath, RCFileName)
}

// LoadRCArguments reads and tokenizes the default-arguments file. Tokens are
// split shell-style: whitespace separated, single and double quotes honored,
// '#' comments dropped. The resulting tokens are logically prepended to the
// invoker's arguments by the CLI layer. A missing file is an empty list; an
// unreadable or untokenizable one is a configuration error.
func LoadRCArguments(rcFilePath string) ([]string, error) {
	if rcFilePath == "" {
		return nil, nil
	}
	fileContent, readError := os.ReadFile(rcFilePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, nil
		}
		return nil, fmt.Errorf(errorReadRCFileFormat, rcFilePath, readError)
	}
	argumentTokens, tokenizeError := shlex.Split(string(fileContent))
	if tokenizeError != nil {
		return nil, fmt.Errorf(errorTokenizeRCFileFormat, rcFilePath, tokenizeError)
	}
	return argumentTokens, nil
}
