package cli

import (
	"strings"

	"github.com/temirov/erd/internal/config"
)

// rcFileSelection captures which default-arguments file loads, as decided by
// the invoker's raw arguments before the merged list is parsed.
type rcFileSelection struct {
	filePath string
	disabled bool
}

// scanRCArguments reads --rc and --no-rc from the invoker's raw arguments.
// Only arguments the invoker typed decide which file loads: a default-
// arguments file that itself names --rc cannot redirect loading to another
// file. Scanning stops at "--". When the flags repeat, the last occurrence
// wins.
func scanRCArguments(arguments []string, defaultRCFilePath string) rcFileSelection {
	selection := rcFileSelection{filePath: defaultRCFilePath}
	index := 0
	for index < len(arguments) {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			break
		}
		switch {
		case currentArgument == "--"+noRCFlagName:
			selection.disabled = true
		case strings.HasPrefix(currentArgument, "--"+noRCFlagName+"="):
			literal := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(currentArgument, "--"+noRCFlagName+"=")))
			if parsed, known := booleanFlagLiterals[literal]; known {
				selection.disabled = parsed
			}
		case currentArgument == "--"+rcFlagName:
			if index+1 < len(arguments) {
				selection.filePath = arguments[index+1]
				selection.disabled = false
				index += 2
				continue
			}
		case strings.HasPrefix(currentArgument, "--"+rcFlagName+"="):
			selection.filePath = strings.TrimPrefix(currentArgument, "--"+rcFlagName+"=")
			selection.disabled = false
		}
		index++
	}
	return selection
}

// mergeRCArguments loads the selected default-arguments file and logically
// prepends its tokens to the invoker's arguments. Invoker arguments come
// last, so for single-value flags the command line overrides the file.
func mergeRCArguments(selection rcFileSelection, arguments []string) ([]string, error) {
	if selection.disabled {
		return arguments, nil
	}
	rcTokens, loadError := config.LoadRCArguments(selection.filePath)
	if loadError != nil {
		return nil, loadError
	}
	if len(rcTokens) == 0 {
		return arguments, nil
	}
	merged := make([]string, 0, len(rcTokens)+len(arguments))
	merged = append(merged, rcTokens...)
	merged = append(merged, arguments...)
	return merged, nil
}
