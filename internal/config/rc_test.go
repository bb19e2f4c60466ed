package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRCArgumentsTokenizesFileContent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		fileContent  string
		expectTokens []string
	}{
		{
			name:         "whitespace_separated_tokens",
			fileContent:  "-L 2 --dirs-first\n",
			expectTokens: []string{"-L", "2", "--dirs-first"},
		},
		{
			name:         "quotes_preserve_spaces_and_separators",
			fileContent:  `--include "*.go|*.md" -a`,
			expectTokens: []string{"--include", "*.go|*.md", "-a"},
		},
		{
			name:         "comment_lines_dropped",
			fileContent:  "# defaults for every run\n--dirs-first\n# trailing note\n",
			expectTokens: []string{"--dirs-first"},
		},
		{
			name:         "tokens_span_lines",
			fileContent:  "--level 1\n--exclude 'node_modules'\n",
			expectTokens: []string{"--level", "1", "--exclude", "node_modules"},
		},
		{
			name:         "empty_file_yields_no_tokens",
			fileContent:  "",
			expectTokens: nil,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			rcFilePath := filepath.Join(t.TempDir(), RCFileName)
			if writeError := os.WriteFile(rcFilePath, []byte(testCase.fileContent), 0o600); writeError != nil {
				t.Fatalf("write rc file: %v", writeError)
			}
			tokens, loadError := LoadRCArguments(rcFilePath)
			if loadError != nil {
				t.Fatalf("LoadRCArguments error: %v", loadError)
			}
			if len(tokens) != len(testCase.expectTokens) {
				t.Fatalf("expected tokens %v, got %v", testCase.expectTokens, tokens)
			}
			for tokenIndex, expectedToken := range testCase.expectTokens {
				if tokens[tokenIndex] != expectedToken {
					t.Fatalf("expected tokens %v, got %v", testCase.expectTokens, tokens)
				}
			}
		})
	}
}

func TestLoadRCArgumentsEmptyPath(t *testing.T) {
	t.Parallel()

	tokens, loadError := LoadRCArguments("")
	if loadError != nil || tokens != nil {
		t.Fatalf("expected empty result for empty path, got %v, %v", tokens, loadError)
	}
}

func TestLoadRCArgumentsMissingFile(t *testing.T) {
	t.Parallel()

	tokens, loadError := LoadRCArguments(filepath.Join(t.TempDir(), RCFileName))
	if loadError != nil {
		t.Fatalf("missing file must not be an error, got %v", loadError)
	}
	if len(tokens) != 0 {
		t.Fatalf("expected no tokens, got %v", tokens)
	}
}

func TestLoadRCArgumentsUnreadablePath(t *testing.T) {
	t.Parallel()

	_, loadError := LoadRCArguments(t.TempDir())
	if loadError == nil {
		t.Fatalf("expected error when the rc path is a directory")
	}
	if !strings.Contains(loadError.Error(), "read rc file") {
		t.Fatalf("unexpected error message: %v", loadError)
	}
}

func TestLoadRCArgumentsUnterminatedQuote(t *testing.T) {
	t.Parallel()

	rcFilePath := filepath.Join(t.TempDir(), RCFileName)
	if writeError := os.WriteFile(rcFilePath, []byte(`--include "*.go`), 0o600); writeError != nil {
		t.Fatalf("write rc file: %v", writeError)
	}
	_, loadError := LoadRCArguments(rcFilePath)
	if loadError == nil {
		t.Fatalf("expected error for unterminated quote")
	}
	if !strings.Contains(loadError.Error(), "parse rc file") {
		t.Fatalf("unexpected error message: %v", loadError)
	}
}

func TestDefaultRCFilePathUsesConfigHome(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	expectedPath := filepath.Join(configHome, RCFileName)
	if actualPath := DefaultRCFilePath(); actualPath != expectedPath {
		t.Fatalf("expected %q, got %q", expectedPath, actualPath)
	}
}
