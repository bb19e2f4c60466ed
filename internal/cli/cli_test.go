package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/temirov/erd/internal/types"
)

func TestIsSupportedFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		format    string
		supported bool
	}{
		{format: types.FormatRaw, supported: true},
		{format: types.FormatJSON, supported: true},
		{format: types.FormatXML, supported: true},
		{format: "yaml", supported: false},
		{format: "", supported: false},
	}

	for _, testCase := range testCases {
		if actual := isSupportedFormat(testCase.format); actual != testCase.supported {
			t.Fatalf("format %q: expected %t, got %t", testCase.format, testCase.supported, actual)
		}
	}
}

func TestResolveAndValidatePaths(t *testing.T) {
	t.Parallel()

	baseDirectory := t.TempDir()
	subDirectory := filepath.Join(baseDirectory, "sub")
	if mkdirError := os.Mkdir(subDirectory, 0o755); mkdirError != nil {
		t.Fatalf("mkdir: %v", mkdirError)
	}
	filePath := filepath.Join(baseDirectory, "file.txt")
	if writeError := os.WriteFile(filePath, []byte("x"), 0o644); writeError != nil {
		t.Fatalf("write file: %v", writeError)
	}
	missingPath := filepath.Join(baseDirectory, "absent")

	var warnings []string
	warn := func(message string) { warnings = append(warnings, message) }

	validated, validationError := resolveAndValidatePaths([]string{subDirectory, filePath, missingPath, subDirectory}, warn)
	if validationError != nil {
		t.Fatalf("resolveAndValidatePaths error: %v", validationError)
	}
	if len(validated) != 2 {
		t.Fatalf("expected 2 validated paths, got %d: %+v", len(validated), validated)
	}
	if !validated[0].IsDirectory || validated[0].AbsolutePath != subDirectory {
		t.Fatalf("unexpected first path: %+v", validated[0])
	}
	if validated[1].IsDirectory || validated[1].AbsolutePath != filePath {
		t.Fatalf("unexpected second path: %+v", validated[1])
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "absent") {
		t.Fatalf("expected one warning about the missing path, got %v", warnings)
	}
}

func TestResolveAndValidatePathsKeepsSymlinkRoots(t *testing.T) {
	t.Parallel()

	baseDirectory := t.TempDir()
	targetDirectory := filepath.Join(baseDirectory, "target")
	if mkdirError := os.Mkdir(targetDirectory, 0o755); mkdirError != nil {
		t.Fatalf("mkdir: %v", mkdirError)
	}
	linkPath := filepath.Join(baseDirectory, "portal")
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}
	if symlinkError := os.Symlink(targetDirectory, linkPath); symlinkError != nil {
		t.Fatalf("symlink: %v", symlinkError)
	}

	validated, validationError := resolveAndValidatePaths([]string{linkPath}, func(string) {})
	if validationError != nil {
		t.Fatalf("resolveAndValidatePaths error: %v", validationError)
	}
	if len(validated) != 1 {
		t.Fatalf("expected one validated path, got %d", len(validated))
	}
	if validated[0].IsDirectory {
		t.Fatalf("symlink root must not count as a directory: %+v", validated[0])
	}
}

func TestResolveAndValidatePathsExpandsHome(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	subDirectory := filepath.Join(homeDirectory, "projects")
	if mkdirError := os.Mkdir(subDirectory, 0o755); mkdirError != nil {
		t.Fatalf("mkdir: %v", mkdirError)
	}

	validated, validationError := resolveAndValidatePaths([]string{"~/projects"}, func(string) {})
	if validationError != nil {
		t.Fatalf("resolveAndValidatePaths error: %v", validationError)
	}
	if len(validated) != 1 || validated[0].AbsolutePath != subDirectory {
		t.Fatalf("expected home expansion to %s, got %+v", subDirectory, validated)
	}
	if validated[0].DisplayPath != subDirectory {
		t.Fatalf("expected expanded display path, got %q", validated[0].DisplayPath)
	}
}

func TestResolveAndValidatePathsAllInvalid(t *testing.T) {
	t.Parallel()

	var warnings []string
	_, validationError := resolveAndValidatePaths(
		[]string{filepath.Join(t.TempDir(), "absent")},
		func(message string) { warnings = append(warnings, message) },
	)
	if validationError == nil {
		t.Fatalf("expected error when every path is invalid")
	}
	if validationError.Error() != errorNoValidPaths {
		t.Fatalf("unexpected error: %v", validationError)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}
