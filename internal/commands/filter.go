package commands

import (
	"path/filepath"
	"strings"

	"github.com/temirov/erd/internal/types"
	"github.com/temirov/erd/internal/utils"
)

// PatternListSeparator splits several patterns supplied inside one flag value.
const PatternListSeparator = "|"

// PathPattern matches directory entry base names using glob syntax. A pattern
// written with a trailing slash matches directories only.
type PathPattern struct {
	expression    string
	directoryOnly bool
}

// ParsePathPatterns expands a list of flag values into compiled patterns.
// Each value may carry several patterns separated by "|"; blank fragments are
// dropped.
func ParsePathPatterns(values []string) []PathPattern {
	var patterns []PathPattern
	for _, value := range values {
		for _, fragment := range strings.Split(value, PatternListSeparator) {
			trimmedFragment := strings.TrimSpace(fragment)
			if trimmedFragment == "" {
				continue
			}
			patterns = append(patterns, PathPattern{
				expression:    strings.TrimSuffix(trimmedFragment, "/"),
				directoryOnly: strings.HasSuffix(trimmedFragment, "/"),
			})
		}
	}
	return patterns
}

// Matches reports whether the pattern matches an entry with the given base
// name. A directory-only pattern never matches a non-directory; a symbolic
// link to a directory counts as a non-directory here. Malformed glob
// expressions match nothing.
func (pattern PathPattern) Matches(entryName string, isDirectory bool) bool {
	if pattern.directoryOnly && !isDirectory {
		return false
	}
	isMatched, matchError := filepath.Match(pattern.expression, entryName)
	return matchError == nil && isMatched
}

// String returns the pattern as originally written.
func (pattern PathPattern) String() string {
	if pattern.directoryOnly {
		return pattern.expression + "/"
	}
	return pattern.expression
}

// IgnoreMatcher reports whether ignore rules exclude a path. The tree builder
// receives it as an already-built index; a nil matcher excludes nothing.
type IgnoreMatcher interface {
	Ignored(absolutePath string, isDirectory bool) bool
}

// EntryFilter decides which directory entries enter the tree. Evaluation
// order: hidden names, include patterns, exclude patterns, ignore rules, then
// the directories-only restriction. Every check applies to directories too, so
// a rejected directory prunes its whole subtree. Roots are never filtered.
type EntryFilter struct {
	IncludeHidden   bool
	DirectoriesOnly bool
	Include         []PathPattern
	Exclude         []PathPattern
	Ignore          IgnoreMatcher
}

// Admit reports whether the entry survives every configured filter.
func (filter *EntryFilter) Admit(entryName string, entryKind string, absolutePath string) bool {
	isDirectory := entryKind == types.NodeKindDirectory
	if !filter.IncludeHidden && utils.IsHiddenName(entryName) {
		return false
	}
	if len(filter.Include) > 0 && !anyPatternMatches(filter.Include, entryName, isDirectory) {
		return false
	}
	if anyPatternMatches(filter.Exclude, entryName, isDirectory) {
		return false
	}
	if filter.Ignore != nil && filter.Ignore.Ignored(absolutePath, isDirectory) {
		return false
	}
	if filter.DirectoriesOnly && !isDirectory {
		return false
	}
	return true
}

func anyPatternMatches(patterns []PathPattern, entryName string, isDirectory bool) bool {
	for _, pattern := range patterns {
		if pattern.Matches(entryName, isDirectory) {
			return true
		}
	}
	return false
}
