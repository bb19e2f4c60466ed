package config

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/temirov/erd/internal/utils"
)

const (
	// doubleStarSegment matches any run of path segments, including none.
	doubleStarSegment = "**"
	// gitignoreCommentPrefix marks a comment line in an ignore file.
	gitignoreCommentPrefix = "#"
	// gitignoreNegationPrefix marks a rule that re-includes matching paths.
	gitignoreNegationPrefix = "!"
	// gitGlobalConfigDirectoryName is the per-user Git directory below the configuration home.
	gitGlobalConfigDirectoryName = "git"
	// gitGlobalIgnoreFileName is the per-user ignore file applied to every repository.
	gitGlobalIgnoreFileName = "gitignore"
	pathSegmentSeparator    = "/"
)

// gitignoreRule is one parsed ignore pattern expressed as glob segments
// relative to the repository top level.
type gitignoreRule struct {
	segmentPatterns []string
	directoryOnly   bool
}

// IgnoreIndex aggregates the gitignore rules in effect below a repository top
// level: the per-user file at $XDG_CONFIG_HOME/git/gitignore plus every
// .gitignore found in the work tree. A path is ignored when at least one
// ignore rule matches it and no negation rule does.
type IgnoreIndex struct {
	topLevelDirectory string
	ignoreRules       []gitignoreRule
	negateRules       []gitignoreRule
}

// NewIgnoreIndex builds the rule index for the repository containing
// baseDirectory. It returns nil when baseDirectory is not inside a Git work
// tree, in which case nothing is ignored. Unreadable rule files contribute no
// rules.
func NewIgnoreIndex(baseDirectory string) *IgnoreIndex {
	topLevelDirectory, topLevelError := utils.FindGitTopLevel(baseDirectory)
	if topLevelError != nil {
		return nil
	}

	index := &IgnoreIndex{topLevelDirectory: topLevelDirectory}

	if configHomePath, configHomeError := utils.ConfigHomeDirectory(); configHomeError == nil {
		globalIgnorePath := filepath.Join(configHomePath, gitGlobalConfigDirectoryName, gitGlobalIgnoreFileName)
		index.addRuleFile(globalIgnorePath, topLevelDirectory)
	}
	for _, ruleFilePath := range collectRuleFiles(topLevelDirectory) {
		index.addRuleFile(ruleFilePath, filepath.Dir(ruleFilePath))
	}
	return index
}

// TopLevelDirectory returns the repository root the index is anchored at.
func (index *IgnoreIndex) TopLevelDirectory() string {
	return index.topLevelDirectory
}

// Ignored reports whether absolutePath is excluded by the indexed rules.
// Paths outside the repository top level are never ignored.
func (index *IgnoreIndex) Ignored(absolutePath string, isDirectory bool) bool {
	if index == nil {
		return false
	}
	relativePath, relativeError := filepath.Rel(index.topLevelDirectory, absolutePath)
	if relativeError != nil || relativePath == "." || relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(os.PathSeparator)) {
		return false
	}
	pathSegments := strings.Split(filepath.ToSlash(relativePath), pathSegmentSeparator)
	if !anyRuleMatches(index.ignoreRules, pathSegments, isDirectory) {
		return false
	}
	return !anyRuleMatches(index.negateRules, pathSegments, isDirectory)
}

// addRuleFile parses one ignore file whose rules are anchored at
// ruleBaseDirectory and appends them to the index.
func (index *IgnoreIndex) addRuleFile(ruleFilePath string, ruleBaseDirectory string) {
	fileContent, readError := os.ReadFile(ruleFilePath)
	if readError != nil {
		return
	}
	baseSegments := index.relativeSegments(ruleBaseDirectory)
	for _, ruleLine := range strings.Split(string(fileContent), "\n") {
		parsedRule, negated, valid := parseGitignoreLine(ruleLine)
		if !valid {
			continue
		}
		parsedRule.segmentPatterns = append(append([]string{}, baseSegments...), parsedRule.segmentPatterns...)
		if negated {
			index.negateRules = append(index.negateRules, parsedRule)
		} else {
			index.ignoreRules = append(index.ignoreRules, parsedRule)
		}
	}
}

// relativeSegments expresses directoryPath relative to the repository top
// level as path segments. The top level itself yields no segments.
func (index *IgnoreIndex) relativeSegments(directoryPath string) []string {
	relativePath, relativeError := filepath.Rel(index.topLevelDirectory, directoryPath)
	if relativeError != nil || relativePath == "." {
		return nil
	}
	return strings.Split(filepath.ToSlash(relativePath), pathSegmentSeparator)
}

// collectRuleFiles gathers every .gitignore path in the work tree, in lexical
// order. Hidden directories below the top level are not descended into, so
// rule files inside .git and similar trees stay out of the index.
func collectRuleFiles(topLevelDirectory string) []string {
	var ruleFilePaths []string
	_ = filepath.WalkDir(topLevelDirectory, func(walkPath string, entry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return nil
		}
		if entry.IsDir() {
			if walkPath != topLevelDirectory && utils.IsHiddenName(entry.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if entry.Name() == utils.GitIgnoreFileName {
			ruleFilePaths = append(ruleFilePaths, walkPath)
		}
		return nil
	})
	return ruleFilePaths
}

// parseGitignoreLine converts one ignore-file line into a rule. Blank lines
// and comments yield valid=false. The returned rule follows Git pattern
// syntax: a leading "!" negates, a trailing "/" restricts the rule to
// directories, a separator at the start or middle anchors the pattern at the
// rule file's directory, and an unanchored pattern matches at any depth.
func parseGitignoreLine(ruleLine string) (rule gitignoreRule, negated bool, valid bool) {
	patternText := strings.TrimRight(ruleLine, " \r")
	if patternText == "" || strings.HasPrefix(patternText, gitignoreCommentPrefix) {
		return gitignoreRule{}, false, false
	}
	if strings.HasPrefix(patternText, gitignoreNegationPrefix) {
		negated = true
		patternText = patternText[len(gitignoreNegationPrefix):]
	}
	if strings.HasPrefix(patternText, `\`+gitignoreCommentPrefix) || strings.HasPrefix(patternText, `\`+gitignoreNegationPrefix) {
		patternText = patternText[1:]
	}
	if strings.HasSuffix(patternText, pathSegmentSeparator) {
		rule.directoryOnly = true
		patternText = strings.TrimSuffix(patternText, pathSegmentSeparator)
	}
	if patternText == "" {
		return gitignoreRule{}, false, false
	}

	trimmedPattern := strings.TrimPrefix(patternText, pathSegmentSeparator)
	anchored := trimmedPattern != patternText || strings.Contains(trimmedPattern, pathSegmentSeparator)
	rule.segmentPatterns = strings.Split(trimmedPattern, pathSegmentSeparator)
	if !anchored {
		rule.segmentPatterns = append([]string{doubleStarSegment}, rule.segmentPatterns...)
	}
	return rule, negated, true
}

func anyRuleMatches(rules []gitignoreRule, pathSegments []string, isDirectory bool) bool {
	for _, candidateRule := range rules {
		if candidateRule.directoryOnly && !isDirectory {
			continue
		}
		if segmentsMatch(candidateRule.segmentPatterns, pathSegments) {
			return true
		}
	}
	return false
}

// segmentsMatch matches glob segments against path segments. A "**" segment
// spans any number of path segments; in the trailing position it requires at
// least one, so "doc/**" matches the contents of doc but not doc itself.
// Malformed glob segments match nothing.
func segmentsMatch(patternSegments, pathSegments []string) bool {
	if len(patternSegments) == 0 {
		return len(pathSegments) == 0
	}
	if patternSegments[0] == doubleStarSegment {
		if len(patternSegments) == 1 {
			return len(pathSegments) > 0
		}
		for skipCount := 0; skipCount <= len(pathSegments); skipCount++ {
			if segmentsMatch(patternSegments[1:], pathSegments[skipCount:]) {
				return true
			}
		}
		return false
	}
	if len(pathSegments) == 0 {
		return false
	}
	segmentMatched, matchError := path.Match(patternSegments[0], pathSegments[0])
	if matchError != nil || !segmentMatched {
		return false
	}
	return segmentsMatch(patternSegments[1:], pathSegments[1:])
}
