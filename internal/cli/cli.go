// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/erd/internal/commands"
	"github.com/temirov/erd/internal/config"
	"github.com/temirov/erd/internal/output"
	"github.com/temirov/erd/internal/services/clipboard"
	"github.com/temirov/erd/internal/types"
	"github.com/temirov/erd/internal/utils"
)

const (
	allFlagName           = "all"
	allFlagShorthand      = "a"
	dirsOnlyFlagName      = "dirs-only"
	dirsOnlyFlagShorthand = "d"
	levelFlagName         = "level"
	levelFlagShorthand    = "L"
	includeFlagName       = "include"
	includeFlagShorthand  = "P"
	excludeFlagName       = "exclude"
	excludeFlagShorthand  = "I"
	gitignoreFlagName     = "gitignore"
	noGitignoreFlagName   = "no-gitignore"
	dirsFirstFlagName     = "dirs-first"
	ignoreCaseFlagName    = "ignore-case"
	localeFlagName        = "locale"
	formatFlagName        = "format"
	copyFlagName          = "copy"
	copyFlagShorthand     = "c"
	rcFlagName            = "rc"
	noRCFlagName          = "no-rc"
	configFlagName        = "config"
	versionFlagName       = "version"

	rootUse              = "erd [paths...]"
	rootShortDescription = "render directory trees"
	rootLongDescription  = `erd lists directories as trees, one line per entry.
Chains of directories that hold nothing but a single subdirectory collapse
onto one line, symbolic links are shown with their targets and never
followed, and default arguments load from an rc file before the command
line is parsed. Use --format to select raw, json, or xml output.`
	rootUsageExample = `  # Render the working directory two levels deep
  erd -L 2

  # Directories only, honoring .gitignore files
  erd --dirs-only --gitignore src

  # Hide generated trees and copy the listing to the clipboard
  erd -I 'node_modules|*.log' -c`

	versionTemplate = "erd version: %s\n"
	defaultPath     = "."

	allFlagDescription         = "include hidden entries"
	dirsOnlyFlagDescription    = "list directories only"
	levelFlagDescription       = "descend at most this many levels, 0 for no limit"
	includeFlagDescription     = "only list entries matching the pattern list, patterns separated by '|'"
	excludeFlagDescription     = "skip entries matching the pattern list, patterns separated by '|'"
	gitignoreFlagDescription   = "skip entries excluded by gitignore rules"
	noGitignoreFlagDescription = "ignore gitignore rules even when enabled elsewhere"
	dirsFirstFlagDescription   = "sort directories before files"
	ignoreCaseFlagDescription  = "sort names case-insensitively"
	localeFlagDescription      = "sort names by the collation rules of this BCP 47 tag"
	formatFlagDescription      = "output format: raw, json, or xml"
	copyFlagDescription        = "copy the rendered listing to the system clipboard"
	rcFlagDescription          = "load default arguments from this file"
	noRCFlagDescription        = "do not load default arguments"
	configFlagDescription      = "load settings from this file instead of the local one"
	versionFlagDescription     = "display application version"

	invalidFormatMessage  = "invalid format value '%s'"
	invalidLevelMessage   = "invalid level %d: must not be negative"
	warningSkipPathFormat = "Warning: skipping %s: %v"
	// errorNoValidPaths indicates that all paths are invalid.
	errorNoValidPaths = "no valid paths"
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// Execute runs the erd application.
func Execute() error {
	return ExecuteWithArguments(os.Args[1:])
}

// ExecuteWithArguments runs the application with an explicit argument list.
// Tokens from the default-arguments file are logically prepended to the
// invoker's arguments before parsing, so for single-value flags the command
// line wins over the file.
func ExecuteWithArguments(arguments []string) error {
	rootCommand := createRootCommand()
	selection := scanRCArguments(arguments, config.DefaultRCFilePath())
	mergedArguments, mergeError := mergeRCArguments(selection, arguments)
	if mergeError != nil {
		return mergeError
	}
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, mergedArguments))
	return rootCommand.Execute()
}

// rootOptions stores every flag value of the root command.
type rootOptions struct {
	includeHidden        bool
	directoriesOnly      bool
	maxDepth             int
	includePatternValues []string
	excludePatternValues []string
	useGitignore         bool
	noGitignore          bool
	directoriesFirst     bool
	ignoreCase           bool
	localeTag            string
	outputFormat         string
	copyToClipboard      bool
	rcFilePath           string
	skipRCFile           bool
	configFilePath       string
	showVersion          bool
}

// createRootCommand builds the root Cobra command. The --rc and --no-rc
// flags are registered so the merged argument list parses, but their parsed
// values are unused: file selection happened in the pre-parse scan.
func createRootCommand() *cobra.Command {
	options := &rootOptions{}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runListing(command, arguments, options)
		},
	}

	flagSet := rootCommand.Flags()
	registerBooleanFlag(flagSet, &options.includeHidden, allFlagName, allFlagShorthand, false, allFlagDescription)
	registerBooleanFlag(flagSet, &options.directoriesOnly, dirsOnlyFlagName, dirsOnlyFlagShorthand, false, dirsOnlyFlagDescription)
	flagSet.IntVarP(&options.maxDepth, levelFlagName, levelFlagShorthand, 0, levelFlagDescription)
	flagSet.StringArrayVarP(&options.includePatternValues, includeFlagName, includeFlagShorthand, nil, includeFlagDescription)
	flagSet.StringArrayVarP(&options.excludePatternValues, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	registerBooleanFlag(flagSet, &options.useGitignore, gitignoreFlagName, "", false, gitignoreFlagDescription)
	registerBooleanFlag(flagSet, &options.noGitignore, noGitignoreFlagName, "", false, noGitignoreFlagDescription)
	registerBooleanFlag(flagSet, &options.directoriesFirst, dirsFirstFlagName, "", false, dirsFirstFlagDescription)
	registerBooleanFlag(flagSet, &options.ignoreCase, ignoreCaseFlagName, "", false, ignoreCaseFlagDescription)
	flagSet.StringVar(&options.localeTag, localeFlagName, "", localeFlagDescription)
	flagSet.StringVar(&options.outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, copyFlagShorthand, false, copyFlagDescription)
	flagSet.StringVar(&options.rcFilePath, rcFlagName, config.DefaultRCFilePath(), rcFlagDescription)
	registerBooleanFlag(flagSet, &options.skipRCFile, noRCFlagName, "", false, noRCFlagDescription)
	flagSet.StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	return rootCommand
}

// runListing executes one invocation: settings, validation, traversal, and
// rendering.
func runListing(command *cobra.Command, arguments []string, options *rootOptions) error {
	if options.showVersion {
		fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
		return nil
	}

	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: options.configFilePath})
	if configurationError != nil {
		return configurationError
	}
	applyConfiguredDefaults(command, options, configuration)

	outputFormat := strings.ToLower(options.outputFormat)
	if !isSupportedFormat(outputFormat) {
		return fmt.Errorf(invalidFormatMessage, options.outputFormat)
	}
	if options.maxDepth < 0 {
		return fmt.Errorf(invalidLevelMessage, options.maxDepth)
	}

	nodeSorter, sorterError := commands.NewNodeSorter(commands.SortOptions{
		DirectoriesFirst: options.directoriesFirst,
		IgnoreCase:       options.ignoreCase,
		LocaleTag:        options.localeTag,
	})
	if sorterError != nil {
		return sorterError
	}

	if len(arguments) == 0 {
		arguments = []string{defaultPath}
	}
	warn := func(message string) {
		fmt.Fprintln(command.ErrOrStderr(), message)
	}
	validatedPaths, pathValidationError := resolveAndValidatePaths(arguments, warn)
	if pathValidationError != nil {
		return pathValidationError
	}

	includePatterns := commands.ParsePathPatterns(options.includePatternValues)
	excludePatterns := commands.ParsePathPatterns(options.excludePatternValues)
	useGitignore := options.useGitignore && !options.noGitignore

	rootNodes := make([]*types.Node, 0, len(validatedPaths))
	for _, validatedPath := range validatedPaths {
		entryFilter := &commands.EntryFilter{
			IncludeHidden:   options.includeHidden,
			DirectoriesOnly: options.directoriesOnly,
			Include:         includePatterns,
			Exclude:         excludePatterns,
		}
		if useGitignore {
			if ignoreIndex := config.NewIgnoreIndex(ignoreBaseDirectory(validatedPath)); ignoreIndex != nil {
				entryFilter.Ignore = ignoreIndex
			}
		}
		treeBuilder := &commands.TreeBuilder{
			Filter:   entryFilter,
			Sorter:   nodeSorter,
			MaxDepth: options.maxDepth,
			Warn:     warn,
		}
		rootNode, buildError := treeBuilder.Build(validatedPath)
		if buildError != nil {
			warn(fmt.Sprintf(warningSkipPathFormat, validatedPath.DisplayPath, buildError))
			continue
		}
		rootNodes = append(rootNodes, rootNode)
	}

	return renderListing(command, outputFormat, rootNodes, options.copyToClipboard)
}

// applyConfiguredDefaults overlays YAML settings onto flags the invoker did
// not set. Arguments from the command line, including ones injected from the
// default-arguments file, always win over settings files.
func applyConfiguredDefaults(command *cobra.Command, options *rootOptions, configuration config.ApplicationConfiguration) {
	flagSet := command.Flags()
	if !flagSet.Changed(allFlagName) && configuration.All != nil {
		options.includeHidden = *configuration.All
	}
	if !flagSet.Changed(dirsOnlyFlagName) && configuration.DirectoriesOnly != nil {
		options.directoriesOnly = *configuration.DirectoriesOnly
	}
	if !flagSet.Changed(levelFlagName) && configuration.Level != nil {
		options.maxDepth = *configuration.Level
	}
	if !flagSet.Changed(includeFlagName) && len(configuration.Include) > 0 {
		options.includePatternValues = configuration.Include
	}
	if !flagSet.Changed(excludeFlagName) && len(configuration.Exclude) > 0 {
		options.excludePatternValues = configuration.Exclude
	}
	if !flagSet.Changed(gitignoreFlagName) && configuration.UseGitignore != nil {
		options.useGitignore = *configuration.UseGitignore
	}
	if !flagSet.Changed(dirsFirstFlagName) && configuration.DirectoriesFirst != nil {
		options.directoriesFirst = *configuration.DirectoriesFirst
	}
	if !flagSet.Changed(ignoreCaseFlagName) && configuration.IgnoreCase != nil {
		options.ignoreCase = *configuration.IgnoreCase
	}
	if !flagSet.Changed(localeFlagName) && configuration.Locale != "" {
		options.localeTag = configuration.Locale
	}
	if !flagSet.Changed(formatFlagName) && configuration.Format != "" {
		options.outputFormat = configuration.Format
	}
	if !flagSet.Changed(copyFlagName) && configuration.Clipboard != nil {
		options.copyToClipboard = *configuration.Clipboard
	}
}

// ignoreBaseDirectory anchors gitignore discovery: the root itself when it is
// a directory, its parent otherwise.
func ignoreBaseDirectory(validatedPath types.ValidatedPath) string {
	if validatedPath.IsDirectory {
		return validatedPath.AbsolutePath
	}
	return filepath.Dir(validatedPath.AbsolutePath)
}

// renderListing renders the built trees in the selected format into the
// stdout sink, teed into the clipboard when requested.
func renderListing(command *cobra.Command, outputFormat string, rootNodes []*types.Node, copyToClipboard bool) error {
	lineSink := output.NewWriterSink(command.OutOrStdout())
	if copyToClipboard {
		lineSink = output.NewTeeSink(lineSink, output.NewClipboardSink(clipboard.NewSystemClipboard()))
	}

	producer := func(streamCtx context.Context, lineChannel chan<- string) error {
		switch outputFormat {
		case types.FormatJSON:
			renderedDocument, renderError := output.RenderTreeJSON(rootNodes)
			if renderError != nil {
				return renderError
			}
			return emitLine(streamCtx, lineChannel, renderedDocument)
		case types.FormatXML:
			renderedDocument, renderError := output.RenderTreeXML(rootNodes)
			if renderError != nil {
				return renderError
			}
			return emitLine(streamCtx, lineChannel, renderedDocument)
		default:
			for _, rootNode := range rootNodes {
				renderError := output.RenderTreeRaw(rootNode, func(line string) error {
					return emitLine(streamCtx, lineChannel, line)
				})
				if renderError != nil {
					return renderError
				}
			}
			return nil
		}
	}

	consumer := func(line string) error {
		return lineSink.WriteLine(line)
	}

	if dispatchError := dispatchStream(context.Background(), producer, consumer); dispatchError != nil {
		return dispatchError
	}
	return lineSink.Flush()
}

// emitLine sends one rendered line into the stream channel unless the stream
// context ended first.
func emitLine(streamCtx context.Context, lineChannel chan<- string, line string) error {
	select {
	case <-streamCtx.Done():
		return streamCtx.Err()
	case lineChannel <- line:
		return nil
	}
}

func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- string) error,
	consume func(string) error,
) error {
	group, streamCtx := errgroup.WithContext(ctx)
	lines := make(chan string)

	group.Go(func() error {
		defer close(lines)
		return produce(streamCtx, lines)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if err := consume(line); err != nil {
					return err
				}
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// resolveAndValidatePaths expands, absolutizes, and deduplicates the root
// arguments. Roots are inspected without following links, so a symlink
// argument stays a symlink. A root that cannot be inspected is reported and
// skipped; only an empty survivor list is an error.
func resolveAndValidatePaths(inputs []string, warn func(string)) ([]types.ValidatedPath, error) {
	seen := make(map[string]struct{})
	var result []types.ValidatedPath
	for _, inputPath := range inputs {
		expandedPath := utils.ExpandHomePath(inputPath)
		absolutePath, absolutePathError := filepath.Abs(expandedPath)
		if absolutePathError != nil {
			warn(fmt.Sprintf(warningSkipPathFormat, inputPath, absolutePathError))
			continue
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		info, lstatError := os.Lstat(cleanPath)
		if lstatError != nil {
			warn(fmt.Sprintf(warningSkipPathFormat, inputPath, lstatError))
			continue
		}
		seen[cleanPath] = struct{}{}
		result = append(result, types.ValidatedPath{
			DisplayPath:  expandedPath,
			AbsolutePath: cleanPath,
			IsDirectory:  info.IsDir(),
		})
	}
	if len(result) == 0 {
		return nil, errors.New(errorNoValidPaths)
	}
	return result, nil
}
