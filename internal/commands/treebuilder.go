package commands

import (
	"fmt"
	"path/filepath"

	"github.com/temirov/erd/internal/types"
)

const (
	// warningListDirectoryFormat is used when a directory's entries cannot be listed.
	warningListDirectoryFormat = "Warning: skipping contents of %s: %v"
	// warningStatEntryFormat is used when entry information cannot be retrieved.
	warningStatEntryFormat = "Warning: unable to stat %s: %v"
	// warningReadLinkFormat is used when a symlink target cannot be read.
	warningReadLinkFormat = "Warning: unable to read link target of %s: %v"
	// errorRootUnavailableFormat reports a root path that cannot be inspected.
	errorRootUnavailableFormat = "cannot access '%s': %w"
)

// TreeBuilder constructs the node tree for one run. Every filesystem access
// goes through the FileSystem seam; listing and stat failures surface through
// Warn and never abort the traversal. Symbolic links are never descended into,
// so the walk cannot loop through link cycles.
type TreeBuilder struct {
	FileSystem FileSystem
	Filter     *EntryFilter
	Sorter     *NodeSorter
	MaxDepth   int
	Warn       func(message string)
}

// Build constructs the tree rooted at the validated path. The root is
// inspected without following links, so a symlink root becomes a symlink leaf.
// An uninspectable root is the only error this method returns; the caller
// decides whether other roots still render.
func (builder *TreeBuilder) Build(root types.ValidatedPath) (*types.Node, error) {
	rootInfo, lstatError := builder.fileSystem().Lstat(root.AbsolutePath)
	if lstatError != nil {
		return nil, fmt.Errorf(errorRootUnavailableFormat, root.DisplayPath, lstatError)
	}
	rootKind, rootBucket := ClassifyMode(rootInfo.Mode())
	rootNode := &types.Node{
		Name:       root.DisplayPath,
		Kind:       rootKind,
		SortBucket: rootBucket,
		Depth:      0,
	}
	switch rootKind {
	case types.NodeKindSymlink:
		rootNode.LinkTarget = builder.readLinkTarget(root.AbsolutePath)
	case types.NodeKindDirectory:
		rootNode.Children = builder.buildChildren(root.AbsolutePath, 1)
	}
	return rootNode, nil
}

// buildChildren lists, classifies, filters, recurses into, and sorts the
// entries of one directory. The returned slice is never nil, so a listed
// directory always carries a present child list even when empty.
func (builder *TreeBuilder) buildChildren(directoryPath string, depth int) []*types.Node {
	children := []*types.Node{}
	if builder.MaxDepth > 0 && depth > builder.MaxDepth {
		return children
	}
	directoryEntries, listError := builder.fileSystem().ListEntries(directoryPath)
	if listError != nil {
		builder.warn(fmt.Sprintf(warningListDirectoryFormat, directoryPath, listError))
		return children
	}
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		entryInfo, entryInfoError := directoryEntry.Info()
		if entryInfoError != nil {
			builder.warn(fmt.Sprintf(warningStatEntryFormat, childPath, entryInfoError))
			continue
		}
		childKind, childBucket := ClassifyMode(entryInfo.Mode())
		if builder.Filter != nil && !builder.Filter.Admit(directoryEntry.Name(), childKind, childPath) {
			continue
		}
		childNode := &types.Node{
			Name:       directoryEntry.Name(),
			Kind:       childKind,
			SortBucket: childBucket,
			Depth:      depth,
		}
		switch childKind {
		case types.NodeKindSymlink:
			childNode.LinkTarget = builder.readLinkTarget(childPath)
		case types.NodeKindDirectory:
			childNode.Children = builder.buildChildren(childPath, depth+1)
		}
		children = append(children, childNode)
	}
	if builder.Sorter != nil {
		builder.Sorter.Sort(children)
	}
	return children
}

// readLinkTarget resolves a symlink target, substituting the unresolved
// marker when the target cannot be read.
func (builder *TreeBuilder) readLinkTarget(linkPath string) string {
	linkTarget, readLinkError := builder.fileSystem().ReadLinkTarget(linkPath)
	if readLinkError != nil {
		builder.warn(fmt.Sprintf(warningReadLinkFormat, linkPath, readLinkError))
		return types.LinkTargetUnresolvedMarker
	}
	return linkTarget
}

func (builder *TreeBuilder) fileSystem() FileSystem {
	if builder.FileSystem == nil {
		return NewOSFileSystem()
	}
	return builder.FileSystem
}

func (builder *TreeBuilder) warn(message string) {
	if builder.Warn != nil {
		builder.Warn(message)
	}
}
