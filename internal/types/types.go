// Package types defines every cross-package data structure used by the erd CLI.
package types

import "encoding/xml"

const (
	NodeKindDirectory = "directory"
	NodeKindFile      = "file"
	NodeKindSymlink   = "symlink"

	SortBucketDirectory = "directory"
	SortBucketFile      = "file"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// LinkTargetUnresolvedMarker stands in for the target of a symlink that cannot be read.
const LinkTargetUnresolvedMarker = "?"

// Node represents one filesystem entry of a rendered tree.
//
// Name holds the base name reported by the filesystem, except for root nodes,
// where it holds the path exactly as the invoker supplied it. SortBucket is
// fixed at classification time and never re-derived: every symlink lands in
// the file bucket regardless of its target.
type Node struct {
	XMLName    xml.Name `json:"-" xml:"node"`
	Name       string   `json:"name" xml:"name"`
	Kind       string   `json:"kind" xml:"kind"`
	LinkTarget string   `json:"linkTarget,omitempty" xml:"linkTarget,omitempty"`
	SortBucket string   `json:"-" xml:"-"`
	Depth      int      `json:"-" xml:"-"`
	Children   []*Node  `json:"children,omitempty" xml:"children>node,omitempty"`
}

// ValidatedPath is a root path that already passed existence checks.
// DisplayPath keeps the invoker's spelling for the root label while
// AbsolutePath is what traversal and ignore matching operate on.
type ValidatedPath struct {
	DisplayPath  string
	AbsolutePath string
	IsDirectory  bool
}
