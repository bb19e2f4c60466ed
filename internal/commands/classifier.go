package commands

import (
	"io/fs"

	"github.com/temirov/erd/internal/types"
)

// ClassifyMode maps an entry's type bits onto its display kind and sort
// bucket. A symbolic link is always bucketed as a file, even when its target
// is a directory; everything that is neither a directory nor a link, including
// FIFOs, sockets, and devices, classifies as a plain file. The link check
// precedes the directory check so that a link to a directory never classifies
// as a directory.
func ClassifyMode(mode fs.FileMode) (string, string) {
	switch {
	case mode&fs.ModeSymlink != 0:
		return types.NodeKindSymlink, types.SortBucketFile
	case mode.IsDir():
		return types.NodeKindDirectory, types.SortBucketDirectory
	default:
		return types.NodeKindFile, types.SortBucketFile
	}
}
