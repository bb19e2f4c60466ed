// Package commands contains the tree construction pipeline: the filesystem
// seam, entry classification, filtering, recursive building, and sorting.
package commands

import (
	"io/fs"
	"os"
)

// FileSystem is the traversal seam between the tree builder and the operating
// system. Implementations may fail per call; the builder treats every failure
// as recoverable.
type FileSystem interface {
	// Lstat returns information about the named path without following
	// symbolic links.
	Lstat(path string) (fs.FileInfo, error)
	// ListEntries returns the directory entries of path in directory order.
	ListEntries(path string) ([]fs.DirEntry, error)
	// ReadLinkTarget returns the raw target of the named symbolic link.
	ReadLinkTarget(path string) (string, error)
}

// OSFileSystem implements FileSystem over the os package.
type OSFileSystem struct{}

// NewOSFileSystem constructs the production filesystem implementation.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Lstat delegates to os.Lstat.
func (fileSystem *OSFileSystem) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

// ListEntries delegates to os.ReadDir.
func (fileSystem *OSFileSystem) ListEntries(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// ReadLinkTarget delegates to os.Readlink.
func (fileSystem *OSFileSystem) ReadLinkTarget(path string) (string, error) {
	return os.Readlink(path)
}

var _ FileSystem = (*OSFileSystem)(nil)
