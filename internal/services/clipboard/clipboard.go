// Package clipboard copies rendered listings to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier is the destination for a fully assembled listing document.
type Copier interface {
	Copy(text string) error
}

// SystemClipboard is a Copier backed by github.com/atotto/clipboard.
type SystemClipboard struct{}

// NewSystemClipboard constructs the platform clipboard implementation.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// Copy replaces the clipboard content with text.
func (systemClipboard *SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ Copier = (*SystemClipboard)(nil)
