// Package output renders directory trees in raw, JSON, and XML form.
package output

import (
	"encoding/json"
	"encoding/xml"
	"strings"

	"github.com/temirov/erd/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader       = xml.Header
	xmlRootsElement = "roots"

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	// directorySuffix trails every directory label.
	directorySuffix = "/"
	// symlinkPointerSeparator joins a symlink name with its target.
	symlinkPointerSeparator = "@ -> "
)

// LineHandler consumes one rendered output line, without its newline.
type LineHandler func(line string) error

// RenderTreeRaw walks a built tree and hands the renderer's lines to
// handleLine in display order. Chains of single-child directories collapse
// onto one line before connectors are attached.
func RenderTreeRaw(rootNode *types.Node, handleLine LineHandler) error {
	if rootNode == nil {
		return nil
	}
	return renderTreeNode(rootNode, "", handleLine, true, true)
}

func renderTreeNode(node *types.Node, prefix string, handleLine LineHandler, isRoot bool, isLast bool) error {
	segment := CompressDirectoryChain(node)
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, isRoot, isLast)
	if lineError := handleLine(linePrefix + segmentLabel(segment)); lineError != nil {
		return lineError
	}
	childNodes := segment.Terminal.Children
	for childIndex, childNode := range childNodes {
		if childNode == nil {
			continue
		}
		if childError := renderTreeNode(childNode, childPrefix, handleLine, false, childIndex == len(childNodes)-1); childError != nil {
			return childError
		}
	}
	return nil
}

func treeNodeLinePrefix(prefix string, isRoot bool, isLast bool) (string, string) {
	if isRoot {
		return "", ""
	}
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

// segmentLabel joins a compressed chain into one display label. Interior
// directories contribute their bare names separated by slashes; the terminal
// node contributes its full label including any kind suffix.
func segmentLabel(segment CompressedSegment) string {
	terminalLabel := nodeLabel(segment.Terminal)
	if len(segment.Labels) == 1 {
		return terminalLabel
	}
	var labelBuilder strings.Builder
	for _, chainLabel := range segment.Labels[:len(segment.Labels)-1] {
		labelBuilder.WriteString(strings.TrimSuffix(chainLabel, directorySuffix))
		labelBuilder.WriteString(directorySuffix)
	}
	labelBuilder.WriteString(terminalLabel)
	return labelBuilder.String()
}

// nodeLabel renders one entry name the way the listing shows it: directories
// carry a trailing slash and symlinks point at their targets.
func nodeLabel(node *types.Node) string {
	switch node.Kind {
	case types.NodeKindDirectory:
		return strings.TrimSuffix(node.Name, directorySuffix) + directorySuffix
	case types.NodeKindSymlink:
		return node.Name + symlinkPointerSeparator + node.LinkTarget
	default:
		return node.Name
	}
}

// RenderTreeJSON marshals the built trees as an indented JSON array. The
// array form is kept even for a single root so consumers can parse every
// invocation the same way.
func RenderTreeJSON(rootNodes []*types.Node) (string, error) {
	if rootNodes == nil {
		rootNodes = []*types.Node{}
	}
	encoded, jsonEncodeError := json.MarshalIndent(rootNodes, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// RenderTreeXML marshals the built trees as an XML document under a single
// roots element.
func RenderTreeXML(rootNodes []*types.Node) (string, error) {
	wrapper := struct {
		XMLName xml.Name      `xml:""`
		Nodes   []*types.Node `xml:"node"`
	}{
		XMLName: xml.Name{Local: xmlRootsElement},
		Nodes:   rootNodes,
	}
	encoded, xmlMarshalError := xml.MarshalIndent(wrapper, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded), nil
}
