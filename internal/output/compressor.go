package output

import (
	"github.com/temirov/erd/internal/types"
)

// CompressedSegment is one display line of the raw tree: the chain of labels
// collapsed onto the line and the node whose children render below it.
type CompressedSegment struct {
	Labels   []string
	Terminal *types.Node
}

// CompressDirectoryChain collapses a run of single-child directories starting
// at node into one segment. The chain extends while the current node is a
// directory whose sole child is itself a directory; symlinks never extend a
// chain even when they point at directories. A node that starts no chain
// yields a single-label segment.
func CompressDirectoryChain(node *types.Node) CompressedSegment {
	segment := CompressedSegment{Labels: []string{node.Name}, Terminal: node}
	currentNode := node
	for currentNode.Kind == types.NodeKindDirectory && len(currentNode.Children) == 1 {
		onlyChild := currentNode.Children[0]
		if onlyChild.Kind != types.NodeKindDirectory {
			break
		}
		segment.Labels = append(segment.Labels, onlyChild.Name)
		segment.Terminal = onlyChild
		currentNode = onlyChild
	}
	return segment
}
