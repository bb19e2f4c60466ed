package output_test

import (
	"testing"

	"github.com/temirov/erd/internal/output"
	"github.com/temirov/erd/internal/types"
)

func directoryNode(name string, children ...*types.Node) *types.Node {
	return &types.Node{Name: name, Kind: types.NodeKindDirectory, SortBucket: types.SortBucketDirectory, Children: children}
}

func fileNode(name string) *types.Node {
	return &types.Node{Name: name, Kind: types.NodeKindFile, SortBucket: types.SortBucketFile}
}

func symlinkNode(name string, target string) *types.Node {
	return &types.Node{Name: name, Kind: types.NodeKindSymlink, SortBucket: types.SortBucketFile, LinkTarget: target}
}

func TestCompressDirectoryChain(t *testing.T) {
	t.Parallel()

	leafFile := fileNode("file.txt")
	secondFile := fileNode("other.txt")

	testCases := []struct {
		name           string
		node           *types.Node
		expectLabels   []string
		expectTerminal string
	}{
		{
			name:           "chain_of_single_child_directories_collapses",
			node:           directoryNode("a", directoryNode("b", directoryNode("c", leafFile, secondFile))),
			expectLabels:   []string{"a", "b", "c"},
			expectTerminal: "c",
		},
		{
			name:           "single_file_child_terminates_chain",
			node:           directoryNode("a", fileNode("only.txt")),
			expectLabels:   []string{"a"},
			expectTerminal: "a",
		},
		{
			name:           "single_symlink_child_terminates_chain",
			node:           directoryNode("a", symlinkNode("link", "elsewhere")),
			expectLabels:   []string{"a"},
			expectTerminal: "a",
		},
		{
			name:           "multiple_children_terminate_chain",
			node:           directoryNode("a", directoryNode("b"), fileNode("x.txt")),
			expectLabels:   []string{"a"},
			expectTerminal: "a",
		},
		{
			name:           "empty_directory_extends_chain_and_stops",
			node:           directoryNode("a", directoryNode("b")),
			expectLabels:   []string{"a", "b"},
			expectTerminal: "b",
		},
		{
			name:           "file_node_yields_single_label",
			node:           fileNode("plain.txt"),
			expectLabels:   []string{"plain.txt"},
			expectTerminal: "plain.txt",
		},
		{
			name:           "chain_stops_where_branching_begins",
			node:           directoryNode("a", directoryNode("b", directoryNode("c"), fileNode("x.txt"))),
			expectLabels:   []string{"a", "b"},
			expectTerminal: "b",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			segment := output.CompressDirectoryChain(testCase.node)
			if len(segment.Labels) != len(testCase.expectLabels) {
				t.Fatalf("expected labels %v, got %v", testCase.expectLabels, segment.Labels)
			}
			for labelIndex, expectedLabel := range testCase.expectLabels {
				if segment.Labels[labelIndex] != expectedLabel {
					t.Fatalf("expected labels %v, got %v", testCase.expectLabels, segment.Labels)
				}
			}
			if segment.Terminal == nil || segment.Terminal.Name != testCase.expectTerminal {
				t.Fatalf("expected terminal %q, got %+v", testCase.expectTerminal, segment.Terminal)
			}
		})
	}
}
