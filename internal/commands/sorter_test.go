package commands_test

import (
	"strings"
	"testing"

	"github.com/temirov/erd/internal/commands"
	"github.com/temirov/erd/internal/types"
)

type sortEntry struct {
	entryName  string
	sortBucket string
}

func buildSortInput(entries []sortEntry) []*types.Node {
	nodes := make([]*types.Node, 0, len(entries))
	for _, entry := range entries {
		nodes = append(nodes, &types.Node{Name: entry.entryName, SortBucket: entry.sortBucket})
	}
	return nodes
}

func sortedNames(nodes []*types.Node) []string {
	names := make([]string, 0, len(nodes))
	for _, node := range nodes {
		names = append(names, node.Name)
	}
	return names
}

func TestNodeSorterOrdersChildren(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		options     commands.SortOptions
		input       []sortEntry
		expectOrder []string
	}{
		{
			name:    "files_before_directories_by_default",
			options: commands.SortOptions{},
			input: []sortEntry{
				{"b", types.SortBucketDirectory},
				{"a", types.SortBucketFile},
				{"C", types.SortBucketFile},
			},
			expectOrder: []string{"C", "a", "b"},
		},
		{
			name:    "directories_first_when_configured",
			options: commands.SortOptions{DirectoriesFirst: true},
			input: []sortEntry{
				{"b", types.SortBucketDirectory},
				{"a", types.SortBucketFile},
				{"C", types.SortBucketFile},
			},
			expectOrder: []string{"b", "C", "a"},
		},
		{
			name:    "byte_order_is_case_sensitive_by_default",
			options: commands.SortOptions{},
			input: []sortEntry{
				{"banana", types.SortBucketFile},
				{"Apple", types.SortBucketFile},
				{"apple", types.SortBucketFile},
			},
			expectOrder: []string{"Apple", "apple", "banana"},
		},
		{
			name:    "ignore_case_folds_names",
			options: commands.SortOptions{IgnoreCase: true},
			input: []sortEntry{
				{"Beta", types.SortBucketFile},
				{"alpha", types.SortBucketFile},
			},
			expectOrder: []string{"alpha", "Beta"},
		},
		{
			name:    "ignore_case_breaks_ties_by_bytes",
			options: commands.SortOptions{IgnoreCase: true},
			input: []sortEntry{
				{"aaa", types.SortBucketFile},
				{"AAA", types.SortBucketFile},
			},
			expectOrder: []string{"AAA", "aaa"},
		},
		{
			name:    "locale_collation_orders_names",
			options: commands.SortOptions{LocaleTag: "en"},
			input: []sortEntry{
				{"Banana", types.SortBucketFile},
				{"apple", types.SortBucketFile},
			},
			expectOrder: []string{"apple", "Banana"},
		},
		{
			name:    "symlinks_share_the_file_bucket",
			options: commands.SortOptions{},
			input: []sortEntry{
				{"z-link", types.SortBucketFile},
				{"data", types.SortBucketDirectory},
				{"a.txt", types.SortBucketFile},
			},
			expectOrder: []string{"a.txt", "z-link", "data"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			sorter, sorterError := commands.NewNodeSorter(testCase.options)
			if sorterError != nil {
				t.Fatalf("NewNodeSorter error: %v", sorterError)
			}
			children := buildSortInput(testCase.input)
			sorter.Sort(children)
			actualOrder := sortedNames(children)
			if len(actualOrder) != len(testCase.expectOrder) {
				t.Fatalf("expected %d entries, got %d", len(testCase.expectOrder), len(actualOrder))
			}
			for entryIndex, expectedName := range testCase.expectOrder {
				if actualOrder[entryIndex] != expectedName {
					t.Fatalf("position %d: expected %q, got %q (full order %v)", entryIndex, expectedName, actualOrder[entryIndex], actualOrder)
				}
			}
		})
	}
}

func TestNodeSorterIsStableOnEqualKeys(t *testing.T) {
	t.Parallel()

	sorter, sorterError := commands.NewNodeSorter(commands.SortOptions{})
	if sorterError != nil {
		t.Fatalf("NewNodeSorter error: %v", sorterError)
	}
	first := &types.Node{Name: "dup", Kind: types.NodeKindFile, SortBucket: types.SortBucketFile}
	second := &types.Node{Name: "dup", Kind: types.NodeKindSymlink, SortBucket: types.SortBucketFile}
	children := []*types.Node{first, second}
	sorter.Sort(children)
	if children[0] != first || children[1] != second {
		t.Fatalf("expected stable order to keep input order for equal keys")
	}
}

func TestNewNodeSorterRejectsInvalidLocale(t *testing.T) {
	t.Parallel()

	_, sorterError := commands.NewNodeSorter(commands.SortOptions{LocaleTag: "!!!"})
	if sorterError == nil {
		t.Fatalf("expected error for invalid locale tag")
	}
	if !strings.Contains(sorterError.Error(), "invalid locale tag") {
		t.Fatalf("unexpected error message: %v", sorterError)
	}
}
