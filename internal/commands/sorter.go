package commands

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/temirov/erd/internal/types"
)

// errorInvalidLocaleFormat reports an unparseable locale tag.
const errorInvalidLocaleFormat = "invalid locale tag '%s': %v"

// SortOptions selects the sibling ordering policy for one run.
type SortOptions struct {
	DirectoriesFirst bool
	IgnoreCase       bool
	LocaleTag        string
}

// NodeSorter orders a directory's children: primary key is the sort bucket,
// secondary key is the entry name under the configured collation. The same
// sorter instance is applied to every directory of a run so the ordering stays
// consistent across the whole tree.
type NodeSorter struct {
	directoriesFirst bool
	compareNames     func(left, right string) int
}

// NewNodeSorter builds a sorter from the resolved options. An unparseable
// locale tag is a configuration error.
func NewNodeSorter(options SortOptions) (*NodeSorter, error) {
	comparator, comparatorError := newNameComparator(options)
	if comparatorError != nil {
		return nil, comparatorError
	}
	return &NodeSorter{
		directoriesFirst: options.DirectoriesFirst,
		compareNames:     comparator,
	}, nil
}

// newNameComparator resolves the name ordering: byte-wise by default,
// case-folded under IgnoreCase, collation-based under a locale tag. Each
// comparator falls back to byte order on ties so the relation stays total.
func newNameComparator(options SortOptions) (func(left, right string) int, error) {
	if options.LocaleTag != "" {
		localeTag, parseError := language.Parse(options.LocaleTag)
		if parseError != nil {
			return nil, fmt.Errorf(errorInvalidLocaleFormat, options.LocaleTag, parseError)
		}
		var collatorOptions []collate.Option
		if options.IgnoreCase {
			collatorOptions = append(collatorOptions, collate.IgnoreCase)
		}
		collator := collate.New(localeTag, collatorOptions...)
		return func(left, right string) int {
			if ordering := collator.CompareString(left, right); ordering != 0 {
				return ordering
			}
			return strings.Compare(left, right)
		}, nil
	}
	if options.IgnoreCase {
		return func(left, right string) int {
			if ordering := strings.Compare(strings.ToLower(left), strings.ToLower(right)); ordering != 0 {
				return ordering
			}
			return strings.Compare(left, right)
		}, nil
	}
	return strings.Compare, nil
}

// Sort orders children in place. The sort is stable, so entries that compare
// equal on both keys keep their input order.
func (sorter *NodeSorter) Sort(children []*types.Node) {
	sort.SliceStable(children, func(leftIndex, rightIndex int) bool {
		return sorter.Less(children[leftIndex], children[rightIndex])
	})
}

// Less reports whether left orders before right.
func (sorter *NodeSorter) Less(left, right *types.Node) bool {
	if left.SortBucket != right.SortBucket {
		return sorter.bucketRank(left.SortBucket) < sorter.bucketRank(right.SortBucket)
	}
	return sorter.compareNames(left.Name, right.Name) < 0
}

// bucketRank orders the two sort buckets; files precede directories unless
// directories-first is configured.
func (sorter *NodeSorter) bucketRank(sortBucket string) int {
	isDirectoryBucket := sortBucket == types.SortBucketDirectory
	if isDirectoryBucket == sorter.directoriesFirst {
		return 0
	}
	return 1
}
