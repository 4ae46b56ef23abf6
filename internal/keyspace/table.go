package keyspace

import (
	"errors"
	"fmt"
	"sort"
)

// ErrRangeNotFound is returned by Find when no range covers the key.
var ErrRangeNotFound = errors.New("no range covers key")

// Table is an ordered index of range descriptors by start key. It is
// built once at cluster formation, validated against the partition
// invariant, and immutable afterward; every node holds the same copy.
type Table struct {
	maxKey int
	ranges []Descriptor // sorted by Start
}

// NewTable builds a table from descriptors that must partition
// [0, maxKey] with no gaps or overlaps.
func NewTable(descriptors []Descriptor, maxKey int) (*Table, error) {
	if len(descriptors) == 0 {
		return nil, errors.New("no range descriptors")
	}
	if maxKey < 0 {
		return nil, fmt.Errorf("negative max key %d", maxKey)
	}

	ranges := make([]Descriptor, len(descriptors))
	copy(ranges, descriptors)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	if ranges[0].Start != 0 {
		return nil, fmt.Errorf("keyspace does not start at 0 (first range starts at %d)", ranges[0].Start)
	}
	for i := range ranges {
		if err := ranges[i].validate(); err != nil {
			return nil, err
		}
		if i > 0 && ranges[i].Start != ranges[i-1].End+1 {
			return nil, fmt.Errorf("gap or overlap between range %d (end %d) and range %d (start %d)",
				ranges[i-1].ID, ranges[i-1].End, ranges[i].ID, ranges[i].Start)
		}
	}
	if last := ranges[len(ranges)-1].End; last != maxKey {
		return nil, fmt.Errorf("keyspace ends at %d, want %d", last, maxKey)
	}

	return &Table{maxKey: maxKey, ranges: ranges}, nil
}

// Find returns the descriptor owning key: the range with the greatest
// start ≤ key. It fails with ErrRangeNotFound if the key falls outside
// the partitioned keyspace.
func (t *Table) Find(key int) (*Descriptor, error) {
	// First range whose start is > key; its predecessor owns the key.
	idx := sort.Search(len(t.ranges), func(i int) bool {
		return t.ranges[i].Start > key
	})
	if idx == 0 {
		return nil, fmt.Errorf("%w: key %d below keyspace", ErrRangeNotFound, key)
	}
	desc := &t.ranges[idx-1]
	if !desc.Contains(key) {
		return nil, fmt.Errorf("%w: key %d beyond keyspace", ErrRangeNotFound, key)
	}
	return desc, nil
}

// MaxKey returns the inclusive upper bound of the keyspace.
func (t *Table) MaxKey() int {
	return t.maxKey
}

// Len returns the number of ranges.
func (t *Table) Len() int {
	return len(t.ranges)
}

// Ranges returns the descriptors in start order. Callers must not
// mutate the returned slice.
func (t *Table) Ranges() []Descriptor {
	return t.ranges
}
