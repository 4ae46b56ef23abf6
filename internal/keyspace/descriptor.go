package keyspace

import (
	"fmt"
	"sort"
	"strings"
)

// Descriptor describes a single range: a contiguous slice of the keyspace
// owned by a fixed replica set. Bounds are inclusive. Descriptors are
// built once at cluster formation and never mutated afterward.
type Descriptor struct {
	ID          int
	Start       int
	End         int
	Leader      string
	Leaseholder string
	Replicas    []string // sorted, includes Leader and Leaseholder
}

// Contains reports whether key falls inside the range bounds.
func (d *Descriptor) Contains(key int) bool {
	return key >= d.Start && key <= d.End
}

// HasReplica reports whether the given node holds a replica of the range.
func (d *Descriptor) HasReplica(nodeID string) bool {
	for _, id := range d.Replicas {
		if id == nodeID {
			return true
		}
	}
	return false
}

// Followers returns the replicas other than the leader, in the fixed
// (sorted) iteration order used during replication.
func (d *Descriptor) Followers() []string {
	followers := make([]string, 0, len(d.Replicas)-1)
	for _, id := range d.Replicas {
		if id != d.Leader {
			followers = append(followers, id)
		}
	}
	return followers
}

// validate checks the invariants local to a single descriptor.
func (d *Descriptor) validate() error {
	if d.Start > d.End {
		return fmt.Errorf("range %d: start %d > end %d", d.ID, d.Start, d.End)
	}
	if len(d.Replicas) == 0 {
		return fmt.Errorf("range %d: empty replica set", d.ID)
	}
	if !sort.StringsAreSorted(d.Replicas) {
		return fmt.Errorf("range %d: replica set not sorted", d.ID)
	}
	if !d.HasReplica(d.Leader) {
		return fmt.Errorf("range %d: leader %s not in replica set", d.ID, d.Leader)
	}
	if !d.HasReplica(d.Leaseholder) {
		return fmt.Errorf("range %d: leaseholder %s not in replica set", d.ID, d.Leaseholder)
	}
	return nil
}

// String formats the descriptor for log output.
func (d *Descriptor) String() string {
	return fmt.Sprintf("range %d [%d, %d] leader=%s leaseholder=%s replicas={%s}",
		d.ID, d.Start, d.End, d.Leader, d.Leaseholder, strings.Join(d.Replicas, " "))
}
