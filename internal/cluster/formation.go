package cluster

import (
	"math/rand"
	"sort"

	"rangekv/internal/keyspace"
)

// Assignment names the replica roles for a single range.
type Assignment struct {
	Leader      string
	Leaseholder string
	Replicas    []string
}

// Assigner chooses leader, leaseholder and replica set for each range at
// formation time. It stands in for leader election; a consensus-backed
// implementation can replace it without touching routing or replication.
type Assigner interface {
	Assign(rangeID int, nodeIDs []string, replicationFactor int) Assignment
}

// AssignerFunc adapts a function to the Assigner interface.
type AssignerFunc func(rangeID int, nodeIDs []string, replicationFactor int) Assignment

// Assign calls f.
func (f AssignerFunc) Assign(rangeID int, nodeIDs []string, replicationFactor int) Assignment {
	return f(rangeID, nodeIDs, replicationFactor)
}

// RandomAssigner picks a random leader per range, makes the next node
// the leaseholder and fills the replica set with consecutive nodes.
// Randomness is injected so tests can fix the seed.
type RandomAssigner struct {
	rnd *rand.Rand
}

// NewRandomAssigner creates an assigner driven by rnd.
func NewRandomAssigner(rnd *rand.Rand) *RandomAssigner {
	return &RandomAssigner{rnd: rnd}
}

// Assign implements Assigner.
func (a *RandomAssigner) Assign(rangeID int, nodeIDs []string, replicationFactor int) Assignment {
	n := len(nodeIDs)
	leader := a.rnd.Intn(n)
	leaseholder := (leader + 1) % n

	replicas := make([]string, 0, replicationFactor)
	for i := 0; i < replicationFactor; i++ {
		replicas = append(replicas, nodeIDs[(leader+i)%n])
	}
	sort.Strings(replicas)

	return Assignment{
		Leader:      nodeIDs[leader],
		Leaseholder: nodeIDs[leaseholder],
		Replicas:    replicas,
	}
}

// buildDescriptors partitions [0, maxKey] into totalRanges equal parts;
// the last range absorbs the remainder of the division.
func buildDescriptors(totalRanges, maxKey, replicationFactor int, nodeIDs []string, assigner Assigner) []keyspace.Descriptor {
	rangeSize := (maxKey + 1) / totalRanges

	descriptors := make([]keyspace.Descriptor, 0, totalRanges)
	for i := 0; i < totalRanges; i++ {
		start := i * rangeSize
		end := start + rangeSize - 1
		if i == totalRanges-1 {
			end = maxKey
		}

		assignment := assigner.Assign(i, nodeIDs, replicationFactor)
		descriptors = append(descriptors, keyspace.Descriptor{
			ID:          i,
			Start:       start,
			End:         end,
			Leader:      assignment.Leader,
			Leaseholder: assignment.Leaseholder,
			Replicas:    assignment.Replicas,
		})
	}
	return descriptors
}
