// Package it holds the in-process integration harness and end-to-end
// tests: full clusters formed with controlled role assignment, driven
// through the public Submit surface.
package it

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rangekv/internal/cluster"
	"rangekv/internal/node"
	"rangekv/internal/storage"
)

// Harness wraps a formed cluster for test access.
type Harness struct {
	Cluster *cluster.Cluster
}

// New forms a cluster and fails the test on any formation error.
func New(t *testing.T, opts cluster.Options) *Harness {
	t.Helper()
	c, err := cluster.New(opts)
	require.NoError(t, err, "cluster formation")
	return &Harness{Cluster: c}
}

// StaticAssigner assigns the same fixed roles to every range, giving
// tests full control over the topology.
func StaticAssigner(leader, leaseholder string, replicas []string) cluster.Assigner {
	return cluster.AssignerFunc(func(rangeID int, nodeIDs []string, rf int) cluster.Assignment {
		return cluster.Assignment{
			Leader:      leader,
			Leaseholder: leaseholder,
			Replicas:    replicas,
		}
	})
}

// Node fetches a node handle by ID.
func (h *Harness) Node(t *testing.T, id string) *node.Node {
	t.Helper()
	n, err := h.Cluster.Node(id)
	require.NoError(t, err)
	return n
}

// State fetches a node's in-memory store.
func (h *Harness) State(t *testing.T, id string) *storage.Memory {
	t.Helper()
	mem, ok := h.Node(t, id).Store().(*storage.Memory)
	require.True(t, ok, "node %s does not use the in-memory store", id)
	return mem
}
