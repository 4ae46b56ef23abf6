package node

import (
	"errors"
	"fmt"

	"rangekv/internal/command"
	"rangekv/internal/keyspace"
	"rangekv/internal/quorum"
	"rangekv/internal/replog"
	"rangekv/internal/storage"
)

var (
	// ErrKeyOutOfRange is returned when no range covers a command's key,
	// at routing time or on commit-time re-validation.
	ErrKeyOutOfRange = errors.New("key out of range")
	// ErrNotLeaseholder is returned when leader dispatch is invoked on a
	// node that is not the range's leaseholder.
	ErrNotLeaseholder = errors.New("node is not the leaseholder")
	// ErrNotLeader is returned when the replication coordinator is
	// invoked on a node that is not the range's leader.
	ErrNotLeader = errors.New("node is not the leader")
	// ErrReplicationFailed is returned when the append phase cannot reach
	// the quorum threshold.
	ErrReplicationFailed = errors.New("replication failed")
	// ErrCommandNotLogged is returned by Commit when the command does not
	// match the most recent pending log entry.
	ErrCommandNotLogged = errors.New("command not in log")
	// ErrRangeNotOwned is returned by Commit when this node is not in the
	// range's replica set.
	ErrRangeNotOwned = errors.New("range not owned by node")
	// ErrUnknownNode is returned by directory lookups for an ID that was
	// never registered.
	ErrUnknownNode = errors.New("unknown node")
)

// Directory is the shared mapping from node ID to node handle, used for
// forwarding between nodes. It is built once at cluster formation and
// read-only afterward.
type Directory map[string]*Node

// Lookup resolves a node handle by ID.
func (d Directory) Lookup(id string) (*Node, error) {
	n, ok := d[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return n, nil
}

// Node is a single member of the cluster. It owns a copy of the range
// table, a key-value state machine and a pending-command log, and holds
// a reference to the shared directory for forwarding.
type Node struct {
	id     string
	table  *keyspace.Table
	store  storage.Applier
	log    *replog.Log
	peers  Directory
	policy quorum.Policy
}

// New creates a node. The directory is injected afterward via
// SetDirectory: nodes reference each other, so they are constructed
// first and wired second.
func New(id string, table *keyspace.Table, store storage.Applier, policy quorum.Policy) *Node {
	return &Node{
		id:     id,
		table:  table,
		store:  store,
		log:    replog.New(),
		policy: policy,
	}
}

// SetDirectory injects the shared node directory. It completes the
// two-phase construction and must be called before the first Route.
func (n *Node) SetDirectory(d Directory) {
	n.peers = d
}

// ID returns the node's identifier.
func (n *Node) ID() string {
	return n.id
}

// Store exposes the node's state machine for inspection.
func (n *Node) Store() storage.Applier {
	return n.store
}

// LogEntries returns a copy of the node's pending log.
func (n *Node) LogEntries() []command.Command {
	return n.log.Entries()
}
