package cluster

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"rangekv/internal/command"
	"rangekv/internal/keyspace"
	"rangekv/internal/node"
	"rangekv/internal/quorum"
	"rangekv/internal/storage"
)

var (
	// ErrInvalidKey is returned for negative keys or keys beyond the
	// keyspace bound.
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidValue is returned for negative values.
	ErrInvalidValue = errors.New("invalid value")
)

// DefaultMaxKey is the inclusive keyspace bound used when Options does
// not set one.
const DefaultMaxKey = 100

// DefaultRangesPerNode controls how many ranges formation creates per
// node in lieu of dynamic splitting.
const DefaultRangesPerNode = 2

// Options configures cluster formation.
type Options struct {
	// Nodes is the cluster size. Must be at least 3.
	Nodes int
	// ReplicationFactor is the replica-set size per range. Must be at
	// least 3 and at most Nodes.
	ReplicationFactor int
	// MaxKey is the inclusive upper bound of the keyspace. Defaults to
	// DefaultMaxKey.
	MaxKey int
	// RangesPerNode fixes the number of ranges at Nodes*RangesPerNode.
	// Defaults to DefaultRangesPerNode.
	RangesPerNode int
	// Quorum is the acknowledgement policy for replication phases.
	// The zero value waits for all replicas.
	Quorum quorum.Policy
	// Assigner chooses replica roles per range. Defaults to a
	// RandomAssigner seeded from Rand.
	Assigner Assigner
	// Rand drives random role assignment and entry-node selection.
	// Defaults to a time-seeded source.
	Rand *rand.Rand
}

// Cluster is a formed set of nodes sharing a range table and directory.
type Cluster struct {
	table  *keyspace.Table
	nodes  node.Directory
	ids    []string
	maxKey int
	rnd    *rand.Rand
}

// New forms a cluster: it partitions the keyspace, assigns replica
// roles, constructs all nodes and then injects the shared directory.
func New(opts Options) (*Cluster, error) {
	if opts.Nodes < 3 {
		return nil, fmt.Errorf("node count must be at least 3, got %d", opts.Nodes)
	}
	if opts.ReplicationFactor < 3 {
		return nil, fmt.Errorf("replication factor must be at least 3, got %d", opts.ReplicationFactor)
	}
	if opts.ReplicationFactor > opts.Nodes {
		return nil, fmt.Errorf("replication factor %d exceeds node count %d", opts.ReplicationFactor, opts.Nodes)
	}

	maxKey := opts.MaxKey
	if maxKey == 0 {
		maxKey = DefaultMaxKey
	}
	rangesPerNode := opts.RangesPerNode
	if rangesPerNode == 0 {
		rangesPerNode = DefaultRangesPerNode
	}
	totalRanges := opts.Nodes * rangesPerNode
	if maxKey+1 < totalRanges {
		return nil, fmt.Errorf("keyspace [0, %d] too small for %d ranges", maxKey, totalRanges)
	}

	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	assigner := opts.Assigner
	if assigner == nil {
		assigner = NewRandomAssigner(rnd)
	}

	ids := make([]string, 0, opts.Nodes)
	for i := 0; i < opts.Nodes; i++ {
		ids = append(ids, fmt.Sprintf("n%d", i+1))
	}

	descriptors := buildDescriptors(totalRanges, maxKey, opts.ReplicationFactor, ids, assigner)
	table, err := keyspace.NewTable(descriptors, maxKey)
	if err != nil {
		return nil, fmt.Errorf("invalid range assignment: %w", err)
	}
	for _, desc := range table.Ranges() {
		if len(desc.Replicas) != opts.ReplicationFactor {
			return nil, fmt.Errorf("range %d has %d replicas, want %d", desc.ID, len(desc.Replicas), opts.ReplicationFactor)
		}
	}

	// Two-phase wiring: construct every node first, then hand all of
	// them the same read-only directory.
	dir := make(node.Directory, opts.Nodes)
	for _, id := range ids {
		dir[id] = node.New(id, table, storage.NewMemory(), opts.Quorum)
	}
	for _, n := range dir {
		n.SetDirectory(dir)
	}

	for _, desc := range table.Ranges() {
		log.Printf("[cluster] %s", &desc)
	}

	return &Cluster{
		table:  table,
		nodes:  dir,
		ids:    ids,
		maxKey: maxKey,
		rnd:    rnd,
	}, nil
}

// Submit validates a command and routes it through the named entry
// node. Validation failures leave every node's state untouched.
func (c *Cluster) Submit(nodeID string, cmd command.Command) (int, error) {
	if cmd.Key < 0 {
		return 0, fmt.Errorf("%w: key must be nonnegative, got %d", ErrInvalidKey, cmd.Key)
	}
	if cmd.Key > c.maxKey {
		return 0, fmt.Errorf("%w: key %d beyond keyspace bound %d", ErrInvalidKey, cmd.Key, c.maxKey)
	}
	// Value is ignored for Read and Delete, so only the ops that carry
	// one are validated.
	if cmd.Value < 0 && (cmd.Op == command.OpCreate || cmd.Op == command.OpUpdate) {
		return 0, fmt.Errorf("%w: value must be nonnegative, got %d", ErrInvalidValue, cmd.Value)
	}

	entry, err := c.nodes.Lookup(nodeID)
	if err != nil {
		return 0, err
	}
	return entry.Route(cmd)
}

// SubmitAny submits through a randomly chosen entry node, modeling a
// client that contacts an arbitrary cluster member.
func (c *Cluster) SubmitAny(cmd command.Command) (int, error) {
	return c.Submit(c.ids[c.rnd.Intn(len(c.ids))], cmd)
}

// Insert creates a key-value pair.
func (c *Cluster) Insert(key, value int) error {
	_, err := c.SubmitAny(command.New(command.OpCreate, key, value))
	return err
}

// Get reads the value stored under key.
func (c *Cluster) Get(key int) (int, error) {
	return c.SubmitAny(command.New(command.OpRead, key, 0))
}

// Update overwrites the value of an existing key.
func (c *Cluster) Update(key, value int) error {
	_, err := c.SubmitAny(command.New(command.OpUpdate, key, value))
	return err
}

// Remove deletes an existing key.
func (c *Cluster) Remove(key int) error {
	_, err := c.SubmitAny(command.New(command.OpDelete, key, 0))
	return err
}

// Node returns a node handle by ID.
func (c *Cluster) Node(id string) (*node.Node, error) {
	return c.nodes.Lookup(id)
}

// NodeIDs returns the node IDs in formation order.
func (c *Cluster) NodeIDs() []string {
	ids := make([]string, len(c.ids))
	copy(ids, c.ids)
	return ids
}

// Table returns the shared range table.
func (c *Cluster) Table() *keyspace.Table {
	return c.table
}

// MaxKey returns the inclusive keyspace bound.
func (c *Cluster) MaxKey() int {
	return c.maxKey
}

// ReplicaIDs returns the replica set of the range owning key, in the
// table's sorted order.
func (c *Cluster) ReplicaIDs(key int) ([]string, error) {
	desc, err := c.table.Find(key)
	if err != nil {
		return nil, err
	}
	replicas := make([]string, len(desc.Replicas))
	copy(replicas, desc.Replicas)
	return replicas, nil
}
