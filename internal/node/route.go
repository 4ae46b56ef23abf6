package node

import (
	"errors"
	"fmt"
	"log"

	"rangekv/internal/command"
	"rangekv/internal/keyspace"
)

// Route is the per-node entry point for a command. It resolves the
// owning range and either starts leaseholder dispatch locally or
// forwards the unmodified command to the leaseholder's router, relaying
// its result verbatim. A single forwarding hop, no retries.
func (n *Node) Route(cmd command.Command) (int, error) {
	desc, err := n.table.Find(cmd.Key)
	if err != nil {
		if errors.Is(err, keyspace.ErrRangeNotFound) {
			return 0, fmt.Errorf("%w: key %d", ErrKeyOutOfRange, cmd.Key)
		}
		return 0, err
	}

	if desc.Leaseholder == n.id {
		return n.SendToLeader(cmd, desc)
	}

	log.Printf("[%s] forwarding %s to leaseholder %s of %s", n.id, cmd, desc.Leaseholder, desc)
	leaseholder, err := n.peers.Lookup(desc.Leaseholder)
	if err != nil {
		return 0, err
	}
	return leaseholder.Route(cmd)
}

// SendToLeader forwards a command from the leaseholder to the range
// leader's replication coordinator and returns its result unchanged.
// It models leaseholder-mediated forwarding and must only run at the
// descriptor's leaseholder.
func (n *Node) SendToLeader(cmd command.Command, desc *keyspace.Descriptor) (int, error) {
	if desc.Leaseholder != n.id {
		return 0, fmt.Errorf("%w: %s is not the leaseholder of range %d", ErrNotLeaseholder, n.id, desc.ID)
	}

	leader, err := n.peers.Lookup(desc.Leader)
	if err != nil {
		return 0, err
	}
	return leader.Process(cmd, desc)
}
