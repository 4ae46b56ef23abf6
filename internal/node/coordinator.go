package node

import (
	"fmt"
	"log"

	"rangekv/internal/command"
	"rangekv/internal/keyspace"
)

// Process runs the leader-side replication protocol for one command.
// Reads bypass replication and apply directly against the leader's
// state. Mutations run two sequential phases over the replica set in
// fixed order: append to every replica log, then commit against every
// replica's state machine, leader first. Each phase aborts as soon as
// the quorum policy can no longer be met; completed appends and applies
// are not rolled back.
func (n *Node) Process(cmd command.Command, desc *keyspace.Descriptor) (int, error) {
	if desc.Leader != n.id {
		return 0, fmt.Errorf("%w: %s is not the leader of range %d", ErrNotLeader, n.id, desc.ID)
	}

	if cmd.Op == command.OpRead {
		return n.store.Read(cmd.Key)
	}

	if err := n.replicate(cmd, desc); err != nil {
		return 0, err
	}
	return n.apply(cmd, desc)
}

// replicate is the append phase: the command lands in the leader's own
// log first, then in every follower's log.
func (n *Node) replicate(cmd command.Command, desc *keyspace.Descriptor) error {
	tracker := n.policy.NewTracker(len(desc.Replicas))

	n.Append(cmd)
	tracker.Ack()

	for _, id := range desc.Followers() {
		follower, err := n.peers.Lookup(id)
		if err != nil {
			tracker.Fail()
			log.Printf("[%s] append of %s to %s failed: %v", n.id, cmd, id, err)
			if !tracker.Feasible() {
				return fmt.Errorf("%w: append to %s: %v", ErrReplicationFailed, id, err)
			}
			continue
		}
		follower.Append(cmd)
		tracker.Ack()
	}

	if !tracker.Met() {
		return fmt.Errorf("%w: %d of %d appends acknowledged", ErrReplicationFailed, tracker.Acks(), tracker.Required())
	}
	return nil
}

// apply is the commit phase: the leader applies first and any leader
// failure aborts before followers are touched. Followers then apply in
// the same fixed order; a mid-phase abort leaves earlier replicas
// applied and later ones untouched.
func (n *Node) apply(cmd command.Command, desc *keyspace.Descriptor) (int, error) {
	result, err := n.Commit(cmd, desc)
	if err != nil {
		return 0, err
	}

	tracker := n.policy.NewTracker(len(desc.Replicas))
	tracker.Ack()

	for _, id := range desc.Followers() {
		follower, err := n.peers.Lookup(id)
		if err == nil {
			_, err = follower.Commit(cmd, desc)
		}
		if err != nil {
			tracker.Fail()
			log.Printf("[%s] commit of %s on %s failed: %v", n.id, cmd, id, err)
			if !tracker.Feasible() {
				return 0, err
			}
			continue
		}
		tracker.Ack()
	}

	if !tracker.Met() {
		return 0, fmt.Errorf("%w: %d of %d commits acknowledged", ErrReplicationFailed, tracker.Acks(), tracker.Required())
	}

	log.Printf("[%s] committed %s on range %d (%d/%d replicas)", n.id, cmd, desc.ID, tracker.Acks(), len(desc.Replicas))
	return result, nil
}
