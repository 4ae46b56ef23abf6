package node

import (
	"fmt"
	"log"

	"rangekv/internal/command"
	"rangekv/internal/keyspace"
)

// Append adds a command to this node's pending log. Appends are
// unconditional; the entry stays orphaned if the command later aborts.
func (n *Node) Append(cmd command.Command) {
	n.log.Append(cmd)
	log.Printf("[%s] appended %s to log", n.id, cmd)
}

// Commit applies a previously appended command to this node's state
// machine. It re-validates replica ownership and range bounds, matches
// the command against the most recent pending log entry, removes the
// entry and dispatches the change to the storage applier.
func (n *Node) Commit(cmd command.Command, desc *keyspace.Descriptor) (int, error) {
	if n.log.Len() == 0 {
		return 0, fmt.Errorf("%w: log of %s is empty", ErrCommandNotLogged, n.id)
	}
	if !desc.HasReplica(n.id) {
		return 0, fmt.Errorf("%w: %s is not a replica of range %d", ErrRangeNotOwned, n.id, desc.ID)
	}
	if !desc.Contains(cmd.Key) {
		return 0, fmt.Errorf("%w: key %d outside range [%d, %d]", ErrKeyOutOfRange, cmd.Key, desc.Start, desc.End)
	}
	if !n.log.RemoveTail(cmd) {
		return 0, fmt.Errorf("%w: %s does not match tail of log on %s", ErrCommandNotLogged, cmd, n.id)
	}

	switch cmd.Op {
	case command.OpCreate:
		return 0, n.store.Create(cmd.Key, cmd.Value)
	case command.OpUpdate:
		return 0, n.store.Update(cmd.Key, cmd.Value)
	case command.OpDelete:
		return 0, n.store.Delete(cmd.Key)
	default:
		return 0, fmt.Errorf("cannot commit operation %s", cmd.Op)
	}
}
