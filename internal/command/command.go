package command

import (
	"fmt"

	"github.com/google/uuid"
)

// Op identifies the kind of change a command carries.
type Op int

const (
	OpCreate Op = iota
	OpRead
	OpUpdate
	OpDelete
)

// String returns a human-readable operation name.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpRead:
		return "READ"
	case OpUpdate:
		return "UPDATE"
	case OpDelete:
		return "DELETE"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Command is an immutable request against the keyspace. Value is ignored
// for Read and Delete. Every command carries a unique ID so that replica
// logs can match entries by identity rather than by field equality.
type Command struct {
	ID    uuid.UUID
	Op    Op
	Key   int
	Value int
}

// New creates a command with a fresh ID.
func New(op Op, key, value int) Command {
	return Command{
		ID:    uuid.New(),
		Op:    op,
		Key:   key,
		Value: value,
	}
}

// String formats the command for log output.
func (c Command) String() string {
	switch c.Op {
	case OpRead, OpDelete:
		return fmt.Sprintf("%s(key=%d)", c.Op, c.Key)
	default:
		return fmt.Sprintf("%s(key=%d, value=%d)", c.Op, c.Key, c.Value)
	}
}
