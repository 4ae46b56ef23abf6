package replog

import "rangekv/internal/command"

// Log is an ordered sequence of pending commands. It is exclusively
// owned by its node and not synchronized: the cluster model serializes
// commands, so at most one is in flight per replica.
type Log struct {
	entries []command.Command
}

// New creates an empty log.
func New() *Log {
	return &Log{}
}

// Append adds a command at the tail. Appends are unconditional; a later
// abort can leave the entry orphaned, which is the documented
// partial-failure behavior.
func (l *Log) Append(cmd command.Command) {
	l.entries = append(l.entries, cmd)
}

// RemoveTail removes the most recent entry if its ID matches cmd.
// It reports whether a matching entry was removed.
func (l *Log) RemoveTail(cmd command.Command) bool {
	if len(l.entries) == 0 {
		return false
	}
	if l.entries[len(l.entries)-1].ID != cmd.ID {
		return false
	}
	l.entries = l.entries[:len(l.entries)-1]
	return true
}

// Len returns the number of pending entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Contains reports whether an entry with the given command ID is pending.
func (l *Log) Contains(cmd command.Command) bool {
	for _, e := range l.entries {
		if e.ID == cmd.ID {
			return true
		}
	}
	return false
}

// Entries returns a copy of the pending entries in append order.
func (l *Log) Entries() []command.Command {
	entries := make([]command.Command, len(l.entries))
	copy(entries, l.entries)
	return entries
}
