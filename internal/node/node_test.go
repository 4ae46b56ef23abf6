package node

import (
	"errors"
	"testing"

	"rangekv/internal/command"
	"rangekv/internal/keyspace"
	"rangekv/internal/quorum"
	"rangekv/internal/storage"
)

// buildCluster wires a 5-node directory over a two-range table:
// range 0 [0, 49] with leader n1, leaseholder n2, replicas {n1, n2, n3};
// range 1 [50, 99] with leader n4, leaseholder n5, replicas {n3, n4, n5}.
func buildCluster(t *testing.T, policy quorum.Policy) (Directory, *keyspace.Table) {
	t.Helper()

	table, err := keyspace.NewTable([]keyspace.Descriptor{
		{ID: 0, Start: 0, End: 49, Leader: "n1", Leaseholder: "n2", Replicas: []string{"n1", "n2", "n3"}},
		{ID: 1, Start: 50, End: 99, Leader: "n4", Leaseholder: "n5", Replicas: []string{"n3", "n4", "n5"}},
	}, 99)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	dir := make(Directory)
	for _, id := range []string{"n1", "n2", "n3", "n4", "n5"} {
		dir[id] = New(id, table, storage.NewMemory(), policy)
	}
	for _, n := range dir {
		n.SetDirectory(dir)
	}
	return dir, table
}

func mustFind(t *testing.T, table *keyspace.Table, key int) *keyspace.Descriptor {
	t.Helper()
	desc, err := table.Find(key)
	if err != nil {
		t.Fatalf("Find(%d) failed: %v", key, err)
	}
	return desc
}

func TestRoute_CreateFromNonReplicaEntry(t *testing.T) {
	dir, _ := buildCluster(t, quorum.PolicyAll)

	// n5 is neither leaseholder nor replica of range 0;
	// routing forwards to n2 and n2 dispatches to leader n1.
	cmd := command.New(command.OpCreate, 3, 42)
	if _, err := dir["n5"].Route(cmd); err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	for _, id := range []string{"n1", "n2", "n3"} {
		value, err := dir[id].Store().Read(3)
		if err != nil {
			t.Errorf("[%s] expected key 3 after commit: %v", id, err)
		} else if value != 42 {
			t.Errorf("[%s] expected value 42, got %d", id, value)
		}
		if got := len(dir[id].LogEntries()); got != 0 {
			t.Errorf("[%s] expected empty log after commit, got %d entries", id, got)
		}
	}
	for _, id := range []string{"n4", "n5"} {
		if _, err := dir[id].Store().Read(3); !errors.Is(err, storage.ErrKeyNotFound) {
			t.Errorf("[%s] expected no state outside the replica set, got %v", id, err)
		}
	}
}

func TestRoute_SameResultFromEveryEntryNode(t *testing.T) {
	dir, _ := buildCluster(t, quorum.PolicyAll)

	if _, err := dir["n1"].Route(command.New(command.OpCreate, 60, 7)); err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	for id := range dir {
		value, err := dir[id].Route(command.New(command.OpRead, 60, 0))
		if err != nil {
			t.Errorf("Route read via %s failed: %v", id, err)
		} else if value != 7 {
			t.Errorf("Route read via %s = %d, want 7", id, value)
		}
	}
}

func TestRoute_KeyOutOfRange(t *testing.T) {
	dir, _ := buildCluster(t, quorum.PolicyAll)

	if _, err := dir["n1"].Route(command.New(command.OpCreate, 100, 1)); !errors.Is(err, ErrKeyOutOfRange) {
		t.Errorf("Expected ErrKeyOutOfRange, got %v", err)
	}
}

func TestSendToLeader_NotLeaseholder(t *testing.T) {
	dir, table := buildCluster(t, quorum.PolicyAll)
	desc := mustFind(t, table, 3)

	cmd := command.New(command.OpCreate, 3, 42)
	if _, err := dir["n1"].SendToLeader(cmd, desc); !errors.Is(err, ErrNotLeaseholder) {
		t.Errorf("Expected ErrNotLeaseholder, got %v", err)
	}
}

func TestProcess_NotLeader(t *testing.T) {
	dir, table := buildCluster(t, quorum.PolicyAll)
	desc := mustFind(t, table, 3)

	cmd := command.New(command.OpCreate, 3, 42)
	if _, err := dir["n2"].Process(cmd, desc); !errors.Is(err, ErrNotLeader) {
		t.Errorf("Expected ErrNotLeader, got %v", err)
	}
	if got := len(dir["n2"].LogEntries()); got != 0 {
		t.Errorf("Expected no log entries after rejected process, got %d", got)
	}
}

func TestCommit_EmptyLog(t *testing.T) {
	dir, table := buildCluster(t, quorum.PolicyAll)
	desc := mustFind(t, table, 3)

	cmd := command.New(command.OpCreate, 3, 42)
	if _, err := dir["n1"].Commit(cmd, desc); !errors.Is(err, ErrCommandNotLogged) {
		t.Errorf("Expected ErrCommandNotLogged, got %v", err)
	}
}

func TestCommit_RangeNotOwned(t *testing.T) {
	dir, table := buildCluster(t, quorum.PolicyAll)
	desc := mustFind(t, table, 3)

	// n4 is not a replica of range 0.
	cmd := command.New(command.OpCreate, 3, 42)
	dir["n4"].Append(cmd)
	if _, err := dir["n4"].Commit(cmd, desc); !errors.Is(err, ErrRangeNotOwned) {
		t.Errorf("Expected ErrRangeNotOwned, got %v", err)
	}
}

func TestCommit_KeyOutsideRangeBounds(t *testing.T) {
	dir, table := buildCluster(t, quorum.PolicyAll)
	desc := mustFind(t, table, 3)

	cmd := command.New(command.OpCreate, 60, 42)
	dir["n1"].Append(cmd)
	if _, err := dir["n1"].Commit(cmd, desc); !errors.Is(err, ErrKeyOutOfRange) {
		t.Errorf("Expected ErrKeyOutOfRange, got %v", err)
	}
}

func TestCommit_TailMismatch(t *testing.T) {
	dir, table := buildCluster(t, quorum.PolicyAll)
	desc := mustFind(t, table, 3)

	logged := command.New(command.OpCreate, 3, 42)
	dir["n1"].Append(logged)

	// Same fields, different identity.
	other := command.New(command.OpCreate, 3, 42)
	if _, err := dir["n1"].Commit(other, desc); !errors.Is(err, ErrCommandNotLogged) {
		t.Errorf("Expected ErrCommandNotLogged, got %v", err)
	}
	if got := len(dir["n1"].LogEntries()); got != 1 {
		t.Errorf("Expected logged entry to survive a mismatch, got %d entries", got)
	}
}
