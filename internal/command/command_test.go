package command

import "testing"

func TestNew_AssignsUniqueIDs(t *testing.T) {
	a := New(OpCreate, 3, 42)
	b := New(OpCreate, 3, 42)
	if a.ID == b.ID {
		t.Error("Expected distinct IDs for distinct commands")
	}
}

func TestOp_String(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "CREATE"},
		{OpRead, "READ"},
		{OpUpdate, "UPDATE"},
		{OpDelete, "DELETE"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", int(tt.op), got, tt.want)
		}
	}
}
