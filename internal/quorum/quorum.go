package quorum

import "fmt"

// Policy determines how many replicas must acknowledge each replication
// phase. PolicyAll waits for every replica; the other policies relax
// the threshold without changing the sequential phase structure.
type Policy int

const (
	// PolicyAll requires every replica to acknowledge.
	PolicyAll Policy = iota
	// PolicyAllButOne tolerates a single failed replica.
	PolicyAllButOne
	// PolicyMajority requires floor(n/2)+1 acknowledgements.
	PolicyMajority
)

// ParsePolicy parses a policy name as used in configuration.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "all":
		return PolicyAll, nil
	case "all-but-one":
		return PolicyAllButOne, nil
	case "majority":
		return PolicyMajority, nil
	default:
		return PolicyAll, fmt.Errorf("unknown quorum policy %q (want all, all-but-one or majority)", s)
	}
}

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyAll:
		return "all"
	case PolicyAllButOne:
		return "all-but-one"
	case PolicyMajority:
		return "majority"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Required returns the number of acknowledgements needed out of n
// replicas. It never returns less than 1.
func (p Policy) Required(n int) int {
	var required int
	switch p {
	case PolicyAllButOne:
		required = n - 1
	case PolicyMajority:
		required = n/2 + 1
	default:
		required = n
	}
	if required < 1 {
		required = 1
	}
	return required
}

// Tracker counts acknowledgements for a single replication phase across
// a fixed replica set.
type Tracker struct {
	required int
	acks     int
	pending  int
}

// NewTracker creates a tracker for a phase spanning n replicas.
func (p Policy) NewTracker(n int) *Tracker {
	return &Tracker{required: p.Required(n), pending: n}
}

// Ack records a successful replica.
func (t *Tracker) Ack() {
	t.acks++
	t.pending--
}

// Fail records a failed replica.
func (t *Tracker) Fail() {
	t.pending--
}

// Met reports whether the phase has gathered the required
// acknowledgements.
func (t *Tracker) Met() bool {
	return t.acks >= t.required
}

// Feasible reports whether the phase can still meet the threshold given
// the replicas not yet visited. Once it turns false the coordinator
// aborts the phase immediately.
func (t *Tracker) Feasible() bool {
	return t.acks+t.pending >= t.required
}

// Acks returns the acknowledgements gathered so far.
func (t *Tracker) Acks() int {
	return t.acks
}

// Required returns the acknowledgement threshold for the phase.
func (t *Tracker) Required() int {
	return t.required
}
