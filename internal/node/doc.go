// Package node implements a single node of the cluster: the router that
// resolves a command's owning range and forwards toward the leaseholder,
// the leaseholder's dispatch to the range leader, and the leader's
// replication coordinator that appends to every replica log before
// committing against the key-value state machines.
//
// All inter-node calls are in-process method calls through the shared
// node directory; no transport is involved.
package node
