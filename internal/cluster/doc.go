// Package cluster forms a cluster and exposes the client entry point.
// Formation partitions the keyspace into ranges, assigns replica roles
// through a pluggable assigner, constructs the nodes and wires them to a
// shared read-only directory in a second phase.
package cluster
