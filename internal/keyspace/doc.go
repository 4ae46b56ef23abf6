// Package keyspace models the partitioning of the logical keyspace into
// ranges. Each range is described by a descriptor naming its bounds and
// replica roles, and the table supports predecessor lookup from a key to
// its owning range.
package keyspace
