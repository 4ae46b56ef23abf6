// Package quorum defines the acknowledgement policy for replication
// phases. The replication coordinator asks the policy how many replicas
// must acknowledge a phase and tracks successes and failures against
// that threshold.
package quorum
