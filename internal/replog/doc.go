// Package replog implements the per-node append-only log of pending
// commands. Entries are appended during the replication phase and removed
// individually when the matching command commits.
package replog
