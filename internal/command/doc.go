// Package command defines the commands that flow through the routing and
// replication layers. A command is a single low-level change against the
// key-value store, created per request and discarded after completion.
package command
