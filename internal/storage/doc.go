// Package storage provides the per-node key-value state machine consumed
// by the commit path. The applier is an interface so that the concrete
// engine stays replaceable; the in-memory implementation is the default.
package storage
