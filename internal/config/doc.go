// Package config holds the driver configuration: cluster size,
// replication factor, keyspace bound and quorum policy, loadable from a
// YAML file with flag overrides.
package config
