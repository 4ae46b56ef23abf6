package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"rangekv/internal/cluster"
	"rangekv/internal/quorum"
)

// Config describes the cluster the driver forms.
type Config struct {
	Nodes             int    `yaml:"nodes"`
	ReplicationFactor int    `yaml:"replication_factor"`
	MaxKey            int    `yaml:"max_key"`
	RangesPerNode     int    `yaml:"ranges_per_node"`
	Quorum            string `yaml:"quorum"`
	// Seed fixes the random source for role assignment and entry-node
	// selection; 0 means time-seeded.
	Seed int64 `yaml:"seed"`
}

// Default returns the reference configuration: 5 nodes, replication
// factor 3, keyspace [0, 100].
func Default() Config {
	return Config{
		Nodes:             5,
		ReplicationFactor: 3,
		MaxKey:            cluster.DefaultMaxKey,
		RangesPerNode:     cluster.DefaultRangesPerNode,
		Quorum:            quorum.PolicyAll.String(),
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration bounds before formation.
func (c Config) Validate() error {
	if c.Nodes < 3 {
		return fmt.Errorf("nodes must be at least 3, got %d", c.Nodes)
	}
	if c.ReplicationFactor < 3 {
		return fmt.Errorf("replication_factor must be at least 3, got %d", c.ReplicationFactor)
	}
	if c.ReplicationFactor > c.Nodes {
		return fmt.Errorf("replication_factor %d exceeds nodes %d", c.ReplicationFactor, c.Nodes)
	}
	if c.MaxKey < 0 {
		return fmt.Errorf("max_key must be nonnegative, got %d", c.MaxKey)
	}
	if c.RangesPerNode < 1 {
		return fmt.Errorf("ranges_per_node must be at least 1, got %d", c.RangesPerNode)
	}
	if _, err := quorum.ParsePolicy(c.Quorum); err != nil {
		return err
	}
	return nil
}

// ClusterOptions converts the configuration into formation options.
func (c Config) ClusterOptions() (cluster.Options, error) {
	if err := c.Validate(); err != nil {
		return cluster.Options{}, err
	}
	policy, err := quorum.ParsePolicy(c.Quorum)
	if err != nil {
		return cluster.Options{}, err
	}

	opts := cluster.Options{
		Nodes:             c.Nodes,
		ReplicationFactor: c.ReplicationFactor,
		MaxKey:            c.MaxKey,
		RangesPerNode:     c.RangesPerNode,
		Quorum:            policy,
	}
	if c.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(c.Seed))
	}
	return opts, nil
}
