// Command rangekv forms an in-process cluster and drives it with a demo
// workload, logging routing, replication and commit activity along with
// per-node log and state dumps.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"rangekv/internal/cluster"
	"rangekv/internal/config"
	"rangekv/internal/storage"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		nodes      = flag.Int("nodes", 0, "number of nodes (overrides config)")
		rf         = flag.Int("replication-factor", 0, "replicas per range (overrides config)")
		maxKey     = flag.Int("max-key", 0, "inclusive keyspace bound (overrides config)")
		policy     = flag.String("quorum", "", "quorum policy: all, all-but-one or majority")
		seed       = flag.Int64("seed", 0, "random seed (0 = time-seeded)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *nodes != 0 {
		cfg.Nodes = *nodes
	}
	if *rf != 0 {
		cfg.ReplicationFactor = *rf
	}
	if *maxKey != 0 {
		cfg.MaxKey = *maxKey
	}
	if *policy != "" {
		cfg.Quorum = *policy
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	opts, err := cfg.ClusterOptions()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	c, err := cluster.New(opts)
	if err != nil {
		log.Fatalf("form cluster: %v", err)
	}

	runDemo(c, cfg.MaxKey)
}

// runDemo replays a workload exercising every operation, including
// out-of-range and not-found failures.
func runDemo(c *cluster.Cluster, maxKey int) {
	insert := func(key, value int) {
		if err := c.Insert(key, value); err != nil {
			log.Printf("[demo] insert (%d, %d) failed: %v", key, value, err)
			return
		}
		log.Printf("[demo] insert (%d, %d) ok", key, value)
	}
	get := func(key int) {
		value, err := c.Get(key)
		if err != nil {
			log.Printf("[demo] get %d failed: %v", key, err)
			return
		}
		log.Printf("[demo] get %d ok: value=%d", key, value)
	}
	update := func(key, value int) {
		if err := c.Update(key, value); err != nil {
			log.Printf("[demo] update (%d, %d) failed: %v", key, value, err)
			return
		}
		log.Printf("[demo] update (%d, %d) ok", key, value)
	}
	remove := func(key int) {
		if err := c.Remove(key); err != nil {
			log.Printf("[demo] remove %d failed: %v", key, err)
			return
		}
		log.Printf("[demo] remove %d ok", key)
	}

	insert(1, 223)
	insert(10, 65422)
	insert(20, 2652)
	insert(30, 2542)
	insert(40, 652)
	insert(70, 265)
	insert(50, 298)
	insert(maxKey+1, 265)
	insert(-1, 298)
	dumpNodes(c)

	for _, key := range []int{1, 10, 20, 30, 40, 31, 41} {
		get(key)
	}
	dumpNodes(c)

	update(1, 2223)
	update(10, 654224)
	update(20, 26352)
	update(30, 25842)
	update(40, 8652)
	update(32, 25842)
	update(49, 8652)
	dumpNodes(c)

	for _, key := range []int{1, 10, 20, 30, 40, 31, 49} {
		remove(key)
	}
	dumpNodes(c)
}

// dumpNodes prints every node's pending log and key-value state.
func dumpNodes(c *cluster.Cluster) {
	for _, id := range c.NodeIDs() {
		n, err := c.Node(id)
		if err != nil {
			log.Fatalf("node %s: %v", id, err)
		}

		var logEntries []string
		for _, e := range n.LogEntries() {
			logEntries = append(logEntries, e.String())
		}

		var state []string
		if mem, ok := n.Store().(*storage.Memory); ok {
			for _, e := range mem.Entries() {
				state = append(state, fmt.Sprintf("{%d: %d}", e.Key, e.Value))
			}
		}

		fmt.Fprintf(os.Stdout, "node %s\n  log:   [%s]\n  state: [%s]\n",
			id, strings.Join(logEntries, ", "), strings.Join(state, ", "))
	}
}
