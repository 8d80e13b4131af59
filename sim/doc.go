// Package sim provides the topology, routing and cost-evaluation engine for
// reconfigurable circuit-switched interconnects.
//
// # Reading Guide
//
// Start with these files:
//   - topology.go: nodes, racks, circuit switches and the immutable Shape
//   - network.go: Build (adjacency + Floyd-Warshall next-hop table) and the mutable Topology view
//   - cost.go: replaying a traffic matrix over a routing table
//
// # Architecture
//
// The sim package owns the model and the pure evaluation functions;
// policies and drivers live in sub-packages:
//   - sim/strategy/: reconfiguration strategies over a CostTable
//   - sim/sweep/: parallel cost-table construction and relabeling search
//   - sim/workload/: loading per-timestep traffic matrices from disk
//   - sim/report/: comparison reports across strategies
//
// A Configuration is a vector of switch states. Every configuration has an
// integer index (switch 0 is the most significant bit, 0 is all-cross) and
// all minimum selections break ties by the lowest index.
package sim
