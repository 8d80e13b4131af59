package sim

import (
	"errors"
	"fmt"
)

// ErrRoutingLoop is returned when replaying a flow over the routing table
// does not reach its destination within the hop bound.
var ErrRoutingLoop = errors.New("routing walk exceeded hop bound")

// Link is a directed hop between two nodes. A link from a node to itself
// carries same-node traffic, which is never routed.
type Link struct {
	From, To Node
}

// LinkLoads replays every flow of m hop by hop over net and returns the bytes
// carried per link. Diagonal entries are charged to the self link without
// traversal.
func LinkLoads(m *TrafficMatrix, net *Network) (map[Link]int64, error) {
	k := net.NumNodes()
	if m.Size() != k {
		return nil, fmt.Errorf("timestep %d: %d×%d matrix for %d-node network: %w", m.Timestep, m.Size(), m.Size(), k, ErrDimension)
	}
	loads := make(map[Link]int64)
	for src := 0; src < k; src++ {
		for dst := 0; dst < k; dst++ {
			bytes := m.Bytes[src][dst]
			if bytes == 0 {
				continue
			}
			if src == dst {
				loads[Link{Node(src), Node(src)}] += bytes
				continue
			}
			curr := Node(src)
			for hops := 0; curr != Node(dst); hops++ {
				// a shortest path visits each node at most once
				if hops >= k {
					return nil, fmt.Errorf("timestep %d: flow %d -> %d: %w", m.Timestep, src, dst, ErrRoutingLoop)
				}
				next, err := net.NextHop(curr, Node(dst))
				if err != nil {
					return nil, err
				}
				loads[Link{curr, next}] += bytes
				curr = next
			}
		}
	}
	return loads, nil
}

// ComputeCost returns the total bytes carried over all links when m is routed
// over net. Multi-hop flows are charged once per hop.
func ComputeCost(m *TrafficMatrix, net *Network) (int64, error) {
	loads, err := LinkLoads(m, net)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, v := range loads {
		total += v
	}
	return total, nil
}
