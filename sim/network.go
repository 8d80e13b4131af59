package sim

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// ErrNoRoute is returned when the routing table has no entry for a pair of
// distinct nodes. Shapes validated by NewShape never produce it.
var ErrNoRoute = errors.New("no route between nodes")

const unreachable = int(^uint(0) >> 1)

// Network is the graph derived from a Shape under one Configuration, together
// with its all-pairs shortest-path routing table. It is immutable and safe to
// share between goroutines.
type Network struct {
	config    Configuration
	adjacency [][]Node // sorted neighbor lists
	dist      [][]int
	next      [][]Node
}

// Build derives adjacency and the routing table for shape under cfg. It has
// no side effects: the same inputs always produce the same Network.
//
// Adjacency is seeded with the intra-rack pairs, then every switch adds the
// edge from each of its four nodes to the node across it. Routing uses
// Floyd-Warshall over hop counts. Intermediate, source and destination nodes
// are visited in ascending id and a path is only replaced on strict
// improvement, so among equal-length shortest paths the first one found in
// that order is kept.
func Build(shape *Shape, cfg Configuration) (*Network, error) {
	if len(cfg) != shape.NumSwitches() {
		return nil, fmt.Errorf("got %d states for %d switches: %w", len(cfg), shape.NumSwitches(), ErrStateLength)
	}
	k := shape.NumNodes()

	adj := make([]map[Node]bool, k)
	for i := range adj {
		adj[i] = make(map[Node]bool)
	}
	link := func(a, b Node) {
		adj[a][b] = true
		adj[b][a] = true
	}
	for _, r := range shape.racks {
		link(r[0], r[1])
	}
	for si, sw := range shape.switches {
		for _, r := range []Rack{sw.A, sw.B} {
			for _, n := range r {
				peer, err := sw.Adjacent(cfg[si], n)
				if err != nil {
					return nil, err
				}
				link(n, peer)
			}
		}
	}

	n := &Network{
		config:    append(Configuration(nil), cfg...),
		adjacency: make([][]Node, k),
		dist:      make([][]int, k),
		next:      make([][]Node, k),
	}
	for i := 0; i < k; i++ {
		for peer := range adj[i] {
			n.adjacency[i] = append(n.adjacency[i], peer)
		}
		sort.Slice(n.adjacency[i], func(a, b int) bool { return n.adjacency[i][a] < n.adjacency[i][b] })

		n.dist[i] = make([]int, k)
		n.next[i] = make([]Node, k)
		for j := 0; j < k; j++ {
			switch {
			case i == j:
				n.dist[i][j] = 0
				n.next[i][j] = Node(j)
			case adj[i][Node(j)]:
				n.dist[i][j] = 1
				n.next[i][j] = Node(j)
			default:
				n.dist[i][j] = unreachable
				n.next[i][j] = -1
			}
		}
	}

	for via := 0; via < k; via++ {
		for src := 0; src < k; src++ {
			if src == via || n.dist[src][via] == unreachable {
				continue
			}
			for dst := 0; dst < k; dst++ {
				if dst == src || dst == via || n.dist[via][dst] == unreachable {
					continue
				}
				if d := n.dist[src][via] + n.dist[via][dst]; d < n.dist[src][dst] {
					n.dist[src][dst] = d
					n.next[src][dst] = n.next[src][via]
				}
			}
		}
	}

	for src := 0; src < k; src++ {
		for dst := 0; dst < k; dst++ {
			if n.next[src][dst] < 0 {
				return nil, fmt.Errorf("config %s: %d -> %d: %w", cfg, src, dst, ErrNoRoute)
			}
		}
	}
	return n, nil
}

// Configuration returns the switch states this network was built from.
func (n *Network) Configuration() Configuration {
	return append(Configuration(nil), n.config...)
}

// NumNodes returns K.
func (n *Network) NumNodes() int { return len(n.adjacency) }

// Neighbors returns the one-hop neighbors of node in ascending order.
func (n *Network) Neighbors(node Node) []Node {
	return append([]Node(nil), n.adjacency[node]...)
}

// NextHop returns the second node on the chosen shortest path from src to dst.
// src == dst has no next hop; callers deliver same-node traffic locally.
func (n *Network) NextHop(src, dst Node) (Node, error) {
	if src == dst {
		return 0, fmt.Errorf("next hop %d -> %d: source equals destination", src, dst)
	}
	if !n.valid(src) || !n.valid(dst) {
		return 0, fmt.Errorf("next hop %d -> %d: %w", src, dst, ErrUnknownNode)
	}
	hop := n.next[src][dst]
	if hop < 0 {
		return 0, fmt.Errorf("%d -> %d: %w", src, dst, ErrNoRoute)
	}
	return hop, nil
}

// Hops returns the shortest-path length in hops.
func (n *Network) Hops(src, dst Node) int {
	return n.dist[src][dst]
}

// Path materializes the node sequence from src to dst, both inclusive.
func (n *Network) Path(src, dst Node) ([]Node, error) {
	path := []Node{src}
	for curr := src; curr != dst; {
		hop, err := n.NextHop(curr, dst)
		if err != nil {
			return nil, err
		}
		if len(path) > n.NumNodes() {
			return nil, fmt.Errorf("path %d -> %d: %w", src, dst, ErrRoutingLoop)
		}
		path = append(path, hop)
		curr = hop
	}
	return path, nil
}

// Diameter returns the longest shortest path in hops.
func (n *Network) Diameter() int {
	d := 0
	for _, row := range n.dist {
		for _, v := range row {
			if v > d {
				d = v
			}
		}
	}
	return d
}

// Graph exports the network as a gonum undirected graph with node ids equal
// to Node values.
func (n *Network) Graph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := range n.adjacency {
		g.AddNode(simple.Node(i))
	}
	for i, peers := range n.adjacency {
		for _, p := range peers {
			if int(p) > i {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(p)))
			}
		}
	}
	return g
}

func (n *Network) valid(node Node) bool {
	return node >= 0 && int(node) < len(n.adjacency)
}

// Topology is a mutable view over a Shape: it holds the current switch states
// and keeps the derived Network consistent with them. Every SetStates call
// rebuilds the whole network.
type Topology struct {
	shape   *Shape
	network *Network
}

// NewTopology returns a Topology with every switch in the cross state.
func NewTopology(shape *Shape) *Topology {
	net, err := Build(shape, ConfigurationFromIndex(0, shape.NumSwitches()))
	if err != nil {
		panic(fmt.Sprintf("NewTopology: validated shape failed to build: %v", err))
	}
	return &Topology{shape: shape, network: net}
}

// SetStates applies a full state vector (true = bar) and rebuilds adjacency
// and routing. On error the previous state is kept.
func (t *Topology) SetStates(states []bool) error {
	net, err := Build(t.shape, FromBools(states))
	if err != nil {
		return err
	}
	t.network = net
	return nil
}

// Shape returns the topology's layout.
func (t *Topology) Shape() *Shape { return t.shape }

// Network returns the network for the current states.
func (t *Topology) Network() *Network { return t.network }

// Configuration returns the current switch states.
func (t *Topology) Configuration() Configuration { return t.network.Configuration() }

// Adjacent returns the node across switch sw from node under the current state.
func (t *Topology) Adjacent(sw int, node Node) (Node, error) {
	if sw < 0 || sw >= t.shape.NumSwitches() {
		return 0, fmt.Errorf("switch %d out of range", sw)
	}
	return t.shape.switches[sw].Adjacent(t.network.config[sw], node)
}
