package sim

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Node identifies one endpoint group of the interconnect (0..K-1).
type Node int

// Rack is an ordered pair of co-located nodes. Position matters: a circuit
// switch joins positions of two racks according to its state.
type Rack [2]Node

// Position returns the index (0 or 1) of n within the rack, or -1.
func (r Rack) Position(n Node) int {
	return slices.Index(r[:], n)
}

// Contains reports whether n is one of the rack's nodes.
func (r Rack) Contains(n Node) bool {
	return r.Position(n) >= 0
}

// SwitchState is the cross-connect setting of a circuit switch.
type SwitchState bool

const (
	// Cross joins position i of one rack to position 1-i of the other.
	Cross SwitchState = false
	// Bar joins position i of one rack to position i of the other.
	Bar SwitchState = true
)

// String returns "cross" or "bar".
func (s SwitchState) String() string {
	if s == Bar {
		return "bar"
	}
	return "cross"
}

var (
	// ErrUnknownNode is returned when a node is not attached to a switch or shape.
	ErrUnknownNode = errors.New("node not attached")
	// ErrStateLength is returned when a state vector does not match the switch count.
	ErrStateLength = errors.New("switch state vector length mismatch")
	// ErrInvalidShape is returned by NewShape for malformed rack/switch layouts.
	ErrInvalidShape = errors.New("invalid topology shape")
)

// CircuitSwitch (OCS) connects exactly two racks, identified by their index
// in the owning Shape.
type CircuitSwitch struct {
	A, B Rack
}

// Adjacent returns the node across the switch from n when the switch is in
// the given state.
func (c CircuitSwitch) Adjacent(state SwitchState, n Node) (Node, error) {
	from, to := c.A, c.B
	i := from.Position(n)
	if i < 0 {
		from, to = c.B, c.A
		i = from.Position(n)
	}
	if i < 0 {
		return 0, fmt.Errorf("switch %v-%v: node %d: %w", c.A, c.B, n, ErrUnknownNode)
	}
	if state == Bar {
		return to[i], nil
	}
	return to[(i+1)%2], nil
}

// SwitchSpec names the two racks (by index) a switch connects.
type SwitchSpec struct {
	A, B int
}

// Shape is the immutable physical layout: racks and the switches between
// them. Switch order defines the order of entries in a Configuration.
type Shape struct {
	racks    []Rack
	switches []CircuitSwitch
	specs    []SwitchSpec
	numNodes int
}

// NewShape validates and builds a Shape. Nodes must be exactly 0..2*len(racks)-1,
// each used once; every switch must join two distinct racks; the rack graph
// must be connected so that every configuration yields a connected network.
func NewShape(racks []Rack, switches []SwitchSpec) (*Shape, error) {
	if len(racks) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 racks, got %d", ErrInvalidShape, len(racks))
	}
	if len(switches) == 0 {
		return nil, fmt.Errorf("%w: no switches", ErrInvalidShape)
	}
	if len(switches) > MaxSwitches {
		return nil, fmt.Errorf("%w: %d switches exceeds limit of %d", ErrInvalidShape, len(switches), MaxSwitches)
	}

	numNodes := 2 * len(racks)
	seen := make([]bool, numNodes)
	for ri, r := range racks {
		for _, n := range r {
			if n < 0 || int(n) >= numNodes {
				return nil, fmt.Errorf("%w: rack %d: node %d outside 0..%d", ErrInvalidShape, ri, n, numNodes-1)
			}
			if seen[n] {
				return nil, fmt.Errorf("%w: node %d appears in more than one rack slot", ErrInvalidShape, n)
			}
			seen[n] = true
		}
	}

	s := &Shape{
		racks:    slices.Clone(racks),
		specs:    slices.Clone(switches),
		numNodes: numNodes,
	}
	g := simple.NewUndirectedGraph()
	for i := range racks {
		g.AddNode(simple.Node(i))
	}
	for si, sw := range switches {
		if sw.A < 0 || sw.A >= len(racks) || sw.B < 0 || sw.B >= len(racks) {
			return nil, fmt.Errorf("%w: switch %d references unknown rack", ErrInvalidShape, si)
		}
		if sw.A == sw.B {
			return nil, fmt.Errorf("%w: switch %d joins rack %d to itself", ErrInvalidShape, si, sw.A)
		}
		s.switches = append(s.switches, CircuitSwitch{A: racks[sw.A], B: racks[sw.B]})
		g.SetEdge(g.NewEdge(simple.Node(sw.A), simple.Node(sw.B)))
	}
	if cc := topo.ConnectedComponents(g); len(cc) != 1 {
		return nil, fmt.Errorf("%w: racks form %d disconnected groups", ErrInvalidShape, len(cc))
	}
	return s, nil
}

// MaxSwitches bounds the exhaustive configuration space (2^MaxSwitches).
const MaxSwitches = 20

// SlimFly3 returns the 3-rack, 6-node shape: racks (0,3), (1,4), (2,5) and
// switches S1(rack0,rack1), S2(rack0,rack2), S3(rack1,rack2).
func SlimFly3() *Shape {
	s, err := NewShape(
		[]Rack{{0, 3}, {1, 4}, {2, 5}},
		[]SwitchSpec{{0, 1}, {0, 2}, {1, 2}},
	)
	if err != nil {
		panic(fmt.Sprintf("SlimFly3: %v", err))
	}
	return s
}

// NumNodes returns K, the number of nodes.
func (s *Shape) NumNodes() int { return s.numNodes }

// NumSwitches returns the number of circuit switches.
func (s *Shape) NumSwitches() int { return len(s.switches) }

// NumConfigurations returns 2^NumSwitches.
func (s *Shape) NumConfigurations() int { return 1 << len(s.switches) }

// Racks returns a copy of the racks.
func (s *Shape) Racks() []Rack { return slices.Clone(s.racks) }

// Switch returns the i-th switch.
func (s *Shape) Switch(i int) CircuitSwitch { return s.switches[i] }

// SwitchSpecs returns a copy of the rack-index pairs of each switch.
func (s *Shape) SwitchSpecs() []SwitchSpec { return slices.Clone(s.specs) }

// RackOf returns the rack containing n.
func (s *Shape) RackOf(n Node) (Rack, error) {
	for _, r := range s.racks {
		if r.Contains(n) {
			return r, nil
		}
	}
	return Rack{}, fmt.Errorf("node %d: %w", n, ErrUnknownNode)
}
