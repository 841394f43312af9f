package grid

import (
	"fmt"

	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/coord"
)

// Node is one search-state entry: a parent pointer (absent for the
// start) and an expanded flag. Invariant (spec.md §3): Expanded==true
// implies HasParent==true, except for the start node.
type Node struct {
	Parent    coord.Coord
	HasParent bool
	Expanded  bool
}

// NodeTable is the sparse mapping from lattice coordinate to Node
// (C2). Entries are created lazily on first reference and never evicted
// during a single plan, matching spec.md §4.2 and the teacher's
// reusable-buffer idiom (x/math/graph/bfs.go's visited/prev maps).
type NodeTable struct {
	mode   Mode
	bounds coord.Coord
	nodes  map[coord.Coord]*Node
	order  []coord.Coord // insertion order, for deterministic best-effort scans
}

// NewNodeTable creates a table sized by bounds (Shape for cell mode,
// Shape+1 for vertex mode, see Grid.Bounds).
func NewNodeTable(mode Mode, bounds coord.Coord) *NodeTable {
	return &NodeTable{
		mode:   mode,
		bounds: bounds,
		nodes:  make(map[coord.Coord]*Node),
	}
}

// Get returns the Node for c, creating it (Parent absent, Expanded
// false) on first reference. Returns an error if c's arity or any axis
// is out of the table's configured bounds.
func (t *NodeTable) Get(c coord.Coord) (*Node, error) {
	if c.N != t.bounds.N {
		return nil, fmt.Errorf("grid: coordinate arity %d does not match node table arity %d", c.N, t.bounds.N)
	}
	for i := 0; i < c.N; i++ {
		if c.V[i] < 0 || c.V[i] >= t.bounds.V[i] {
			return nil, fmt.Errorf("grid: coordinate %v out of %s bounds on axis %d", c.Slice(), t.mode, i)
		}
	}
	if n, ok := t.nodes[c]; ok {
		return n, nil
	}
	n := &Node{}
	t.nodes[c] = n
	t.order = append(t.order, c)
	return n, nil
}

// Len returns the number of created nodes.
func (t *NodeTable) Len() int { return len(t.nodes) }

// Expanded iterates the created nodes in insertion order, yielding only
// those with Expanded==true. Deterministic iteration order lets
// best-effort path reconstruction break ties reproducibly (spec.md
// §8 P5 planner idempotence).
func (t *NodeTable) Expanded(yield func(c coord.Coord, n *Node) bool) {
	for _, c := range t.order {
		n := t.nodes[c]
		if !n.Expanded {
			continue
		}
		if !yield(c, n) {
			return
		}
	}
}
