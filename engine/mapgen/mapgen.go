// Package mapgen builds the run's directed acyclic node graph: a start
// node, Sets layered content "sets", and a boss layer. Generation is pure
// and total; it cannot fail for any valid seed.
package mapgen

import (
	"fmt"
	"sort"

	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/types"
)

const (
	// Sets is the number of content layers in a run.
	Sets = 14

	maxChallenge = 2
	maxRest      = 3
	maxShop      = 2

	// A shop is guaranteed somewhere in this depth window.
	shopWindowLo = 11
	shopWindowHi = 13

	extraEdgeChance  = 0.55
	secondEdgeChance = 0.12
)

// nodeID builds the deterministic node identifier.
func nodeID(depth, index int) string {
	return fmt.Sprintf("d%d_n%d", depth, index)
}

// Generate builds a RunMap from the seed. The rng stream drives every
// decision; two calls with equal seeds produce structurally identical
// graphs.
func Generate(seed uint32, r *rng.Rand) *types.RunMap {
	m := &types.RunMap{
		Seed:      seed,
		Nodes:     make(map[string]*types.Node),
		Sets:      Sets,
		BossDepth: Sets + 1,
	}

	start := &types.Node{ID: nodeID(0, 0), Depth: 0, Type: types.NodeStart}
	m.Nodes[start.ID] = start
	m.StartID = start.ID

	// Node counts are biased toward 2 per layer.
	countChoices := []int{1, 2, 2, 2, 3}

	layers := make([][]*types.Node, Sets+1) // index by depth, [0] unused
	challenges, rests, shops := 0, 0, 0

	for depth := 1; depth <= Sets; depth++ {
		count := countChoices[r.Intn(len(countChoices))]
		for i := 0; i < count; i++ {
			var nt types.NodeType
			switch {
			case depth == Sets:
				// The last content layer is always REST and does
				// not count against the rest cap.
				nt = types.NodeRest
			case depth <= 2:
				early := []types.NodeType{types.NodeFight, types.NodeFight, types.NodeEvent}
				nt = early[r.Intn(len(early))]
			default:
				pool := []types.NodeType{types.NodeFight, types.NodeFight, types.NodeEvent}
				if challenges < maxChallenge {
					pool = append(pool, types.NodeChallenge)
				}
				if rests < maxRest {
					pool = append(pool, types.NodeRest)
				}
				if shops < maxShop {
					pool = append(pool, types.NodeShop)
				}
				nt = pool[r.Intn(len(pool))]
				switch nt {
				case types.NodeChallenge:
					challenges++
				case types.NodeRest:
					rests++
				case types.NodeShop:
					shops++
				}
			}

			n := &types.Node{ID: nodeID(depth, i), Depth: depth, Type: nt}
			m.Nodes[n.ID] = n
			layers[depth] = append(layers[depth], n)
		}
	}

	ensureShopWindow(m, layers, r, shops)

	boss := &types.Node{ID: nodeID(Sets+1, 0), Depth: Sets + 1, Type: types.NodeBoss}
	m.Nodes[boss.ID] = boss
	m.BossID = boss.ID

	wireEdges(m, layers, start, boss, r)

	return m
}

// ensureShopWindow guarantees at least one SHOP among the window depths,
// promoting a node there and demoting a shop elsewhere if the cap is
// saturated. Any inconsistency degrades gracefully: the map is left as-is.
func ensureShopWindow(m *types.RunMap, layers [][]*types.Node, r *rng.Rand, shops int) {
	for depth := shopWindowLo; depth <= shopWindowHi && depth < Sets; depth++ {
		for _, n := range layers[depth] {
			if n.Type == types.NodeShop {
				return
			}
		}
	}

	// Candidates: non-REST nodes inside the window.
	var candidates []*types.Node
	for depth := shopWindowLo; depth <= shopWindowHi && depth < Sets; depth++ {
		for _, n := range layers[depth] {
			if n.Type != types.NodeRest {
				candidates = append(candidates, n)
			}
		}
	}
	if len(candidates) == 0 {
		return
	}
	sortByID(candidates)
	promoted := candidates[r.Intn(len(candidates))]
	promoted.Type = types.NodeShop

	if shops < maxShop {
		return
	}

	// Cap saturated: demote one existing shop outside the window.
	var outside []*types.Node
	for depth := 1; depth < Sets; depth++ {
		for _, n := range layers[depth] {
			if n.Type == types.NodeShop && n != promoted &&
				(n.Depth < shopWindowLo || n.Depth > shopWindowHi) {
				outside = append(outside, n)
			}
		}
	}
	if len(outside) == 0 {
		return
	}
	sortByID(outside)
	outside[r.Intn(len(outside))].Type = types.NodeFight
}

// wireEdges connects layers so that no node dead-ends and no node is
// orphaned, then adds extra branching and converges the final content
// layer onto the boss.
func wireEdges(m *types.RunMap, layers [][]*types.Node, start, boss *types.Node, r *rng.Rand) {
	// START connects to every node at depth 1.
	for _, n := range layers[1] {
		start.Next = append(start.Next, n.ID)
	}
	sort.Strings(start.Next)

	for depth := 1; depth < Sets; depth++ {
		from := layers[depth]
		to := layers[depth+1]
		if len(from) == 0 || len(to) == 0 {
			continue
		}

		// Every node gets at least one forward edge (no dead ends).
		for _, n := range from {
			target := to[r.Intn(len(to))]
			addEdge(n, target.ID)
		}

		// Every child gets at least one incoming edge (no orphans):
		// round-robin shuffled parents over unreached children.
		parents := make([]*types.Node, len(from))
		copy(parents, from)
		rng.Shuffle(r, parents)
		for i, child := range to {
			if hasIncoming(from, child.ID) {
				continue
			}
			addEdge(parents[i%len(parents)], child.ID)
		}

		// Extra branching.
		for _, n := range from {
			if r.Chance(extraEdgeChance) {
				addEdge(n, to[r.Intn(len(to))].ID)
			}
			if r.Chance(secondEdgeChance) {
				addEdge(n, to[r.Intn(len(to))].ID)
			}
		}

		for _, n := range from {
			sort.Strings(n.Next)
		}
	}

	// The final content layer converges on the boss.
	for _, n := range layers[Sets] {
		n.Next = []string{boss.ID}
	}
}

// addEdge appends a deduplicated outgoing edge.
func addEdge(n *types.Node, targetID string) {
	for _, id := range n.Next {
		if id == targetID {
			return
		}
	}
	n.Next = append(n.Next, targetID)
}

// hasIncoming reports whether any node in layer points to id.
func hasIncoming(layer []*types.Node, id string) bool {
	for _, n := range layer {
		for _, next := range n.Next {
			if next == id {
				return true
			}
		}
	}
	return false
}

// sortByID keeps candidate ordering stable so draws are deterministic.
func sortByID(nodes []*types.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
}
