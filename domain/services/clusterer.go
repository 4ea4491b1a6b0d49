package services

import (
	"fmt"

	"clusterview-backend/domain/core/entities"
	"clusterview-backend/domain/core/valueobjects"
)

// Cluster is a maximal connected group of nodes at a given threshold,
// aggregated into a single visual unit. Clusters are derived values:
// every recompute builds a fresh set, nothing is mutated incrementally.
// IDs are stable only by construction order within one recompute, not
// across re-clusterings.
type Cluster struct {
	ID      string
	Members []valueobjects.NodeID // in discovery order
	Weight  float64
}

// Clusterer partitions nodes into connected components per group and
// computes an aggregate weight per component. It is a pure function of
// its inputs: no state, no error conditions, deterministic output for
// fixed inputs. The caller clamps the threshold before invocation; the
// clusterer does not validate it.
type Clusterer struct{}

// NewClusterer creates a new clusterer.
func NewClusterer() *Clusterer {
	return &Clusterer{}
}

// Cluster computes the visible clusters for the given threshold.
//
// Membership uses only edges with weight >= threshold whose endpoints
// both lie in the same group; components never merge across groups.
// Aggregate weight then runs over ALL edges regardless of their weight:
// an edge inside one cluster contributes its full weight, an edge
// spanning two clusters contributes half to each, and an edge with a
// dangling endpoint is skipped. Clusters whose final weight is not
// strictly positive are dropped from the output.
func (c *Clusterer) Cluster(
	nodes []*entities.Node,
	edges []*entities.Edge,
	threshold valueobjects.Threshold,
) []Cluster {
	if len(nodes) == 0 {
		return nil
	}

	index := make(map[valueobjects.NodeID]*entities.Node, len(nodes))
	groupOrder := make([]string, 0)
	groupMembers := make(map[string][]*entities.Node)

	for _, node := range nodes {
		if _, seen := index[node.ID()]; seen {
			continue
		}
		index[node.ID()] = node
		group := node.Group()
		if _, seen := groupMembers[group]; !seen {
			groupOrder = append(groupOrder, group)
		}
		groupMembers[group] = append(groupMembers[group], node)
	}

	// Adjacency restricted to qualifying edges. Built in edge list order
	// so traversal below is deterministic.
	adjacency := make(map[valueobjects.NodeID][]valueobjects.NodeID)
	min := threshold.Float()
	for _, edge := range edges {
		if edge.Weight() < min {
			continue
		}
		src, okSrc := index[edge.Source()]
		dst, okDst := index[edge.Target()]
		if !okSrc || !okDst || src.Group() != dst.Group() {
			continue
		}
		adjacency[src.ID()] = append(adjacency[src.ID()], dst.ID())
		adjacency[dst.ID()] = append(adjacency[dst.ID()], src.ID())
	}

	// Connected components per group, visiting members in document order.
	clusters := make([]Cluster, 0)
	assignment := make(map[valueobjects.NodeID]int, len(nodes))

	for _, group := range groupOrder {
		members := groupMembers[group]
		first := len(clusters)

		visited := make(map[valueobjects.NodeID]bool, len(members))
		for _, member := range members {
			if visited[member.ID()] {
				continue
			}
			component := c.traverse(member.ID(), adjacency, visited)
			idx := len(clusters)
			for _, id := range component {
				assignment[id] = idx
			}
			clusters = append(clusters, Cluster{Members: component})
		}

		// One component spanning the whole group keeps the bare group
		// name; otherwise the discovery counter disambiguates, starting
		// at 1 per group.
		if len(clusters)-first == 1 {
			clusters[first].ID = group
		} else {
			for i := first; i < len(clusters); i++ {
				clusters[i].ID = fmt.Sprintf("%s • %d", group, i-first+1)
			}
		}
	}

	// Aggregate weight over the full edge set, independent of each
	// edge's own weight.
	for _, edge := range edges {
		srcCluster, okSrc := assignment[edge.Source()]
		dstCluster, okDst := assignment[edge.Target()]
		if !okSrc || !okDst {
			continue
		}
		if srcCluster == dstCluster {
			clusters[srcCluster].Weight += edge.Weight()
		} else {
			clusters[srcCluster].Weight += edge.Weight() / 2
			clusters[dstCluster].Weight += edge.Weight() / 2
		}
	}

	visible := make([]Cluster, 0, len(clusters))
	for _, cluster := range clusters {
		if cluster.Weight > 0 {
			visible = append(visible, cluster)
		}
	}

	return visible
}

// traverse runs a breadth-first walk from start over the above-threshold
// adjacency, marking everything it reaches. Neighbor order follows edge
// list order, keeping discovery order reproducible.
func (c *Clusterer) traverse(
	start valueobjects.NodeID,
	adjacency map[valueobjects.NodeID][]valueobjects.NodeID,
	visited map[valueobjects.NodeID]bool,
) []valueobjects.NodeID {
	component := []valueobjects.NodeID{start}
	visited[start] = true
	queue := []valueobjects.NodeID{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range adjacency[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			component = append(component, next)
			queue = append(queue, next)
		}
	}

	return component
}
