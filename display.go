package drm2hosha

import (
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// displayNetwork returns copy of the network where every node is moved away from position of its reference node by 'scale' times.
// Nodes without known reference position keep coordinates. Identifiers, topology and link records are not changed.
func displayNetwork(net *Network, reference map[string]orb.Point, scale float64, cfg *Config) *Network {
	cfg.logger.Info("Preparing display coordinates...")
	st := time.Now()

	result := Network{
		Nodes: make([]Node, 0, len(net.Nodes)),
		Links: make([]Link, len(net.Links)),
	}
	copy(result.Links, net.Links)
	moved := 0
	for _, node := range net.Nodes {
		ref, ok := reference[node.RefNodeID]
		if ok && !ref.Equal(node.Geom) {
			node.Geom = orb.Point{
				ref.X() + (node.X()-ref.X())*scale,
				ref.Y() + (node.Y()-ref.Y())*scale,
			}
			moved++
		}
		result.Nodes = append(result.Nodes, node)
	}

	cfg.logger.Info("Done", zap.Duration("elapsed", time.Since(st)), zap.Int("moved_nodes", moved))
	return &result
}

// nodePositions returns position of every node keyed by identifier
func nodePositions(nodes []Node) map[string]orb.Point {
	positions := make(map[string]orb.Point, len(nodes))
	for _, node := range nodes {
		if _, ok := positions[node.ID]; !ok {
			positions[node.ID] = node.Geom
		}
	}
	return positions
}
