package drm2hosha

import (
	"time"

	"go.uber.org/zap"
)

const (
	stageIntegration = "integration"
)

// integrateNetworks unions vehicle and pedestrian networks. Nodes which describe the same place are reconciled to the vehicle node.
func integrateNetworks(walk, auto *Network, cfg *Config) (*Network, error) {
	cfg.logger.Info("Integrating networks...")
	st := time.Now()

	autoNodes := make(map[string]int, len(auto.Nodes))
	spatial := newPointIndex()
	for i, node := range auto.Nodes {
		autoNodes[node.ID] = i
		spatial.insert(node.Geom)
	}

	result := Network{
		Nodes: make([]Node, 0, len(auto.Nodes)+len(walk.Nodes)),
		Links: make([]Link, 0, len(auto.Links)+len(walk.Links)),
	}
	result.Nodes = append(result.Nodes, auto.Nodes...)

	remap := make(map[string]string)
	reconciled := 0
	for _, node := range walk.Nodes {
		if autoIdx, ok := autoNodes[node.ID]; ok {
			if !pointsClose(auto.Nodes[autoIdx].Geom, node.Geom, cfg.snapTolerance) {
				return nil, &IDCollisionError{NodeID: node.ID}
			}
			reconciled++
			continue
		}
		if hits := spatial.within(node.Geom, cfg.snapTolerance); len(hits) > 0 {
			remap[node.ID] = auto.Nodes[hits[0]].ID
			reconciled++
			continue
		}
		result.Nodes = append(result.Nodes, node)
	}

	result.Links = append(result.Links, auto.Links...)
	for _, link := range walk.Links {
		fromNodeID, toNodeID := link.FromNodeID, link.ToNodeID
		if id, ok := remap[fromNodeID]; ok {
			fromNodeID = id
		}
		if id, ok := remap[toNodeID]; ok {
			toNodeID = id
		}
		result.Links = append(result.Links, link.withEndpoints(fromNodeID, toNodeID))
	}

	if err := checkReferences(stageIntegration, result.Nodes, result.Links); err != nil {
		return nil, err
	}

	cfg.logger.Info("Done", zap.Duration("elapsed", time.Since(st)), zap.Int("reconciled_nodes", reconciled), zap.Int("links", len(result.Links)), zap.Int("nodes", len(result.Nodes)))
	return &result, nil
}
