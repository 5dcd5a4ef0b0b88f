package drm2hosha

import (
	"time"

	"go.uber.org/zap"
)

// buildPedestrianNetwork replaces every junction of pedestrian network by auxiliary nodes connected with undirected turn links
func buildPedestrianNetwork(net *Network, cfg *Config, alloc *idAllocator) *Network {
	cfg.logger.Info("Preparing pedestrian network...")
	st := time.Now()

	expanded := expandJunctions(centerlines(net), cfg.cutLength, alloc)
	roadLinks := expanded.net.Links
	idx := newNetworkIndex(expanded.net.Nodes, roadLinks)
	turns := make([]Link, 0)
	for _, junction := range expanded.junctions {
		ends := expanded.ends[junction.ID]
		for i := 0; i < len(ends); i++ {
			for j := i + 1; j < len(ends); j++ {
				if ends[i].linkIdx == ends[j].linkIdx {
					continue
				}
				first, second := roadLinks[ends[i].linkIdx], roadLinks[ends[j].linkIdx]
				firstAux := expanded.net.Nodes[idx.nodeIdx[ends[i].auxID]]
				secondAux := expanded.net.Nodes[idx.nodeIdx[ends[j].auxID]]
				turn := turnLink(
					alloc.linkID(),
					junction,
					firstAux,
					secondAux,
					ends[i].towardJunction(first, junction.Geom),
					ends[j].awayFromJunction(second, junction.Geom),
					NETWORK_WALK,
				)
				turn.PedFacility = first.PedFacility
				turns = append(turns, turn)
			}
		}
	}

	result := &Network{
		Nodes: expanded.net.Nodes,
		Links: append(roadLinks, turns...),
	}
	collapsed := 0
	if cfg.contract != CONTRACT_NONE {
		result, collapsed = contractNetwork(result, cfg.contract)
	}

	cfg.logger.Info("Done", zap.Duration("elapsed", time.Since(st)), zap.Int("junctions", len(expanded.junctions)), zap.Int("turn_links", len(turns)), zap.Int("collapsed_nodes", collapsed), zap.Int("links", len(result.Links)), zap.Int("nodes", len(result.Nodes)))
	return result
}
