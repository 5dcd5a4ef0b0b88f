package drm2hosha

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// buildVehicleNetwork replaces every junction of vehicle network by auxiliary nodes connected with directed turn links.
// Turn links are generated only for movements allowed by direction restrictions of both links.
func buildVehicleNetwork(net *Network, cfg *Config, alloc *idAllocator) *Network {
	cfg.logger.Info("Preparing vehicle network...")
	st := time.Now()

	expanded := expandJunctions(centerlines(net), cfg.cutLength, alloc)
	roadLinks := expanded.net.Links
	idx := newNetworkIndex(expanded.net.Nodes, roadLinks)
	turns := make([]Link, 0)
	for _, junction := range expanded.junctions {
		ends := expanded.ends[junction.ID]
		for _, in := range ends {
			incomingLink := roadLinks[in.linkIdx]
			if !in.arrives(incomingLink) {
				continue
			}
			inbound := in.towardJunction(incomingLink, junction.Geom)
			candidates := make([]junctionEnd, 0, len(ends))
			for _, out := range ends {
				if out.linkIdx == in.linkIdx || !out.departs(roadLinks[out.linkIdx]) {
					continue
				}
				candidates = append(candidates, out)
			}
			// Sort outcoming links by angle in descending order (left to right)
			angles := make(map[string]float64, len(candidates))
			for _, out := range candidates {
				angles[out.auxID] = angleBetweenLines(inbound, out.awayFromJunction(roadLinks[out.linkIdx], junction.Geom))
			}
			sort.SliceStable(candidates, func(i, j int) bool {
				return angles[candidates[i].auxID] > angles[candidates[j].auxID]
			})
			inAux := expanded.net.Nodes[idx.nodeIdx[in.auxID]]
			for _, out := range candidates {
				outAux := expanded.net.Nodes[idx.nodeIdx[out.auxID]]
				turn := turnLink(
					alloc.linkID(),
					junction,
					inAux,
					outAux,
					inbound,
					out.awayFromJunction(roadLinks[out.linkIdx], junction.Geom),
					NETWORK_AUTO,
				)
				turn.Directed = true
				turn.DirFlag = DIR_FLAG_FORWARD
				turns = append(turns, turn)
			}
		}
	}

	result := &Network{
		Nodes: expanded.net.Nodes,
		Links: append(roadLinks, turns...),
	}

	cfg.logger.Info("Done", zap.Duration("elapsed", time.Since(st)), zap.Int("junctions", len(expanded.junctions)), zap.Int("turn_links", len(turns)), zap.Int("links", len(result.Links)), zap.Int("nodes", len(result.Nodes)))
	return result
}
