package drm2hosha

import (
	"time"

	"go.uber.org/zap"
)

// bidirectionalize adds mirrored copy of every pedestrian link which is not represented in both directions.
// Every pedestrian link becomes directed. Vehicle links are never touched.
func bidirectionalize(net *Network, cfg *Config, alloc *idAllocator) *Network {
	cfg.logger.Info("Preparing bidirectional pedestrian links...")
	st := time.Now()

	existing := make(map[string]struct{}, len(net.Links))
	for _, link := range net.Links {
		if link.NetworkType == NETWORK_WALK {
			existing[directedKey(link.FromNodeID, link.ToNodeID, lineKey(link.Geom))] = struct{}{}
		}
	}

	result := Network{
		Nodes: make([]Node, len(net.Nodes)),
		Links: make([]Link, 0, len(net.Links)*2),
	}
	copy(result.Nodes, net.Nodes)
	mirrored := 0
	for _, link := range net.Links {
		if link.NetworkType != NETWORK_WALK {
			result.Links = append(result.Links, link)
			continue
		}
		link.Directed = true
		result.Links = append(result.Links, link)
		mirrorKey := directedKey(link.ToNodeID, link.FromNodeID, lineKey(reverseLine(link.Geom)))
		if _, ok := existing[mirrorKey]; ok {
			continue
		}
		result.Links = append(result.Links, link.mirror(alloc.linkID()))
		existing[mirrorKey] = struct{}{}
		mirrored++
	}

	cfg.logger.Info("Done", zap.Duration("elapsed", time.Since(st)), zap.Int("mirrored_links", mirrored), zap.Int("links", len(result.Links)))
	return &result
}

func directedKey(fromNodeID, toNodeID, geomKey string) string {
	return fromNodeID + "|" + toNodeID + "|" + geomKey
}
