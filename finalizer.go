package drm2hosha

import (
	"time"

	"go.uber.org/zap"
)

const (
	stageFinalization = "finalization"
)

// finalizeNetwork restores attributes lost on the way from the original tables, resolves link identifier collisions and removes orphan nodes
func finalizeNetwork(net *Network, original *Network, impassable []Link, cfg *Config, alloc *idAllocator) (*Network, error) {
	cfg.logger.Info("Finalizing network...")
	st := time.Now()

	originalLinks := make(map[string]Link, len(original.Links))
	for _, link := range original.Links {
		if _, ok := originalLinks[link.ID]; !ok {
			originalLinks[link.ID] = link
		}
	}
	originalNodes := make(map[string]Node, len(original.Nodes))
	for _, node := range original.Nodes {
		if _, ok := originalNodes[node.ID]; !ok {
			originalNodes[node.ID] = node
		}
	}

	links := make([]Link, 0, len(net.Links)+len(impassable))
	for _, link := range net.Links {
		if parent, ok := originalLinks[link.ParentID]; ok {
			link = restoreAttributes(link, parent)
		}
		links = append(links, link)
	}
	nodes := make([]Node, 0, len(net.Nodes))
	for _, node := range net.Nodes {
		if origin, ok := originalNodes[node.ID]; ok && node.NodeType == NODE_UNDEFINED {
			node.NodeType = origin.NodeType
		}
		nodes = append(nodes, node)
	}

	retained := 0
	if cfg.retainImpassable {
		known := make(map[string]struct{}, len(nodes))
		for _, node := range nodes {
			known[node.ID] = struct{}{}
		}
		for _, link := range impassable {
			_, sourceOK := known[link.FromNodeID]
			_, targetOK := known[link.ToNodeID]
			if !sourceOK || !targetOK {
				cfg.logger.Warn("Impassable link is disconnected from the network, skipping it", zap.String("link_id", link.ID))
				continue
			}
			links = append(links, link)
			retained++
		}
	}

	renamed := 0
	seen := make(map[string]struct{}, len(links))
	for i := range links {
		if _, ok := seen[links[i].ID]; ok {
			newID := alloc.linkID()
			cfg.logger.Warn("Duplicate link identifier, renaming", zap.String("link_id", links[i].ID), zap.String("new_link_id", newID))
			links[i].ID = newID
			renamed++
		}
		seen[links[i].ID] = struct{}{}
	}

	referenced := make(map[string]struct{}, len(nodes))
	for _, link := range links {
		referenced[link.FromNodeID] = struct{}{}
		referenced[link.ToNodeID] = struct{}{}
	}
	result := Network{
		Nodes: make([]Node, 0, len(nodes)),
		Links: links,
	}
	for _, node := range nodes {
		if _, ok := referenced[node.ID]; ok {
			result.Nodes = append(result.Nodes, node)
		}
	}

	if err := checkReferences(stageFinalization, result.Nodes, result.Links); err != nil {
		return nil, err
	}

	cfg.logger.Info("Done", zap.Duration("elapsed", time.Since(st)), zap.Int("orphans", len(nodes)-len(result.Nodes)), zap.Int("renamed_links", renamed), zap.Int("retained_impassable", retained), zap.Int("links", len(result.Links)), zap.Int("nodes", len(result.Nodes)))
	return &result, nil
}

// restoreAttributes fills undefined attributes of the link from the link it has been derived from
func restoreAttributes(link, parent Link) Link {
	restored := link
	if restored.FacilityType == FACILITY_UNDEFINED {
		restored.FacilityType = parent.FacilityType
	}
	if restored.Jurisdiction == JURISDICTION_UNDEFINED {
		restored.Jurisdiction = parent.Jurisdiction
	}
	if restored.RowWidth == ROW_WIDTH_UNDEFINED {
		restored.RowWidth = parent.RowWidth
	}
	if restored.Lanes == 0 {
		restored.Lanes = parent.Lanes
	}
	if restored.PedFacility == "" && restored.NetworkType == NETWORK_WALK {
		restored.PedFacility = parent.PedFacility
	}
	return restored
}
