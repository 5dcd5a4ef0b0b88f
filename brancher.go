package drm2hosha

import (
	"time"

	"go.uber.org/zap"
)

// modalNetworks is a result of splitting the network by travel mode
type modalNetworks struct {
	walk       *Network
	auto       *Network
	impassable []Link
}

// branchNetworkTypes splits links into pedestrian and vehicle subnetworks. Each subnetwork carries only nodes referenced by its links.
func branchNetworkTypes(links []Link, nodes []Node, cfg *Config) *modalNetworks {
	cfg.logger.Info("Branching network by travel mode...")
	st := time.Now()

	walkLinks := make([]Link, 0)
	autoLinks := make([]Link, 0, len(links))
	impassable := make([]Link, 0)
	for _, link := range links {
		if !link.isRoutable() {
			impassable = append(impassable, link)
			continue
		}
		if link.PedFacility != "" {
			link.NetworkType = NETWORK_WALK
			walkLinks = append(walkLinks, link)
		} else {
			link.NetworkType = NETWORK_AUTO
			autoLinks = append(autoLinks, link)
		}
	}
	result := modalNetworks{
		walk: &Network{
			Nodes: nodesByLinks(nodes, walkLinks),
			Links: walkLinks,
		},
		auto: &Network{
			Nodes: nodesByLinks(nodes, autoLinks),
			Links: autoLinks,
		},
		impassable: impassable,
	}

	cfg.logger.Info("Done", zap.Duration("elapsed", time.Since(st)), zap.Int("walk_links", len(walkLinks)), zap.Int("auto_links", len(autoLinks)), zap.Int("impassable_links", len(impassable)))
	return &result
}
