package drm2hosha

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

const (
	stageVirtualNodes = "virtual nodes resolution"
)

// resolveVirtualNodes stitches links split by map tile boundary and removes placeholder (virtual) nodes
func resolveVirtualNodes(links []Link, nodes []Node, cfg *Config) ([]Link, []Node, error) {
	cfg.logger.Info("Resolving virtual nodes...")
	st := time.Now()

	// Virtual node -> node it continues into
	virtualNodes := make(map[string]string)
	for _, node := range nodes {
		if node.isVirtual() {
			virtualNodes[node.ID] = node.continuationID()
		}
	}

	idx := newNetworkIndex(nodes, links)
	mergedLinks := make([]Link, 0, len(links))
	stitched := make([]bool, 0, len(links))
	dropped := 0
	for _, link := range links {
		_, fromVirtual := virtualNodes[link.FromNodeID]
		_, toVirtual := virtualNodes[link.ToNodeID]
		if !fromVirtual && !toVirtual {
			mergedLinks = append(mergedLinks, link)
			stitched = append(stitched, false)
			continue
		}
		// Link entering a tile boundary is covered by the link leaving its counterpart
		if !fromVirtual && !cfg.symmetricMerge {
			dropped++
			continue
		}
		resolved, unresolvedID := resolveSource(link, links, virtualNodes, idx)
		if unresolvedID == "" {
			resolved, unresolvedID = resolveTarget(resolved, links, virtualNodes, idx)
		}
		if unresolvedID != "" {
			cfg.logger.Warn("Link leads outside of the study area, skipping it", zap.String("link_id", link.ID), zap.String("virtual_node_id", unresolvedID), zap.String("target_node_id", virtualNodes[unresolvedID]))
			dropped++
			continue
		}
		mergedLinks = append(mergedLinks, resolved)
		stitched = append(stitched, true)
	}

	mergedLinks = dropDuplicateGeometries(mergedLinks, stitched)

	remainingNodes := make([]Node, 0, len(nodes)-len(virtualNodes))
	for _, node := range nodes {
		if _, ok := virtualNodes[node.ID]; ok {
			continue
		}
		node.NextMesh = ""
		node.NextNodeID = ""
		remainingNodes = append(remainingNodes, node)
	}

	if err := checkReferences(stageVirtualNodes, remainingNodes, mergedLinks); err != nil {
		return nil, nil, err
	}

	cfg.logger.Info("Done", zap.Duration("elapsed", time.Since(st)), zap.Int("virtual_nodes", len(virtualNodes)), zap.Int("dropped_links", dropped), zap.Int("links", len(mergedLinks)), zap.Int("nodes", len(remainingNodes)))
	return mergedLinks, remainingNodes, nil
}

// resolveSource follows continuations of the virtual source node until a regular node is reached.
// Returns identifier of the virtual node which could not be resolved, if any.
func resolveSource(link Link, links []Link, virtualNodes map[string]string, idx *networkIndex) (Link, string) {
	visited := make(map[string]struct{})
	for {
		target, ok := virtualNodes[link.FromNodeID]
		if !ok {
			return link, ""
		}
		if _, ok := visited[link.FromNodeID]; ok {
			return link, link.FromNodeID
		}
		visited[link.FromNodeID] = struct{}{}
		if continuationIdx, ok := idx.firstFrom(target); ok {
			continuation := links[continuationIdx]
			link = mergeAtSource(link, continuation, continuation.ToNodeID)
		} else if continuationIdx, ok := idx.firstTo(target); ok {
			continuation := links[continuationIdx]
			link = mergeAtSource(link, continuation, continuation.FromNodeID)
		} else if _, isVirtual := virtualNodes[target]; idx.hasNode(target) && !isVirtual {
			// No continuation link: keep geometry as is, take identity of the target node
			link = link.withEndpoints(target, link.ToNodeID)
		} else {
			return link, link.FromNodeID
		}
	}
}

// resolveTarget is the same as resolveSource but for the target node of the link
func resolveTarget(link Link, links []Link, virtualNodes map[string]string, idx *networkIndex) (Link, string) {
	visited := make(map[string]struct{})
	for {
		target, ok := virtualNodes[link.ToNodeID]
		if !ok {
			return link, ""
		}
		if _, ok := visited[link.ToNodeID]; ok {
			return link, link.ToNodeID
		}
		visited[link.ToNodeID] = struct{}{}
		if continuationIdx, ok := idx.firstFrom(target); ok {
			continuation := links[continuationIdx]
			link = mergeAtTarget(link, continuation, continuation.ToNodeID)
		} else if continuationIdx, ok := idx.firstTo(target); ok {
			continuation := links[continuationIdx]
			link = mergeAtTarget(link, continuation, continuation.FromNodeID)
		} else if _, isVirtual := virtualNodes[target]; idx.hasNode(target) && !isVirtual {
			link = link.withEndpoints(link.FromNodeID, target)
		} else {
			return link, link.ToNodeID
		}
	}
}

// mergeAtSource replaces source node of the link with 'newSourceID' and unions geometries of both legs
func mergeAtSource(link, continuation Link, newSourceID string) Link {
	merged := link.withEndpoints(newSourceID, link.ToNodeID)
	geom := joinLines(continuation.Geom, link.Geom)
	if !geom[len(geom)-1].Equal(link.Geom[len(link.Geom)-1]) {
		geom.Reverse()
	}
	merged.Geom = geom
	merged.LengthMeters = link.LengthMeters + continuation.LengthMeters
	return merged
}

// mergeAtTarget replaces target node of the link with 'newTargetID' and unions geometries of both legs
func mergeAtTarget(link, continuation Link, newTargetID string) Link {
	merged := link.withEndpoints(link.FromNodeID, newTargetID)
	geom := joinLines(link.Geom, continuation.Geom)
	if !geom[0].Equal(link.Geom[0]) {
		geom.Reverse()
	}
	merged.Geom = geom
	merged.LengthMeters = link.LengthMeters + continuation.LengthMeters
	return merged
}

// dropDuplicateGeometries keeps the first link of every distinct geometry.
// Geometries are compared exactly. Stitched links are also compared with each other regardless of direction,
// since both legs of the same tile crossing could be stitched in opposite orders.
func dropDuplicateGeometries(links []Link, stitched []bool) []Link {
	seen := make(map[string]struct{}, len(links))
	seenStitched := make(map[string]struct{})
	result := make([]Link, 0, len(links))
	for i, link := range links {
		key := lineKey(link.Geom)
		if _, ok := seen[key]; ok {
			continue
		}
		if i < len(stitched) && stitched[i] {
			stitchedKey := geometryKey(link.Geom)
			if _, ok := seenStitched[stitchedKey]; ok {
				continue
			}
			seenStitched[stitchedKey] = struct{}{}
		}
		seen[key] = struct{}{}
		result = append(result, link)
	}
	return result
}

// geometryKey returns the same key for a line and its reversed copy
func geometryKey(line orb.LineString) string {
	if len(line) == 0 {
		return ""
	}
	first, last := line[0], line[len(line)-1]
	if last.X() < first.X() || (last.X() == first.X() && last.Y() < first.Y()) {
		line = reverseLine(line)
	} else if last.Equal(first) && len(line) > 2 {
		// Closed line: choose direction by the second point
		second, penultimate := line[1], line[len(line)-2]
		if penultimate.X() < second.X() || (penultimate.X() == second.X() && penultimate.Y() < second.Y()) {
			line = reverseLine(line)
		}
	}
	return lineKey(line)
}

// lineKey returns exact representation of the line points in their order
func lineKey(line orb.LineString) string {
	var sb strings.Builder
	for _, pt := range line {
		sb.WriteString(fmt.Sprintf("%x:%x;", math.Float64bits(pt.X()), math.Float64bits(pt.Y())))
	}
	return sb.String()
}
