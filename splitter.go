package drm2hosha

import (
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

const (
	stageSplitting = "link splitting"
)

// vertexRef points to an interior vertex of some link
type vertexRef struct {
	linkIdx   int
	vertexIdx int
}

// splitLinks subdivides road links at interior vertices where they meet other road links or pass through existing nodes.
// Turn links are never split.
func splitLinks(net *Network, cfg *Config, alloc *idAllocator) (*Network, error) {
	cfg.logger.Info("Splitting links...")
	st := time.Now()

	vertices := newPointIndex()
	refs := make([]vertexRef, 0)
	for i, link := range net.Links {
		if link.LinkType != LINK_ROAD {
			continue
		}
		for j := 1; j < len(link.Geom)-1; j++ {
			vertices.insert(link.Geom[j])
			refs = append(refs, vertexRef{linkIdx: i, vertexIdx: j})
		}
	}
	nodesSpatial := newPointIndex()
	for _, node := range net.Nodes {
		nodesSpatial.insert(node.Geom)
	}

	result := Network{
		Nodes: make([]Node, 0, len(net.Nodes)),
		Links: make([]Link, 0, len(net.Links)),
	}
	result.Nodes = append(result.Nodes, net.Nodes...)

	created := 0
	split := 0
	for i, link := range net.Links {
		if link.LinkType != LINK_ROAD || len(link.Geom) < 3 {
			result.Links = append(result.Links, link)
			continue
		}
		breaks := make([]int, 0)
		breakNodes := make([]string, 0)
		for j := 1; j < len(link.Geom)-1; j++ {
			pt := link.Geom[j]
			nodeID, isEndpoint := existingNodeAt(result.Nodes, nodesSpatial, pt, link, cfg.snapTolerance)
			if isEndpoint {
				continue
			}
			if nodeID == "" {
				if !sharedVertex(vertices, refs, pt, i, cfg.snapTolerance) {
					continue
				}
				node := Node{
					ID:       alloc.nodeID(),
					Geom:     pt,
					NodeType: NODE_DUMMY,
				}
				result.Nodes = append(result.Nodes, node)
				nodesSpatial.insert(pt)
				nodeID = node.ID
				created++
			}
			breaks = append(breaks, j)
			breakNodes = append(breakNodes, nodeID)
		}
		if len(breaks) == 0 {
			result.Links = append(result.Links, link)
			continue
		}
		result.Links = append(result.Links, splitAt(link, breaks, breakNodes, alloc)...)
		split++
	}

	if err := checkReferences(stageSplitting, result.Nodes, result.Links); err != nil {
		return nil, err
	}

	cfg.logger.Info("Done", zap.Duration("elapsed", time.Since(st)), zap.Int("split_links", split), zap.Int("new_nodes", created), zap.Int("links", len(result.Links)), zap.Int("nodes", len(result.Nodes)))
	return &result, nil
}

// existingNodeAt returns identifier of the first node (in table order) located at given point.
// Second value is true when that node is an endpoint of the link itself.
func existingNodeAt(nodes []Node, spatial *pointIndex, pt orb.Point, link Link, tolerance float64) (string, bool) {
	hits := spatial.within(pt, tolerance)
	for _, key := range hits {
		id := nodes[key].ID
		if id == link.FromNodeID || id == link.ToNodeID {
			return "", true
		}
	}
	if len(hits) == 0 {
		return "", false
	}
	return nodes[hits[0]].ID, false
}

// sharedVertex reports whether given point is an interior vertex of any other road link
func sharedVertex(vertices *pointIndex, refs []vertexRef, pt orb.Point, linkIdx int, tolerance float64) bool {
	for _, key := range vertices.within(pt, tolerance) {
		if refs[key].linkIdx != linkIdx {
			return true
		}
	}
	return false
}

// splitAt cuts the link into consecutive pieces at given vertices
func splitAt(link Link, breaks []int, breakNodes []string, alloc *idAllocator) []Link {
	parentID := link.ParentID
	if parentID == "" {
		parentID = link.ID
	}
	pieces := make([]Link, 0, len(breaks)+1)
	startIdx := 0
	fromNodeID := link.FromNodeID
	for k := 0; k <= len(breaks); k++ {
		endIdx := len(link.Geom) - 1
		toNodeID := link.ToNodeID
		if k < len(breaks) {
			endIdx = breaks[k]
			toNodeID = breakNodes[k]
		}
		geom := link.Geom[startIdx : endIdx+1].Clone()
		piece := link.withGeometry(geom).withEndpoints(fromNodeID, toNodeID)
		piece.ID = alloc.linkID()
		piece.ParentID = parentID
		pieces = append(pieces, piece)
		startIdx = endIdx
		fromNodeID = toNodeID
	}
	return pieces
}
