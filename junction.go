package drm2hosha

import (
	"math"

	"github.com/paulmach/orb"
)

// junctionEnd is an end of a road link cut back from a junction
type junctionEnd struct {
	linkIdx int
	auxID   string
	// True when the link starts at the junction
	atSource bool
}

// arrives reports whether the junction could be reached through this link end
func (end junctionEnd) arrives(link Link) bool {
	if end.atSource {
		return link.DirFlag.allowsBackward()
	}
	return link.DirFlag.allowsForward()
}

// departs reports whether the junction could be left through this link end
func (end junctionEnd) departs(link Link) bool {
	if end.atSource {
		return link.DirFlag.allowsForward()
	}
	return link.DirFlag.allowsBackward()
}

// towardJunction returns segment of arrival to the junction through this link end
func (end junctionEnd) towardJunction(link Link, junction orb.Point) orb.LineString {
	return orb.LineString{end.headingPoint(link, junction), junction}
}

// awayFromJunction returns segment of departure from the junction through this link end
func (end junctionEnd) awayFromJunction(link Link, junction orb.Point) orb.LineString {
	return orb.LineString{junction, end.headingPoint(link, junction)}
}

// headingPoint returns the nearest to the junction vertex of the link which differs from the junction itself
func (end junctionEnd) headingPoint(link Link, junction orb.Point) orb.Point {
	geom := link.Geom
	if !end.atSource {
		geom = reverseLine(geom)
	}
	for _, pt := range geom {
		if !pt.Equal(junction) {
			return pt
		}
	}
	return geom[len(geom)-1]
}

// expandedNetwork is a modal network whose junctions have been replaced by auxiliary nodes
type expandedNetwork struct {
	net *Network
	// Junctions in node table order
	junctions []Node
	ends      map[string][]junctionEnd
}

// centerlines cleans every link geometry and snaps it to the positions of its endpoints
func centerlines(net *Network) *Network {
	idx := newNetworkIndex(net.Nodes, net.Links)
	result := Network{
		Nodes: make([]Node, len(net.Nodes)),
		Links: make([]Link, 0, len(net.Links)),
	}
	copy(result.Nodes, net.Nodes)
	for _, link := range net.Links {
		source := net.Nodes[idx.nodeIdx[link.FromNodeID]].Geom
		target := net.Nodes[idx.nodeIdx[link.ToNodeID]].Geom
		result.Links = append(result.Links, link.withGeometry(snapLine(link.Geom, source, target)))
	}
	return &result
}

// expandJunctions cuts back every link end touching a junction (a node with three or more link ends) and puts an auxiliary node at the cut point.
// Junction nodes stay in the node table without incident road links.
func expandJunctions(net *Network, cutLength float64, alloc *idAllocator) *expandedNetwork {
	idx := newNetworkIndex(net.Nodes, net.Links)
	isJunction := make(map[string]bool)
	junctions := make([]Node, 0)
	for _, node := range net.Nodes {
		if idx.degree(node.ID) >= 3 {
			isJunction[node.ID] = true
			junctions = append(junctions, node)
		}
	}

	result := expandedNetwork{
		net: &Network{
			Nodes: make([]Node, 0, len(net.Nodes)+2*len(net.Links)),
			Links: make([]Link, 0, len(net.Links)),
		},
		junctions: junctions,
		ends:      make(map[string][]junctionEnd, len(junctions)),
	}
	result.net.Nodes = append(result.net.Nodes, net.Nodes...)

	for i, link := range net.Links {
		cutSource, cutTarget := isJunction[link.FromNodeID], isJunction[link.ToNodeID]
		if !cutSource && !cutTarget {
			result.net.Links = append(result.net.Links, link)
			continue
		}
		total := lineLength(link.Geom)
		cut := math.Min(cutLength, total/3.0)
		start, end := 0.0, total
		if cutSource {
			start = cut
		}
		if cutTarget {
			end = total - cut
		}
		geom := substring(link.Geom, start, end)
		fromNodeID, toNodeID := link.FromNodeID, link.ToNodeID
		if cutSource {
			aux := auxiliaryNode(alloc.nodeID(), geom[0], link.FromNodeID)
			result.net.Nodes = append(result.net.Nodes, aux)
			result.ends[link.FromNodeID] = append(result.ends[link.FromNodeID], junctionEnd{linkIdx: i, auxID: aux.ID, atSource: true})
			fromNodeID = aux.ID
		}
		if cutTarget {
			aux := auxiliaryNode(alloc.nodeID(), geom[len(geom)-1], link.ToNodeID)
			result.net.Nodes = append(result.net.Nodes, aux)
			result.ends[link.ToNodeID] = append(result.ends[link.ToNodeID], junctionEnd{linkIdx: i, auxID: aux.ID, atSource: false})
			toNodeID = aux.ID
		}
		result.net.Links = append(result.net.Links, link.withGeometry(geom).withEndpoints(fromNodeID, toNodeID))
	}
	return &result
}

func auxiliaryNode(id string, pt orb.Point, junctionID string) Node {
	return Node{
		ID:        id,
		Geom:      pt,
		NodeType:  NODE_DUMMY,
		RefNodeID: junctionID,
	}
}

// turnLink builds a link crossing the junction between two auxiliary nodes
func turnLink(id string, junction Node, inAux, outAux Node, inbound, outbound orb.LineString, networkType NetworkType) Link {
	geom := orb.LineString{inAux.Geom, junction.Geom, outAux.Geom}
	movementComposite, movement := movementBetweenLines(inbound, outbound)
	return Link{
		ID:                    id,
		FromNodeID:            inAux.ID,
		ToNodeID:              outAux.ID,
		Geom:                  geom,
		DirFlag:               DIR_FLAG_BOTH,
		LengthMeters:          lineLength(geom),
		NetworkType:           networkType,
		LinkType:              LINK_TURN,
		MovementType:          movement,
		MovementCompositeType: movementComposite,
		ViaNodeID:             junction.ID,
	}
}
