package drm2hosha

var (
	// Node types which are kept by contraction in any mode
	preservedNodeTypes = map[NodeType]struct{}{
		NODE_INTERSECTION:              {},
		NODE_NECESSARY_TRAFFIC_CONTROL: {},
		NODE_BLOCK_CHANGE_INTERSECTION: {},
	}
)

// contractNetwork collapses chains of road links passing through degree-2 source nodes.
// Returns contracted network and number of collapsed nodes.
func contractNetwork(net *Network, option ContractOption) (*Network, int) {
	links := make([]Link, len(net.Links))
	copy(links, net.Links)
	alive := make([]bool, len(links))
	incident := make(map[string][]int, len(net.Nodes))
	for i, link := range links {
		alive[i] = true
		incident[link.FromNodeID] = append(incident[link.FromNodeID], i)
		incident[link.ToNodeID] = append(incident[link.ToNodeID], i)
	}

	removed := make(map[string]struct{})
	for _, node := range net.Nodes {
		if !collapsible(node, option) {
			continue
		}
		inc := incident[node.ID]
		if len(inc) != 2 || inc[0] == inc[1] {
			continue
		}
		a, b := inc[0], inc[1]
		if b < a {
			a, b = b, a
		}
		first, second := links[a], links[b]
		if first.LinkType != LINK_ROAD || second.LinkType != LINK_ROAD {
			continue
		}
		firstOther, secondOther := otherEnd(first, node.ID), otherEnd(second, node.ID)
		if firstOther == secondOther {
			continue
		}
		merged, ok := mergeThrough(first, second, node.ID, option)
		if !ok {
			continue
		}
		links[a] = merged
		alive[b] = false
		for i, linkIdx := range incident[secondOther] {
			if linkIdx == b {
				incident[secondOther][i] = a
			}
		}
		delete(incident, node.ID)
		removed[node.ID] = struct{}{}
	}

	result := Network{
		Nodes: make([]Node, 0, len(net.Nodes)-len(removed)),
		Links: make([]Link, 0, len(links)),
	}
	for _, node := range net.Nodes {
		if _, ok := removed[node.ID]; ok {
			continue
		}
		result.Nodes = append(result.Nodes, node)
	}
	for i, link := range links {
		if alive[i] {
			result.Links = append(result.Links, link)
		}
	}
	return &result, len(removed)
}

// collapsible reports whether node could be removed from the middle of a link chain.
// Partial contraction additionally requires equal attributes of both links (see mergeThrough).
func collapsible(node Node, option ContractOption) bool {
	if option != CONTRACT_PARTIAL && option != CONTRACT_FULL {
		return false
	}
	// Auxiliary nodes reference junction they were derived from
	if node.isAuxiliary() {
		return false
	}
	_, preserved := preservedNodeTypes[node.NodeType]
	return !preserved
}

func otherEnd(link Link, nodeID string) string {
	if link.FromNodeID == nodeID {
		return link.ToNodeID
	}
	return link.FromNodeID
}

// mergeThrough joins two links sharing given node. Orientation, identifier and attributes of the first link are kept.
// Partial contraction refuses to merge links with different attributes.
func mergeThrough(first, second Link, nodeID string, option ContractOption) (Link, bool) {
	var merged Link
	var sameDirection bool
	if first.ToNodeID == nodeID {
		sameDirection = second.FromNodeID == nodeID
		tail := second.Geom
		if !sameDirection {
			tail = reverseLine(tail)
		}
		merged = first.withEndpoints(first.FromNodeID, otherEnd(second, nodeID))
		merged.Geom = concatLines(first.Geom, tail)
	} else {
		sameDirection = second.ToNodeID == nodeID
		head := second.Geom
		if !sameDirection {
			head = reverseLine(head)
		}
		merged = first.withEndpoints(otherEnd(second, nodeID), first.ToNodeID)
		merged.Geom = concatLines(head, first.Geom)
	}
	if option == CONTRACT_PARTIAL {
		secondSignature := second.signature()
		if !sameDirection {
			secondSignature.dirFlag = secondSignature.dirFlag.opposite()
		}
		if first.signature() != secondSignature {
			return Link{}, false
		}
	}
	merged.LengthMeters = first.LengthMeters + second.LengthMeters
	return merged, true
}
