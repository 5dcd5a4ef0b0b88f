package drm2hosha

// Network is a pair of GMNS node and link tables. Order of records is preserved by every stage.
type Network struct {
	Nodes []Node
	Links []Link
}

// Clone returns deep copy of the network
func (net *Network) Clone() *Network {
	clone := Network{
		Nodes: make([]Node, len(net.Nodes)),
		Links: make([]Link, len(net.Links)),
	}
	copy(clone.Nodes, net.Nodes)
	for i, link := range net.Links {
		clone.Links[i] = link
		clone.Links[i].Geom = link.Geom.Clone()
	}
	return &clone
}

// networkIndex is adjacency of the network keyed by node identifier
type networkIndex struct {
	nodeIdx        map[string]int
	outcomingLinks map[string][]int
	incomingLinks  map[string][]int
}

func newNetworkIndex(nodes []Node, links []Link) *networkIndex {
	idx := networkIndex{
		nodeIdx:        make(map[string]int, len(nodes)),
		outcomingLinks: make(map[string][]int),
		incomingLinks:  make(map[string][]int),
	}
	for i, node := range nodes {
		if _, ok := idx.nodeIdx[node.ID]; !ok {
			idx.nodeIdx[node.ID] = i
		}
	}
	for i, link := range links {
		idx.outcomingLinks[link.FromNodeID] = append(idx.outcomingLinks[link.FromNodeID], i)
		idx.incomingLinks[link.ToNodeID] = append(idx.incomingLinks[link.ToNodeID], i)
	}
	return &idx
}

func (idx *networkIndex) hasNode(nodeID string) bool {
	_, ok := idx.nodeIdx[nodeID]
	return ok
}

// firstFrom returns index of the first link (in table order) starting at given node
func (idx *networkIndex) firstFrom(nodeID string) (int, bool) {
	links := idx.outcomingLinks[nodeID]
	if len(links) == 0 {
		return -1, false
	}
	return links[0], true
}

// firstTo returns index of the first link (in table order) ending at given node
func (idx *networkIndex) firstTo(nodeID string) (int, bool) {
	links := idx.incomingLinks[nodeID]
	if len(links) == 0 {
		return -1, false
	}
	return links[0], true
}

// degree returns number of link ends touching given node
func (idx *networkIndex) degree(nodeID string) int {
	return len(idx.outcomingLinks[nodeID]) + len(idx.incomingLinks[nodeID])
}

// nodesByLinks returns nodes (in table order) referenced by given links
func nodesByLinks(nodes []Node, links []Link) []Node {
	used := make(map[string]struct{}, len(links)*2)
	for _, link := range links {
		used[link.FromNodeID] = struct{}{}
		used[link.ToNodeID] = struct{}{}
	}
	result := make([]Node, 0, len(used))
	for _, node := range nodes {
		if _, ok := used[node.ID]; ok {
			result = append(result, node)
		}
	}
	return result
}

// checkReferences returns error for the first link referencing node which is not in the node table
func checkReferences(stage string, nodes []Node, links []Link) error {
	known := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		known[node.ID] = struct{}{}
	}
	for _, link := range links {
		if _, ok := known[link.FromNodeID]; !ok {
			return &DanglingReferenceError{Stage: stage, LinkID: link.ID, NodeID: link.FromNodeID}
		}
		if _, ok := known[link.ToNodeID]; !ok {
			return &DanglingReferenceError{Stage: stage, LinkID: link.ID, NodeID: link.ToNodeID}
		}
	}
	return nil
}
