package drm2hosha

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// Chain A -> B <- C where B is a dummy node
func walkChainNetwork() *Network {
	b := testNode("2", 10, 0)
	b.NodeType = NODE_DUMMY
	nodes := []Node{testNode("1", 0, 0), b, testNode("3", 20, 0)}
	links := []Link{
		testWalkLink("1", "1", "2", orb.LineString{{0, 0}, {10, 0}}),
		testWalkLink("2", "3", "2", orb.LineString{{20, 0}, {10, 0}}),
	}
	for i := range links {
		links[i].NetworkType = NETWORK_WALK
	}
	return &Network{Nodes: nodes, Links: links}
}

func TestContractNetworkPartial(t *testing.T) {
	net := walkChainNetwork()
	result, collapsed := contractNetwork(net, CONTRACT_PARTIAL)
	if collapsed != 1 {
		t.Errorf("Number of collapsed nodes should be %d, but got %d", 1, collapsed)
	}
	if len(result.Nodes) != 2 || len(result.Links) != 1 {
		t.Errorf("Contracted network should have %d nodes and %d links, but got %d and %d", 2, 1, len(result.Nodes), len(result.Links))
		return
	}
	link := result.Links[0]
	if link.ID != "1" || link.FromNodeID != "1" || link.ToNodeID != "3" {
		t.Errorf("Merged link should be '1' going from '1' to '3', but got '%s' going from '%s' to '%s'", link.ID, link.FromNodeID, link.ToNodeID)
	}
	correctGeom := "LINESTRING(0 0,10 0,20 0)"
	if wkt.MarshalString(link.Geom) != correctGeom {
		t.Errorf("Merged geometry should be '%s', but got '%s'", correctGeom, wkt.MarshalString(link.Geom))
	}
	if link.LengthMeters != 20 {
		t.Errorf("Merged length should be %f, but got %f", 20.0, link.LengthMeters)
	}
	if len(net.Links) != 2 {
		t.Errorf("Source network must not be modified")
	}
}

func TestContractNetworkPartialAttributes(t *testing.T) {
	net := walkChainNetwork()
	net.Links[1].Lanes = 4
	result, collapsed := contractNetwork(net, CONTRACT_PARTIAL)
	if collapsed != 0 || len(result.Links) != 2 {
		t.Errorf("Links with different attributes must not be merged by partial contraction, but got %d links", len(result.Links))
	}
	result, collapsed = contractNetwork(net, CONTRACT_FULL)
	if collapsed != 1 || len(result.Links) != 1 {
		t.Errorf("Links through dummy node must be merged by full contraction, but got %d links", len(result.Links))
	}
}

func TestContractNetworkOneWay(t *testing.T) {
	net := walkChainNetwork()
	// A -> B and B -> C expressed as reverse flag of C -> B
	net.Links[0].DirFlag = DIR_FLAG_FORWARD
	net.Links[1].DirFlag = DIR_FLAG_REVERSE
	result, _ := contractNetwork(net, CONTRACT_PARTIAL)
	if len(result.Links) != 1 {
		t.Errorf("Consistent one way links should be merged, but got %d links", len(result.Links))
		return
	}
	if result.Links[0].DirFlag != DIR_FLAG_FORWARD {
		t.Errorf("Merged link direction should be %d, but got %d", DIR_FLAG_FORWARD, result.Links[0].DirFlag)
	}

	net.Links[1].DirFlag = DIR_FLAG_FORWARD
	result, _ = contractNetwork(net, CONTRACT_PARTIAL)
	if len(result.Links) != 2 {
		t.Errorf("Opposite one way links must not be merged, but got %d links", len(result.Links))
	}
}

func TestContractNetworkPreservedNodes(t *testing.T) {
	net := walkChainNetwork()
	net.Nodes[1].NodeType = NODE_NECESSARY_TRAFFIC_CONTROL
	result, collapsed := contractNetwork(net, CONTRACT_FULL)
	if collapsed != 0 || len(result.Links) != 2 {
		t.Errorf("Node with traffic control must be kept by full contraction, but got %d links", len(result.Links))
	}
	// Auxiliary node is never collapsed
	net = walkChainNetwork()
	net.Nodes[1].RefNodeID = "10"
	_, collapsed = contractNetwork(net, CONTRACT_PARTIAL)
	if collapsed != 0 {
		t.Errorf("Auxiliary node must not be collapsed")
	}
}

func TestContractNetworkPartialKeepsIntersection(t *testing.T) {
	net := walkChainNetwork()
	net.Nodes[1].NodeType = NODE_INTERSECTION
	result, collapsed := contractNetwork(net, CONTRACT_PARTIAL)
	if collapsed != 0 || len(result.Links) != 2 {
		t.Errorf("Intersection node must be kept by partial contraction, but got %d collapsed nodes and %d links", collapsed, len(result.Links))
	}
	if _, ok := findNode(result.Nodes, "2"); !ok {
		t.Errorf("Node '%s' should be present after partial contraction", "2")
	}
}

func TestCollapsibleWithoutSourceRef(t *testing.T) {
	node := Node{ID: "2", NodeType: NODE_DUMMY}
	if !collapsible(node, CONTRACT_FULL) {
		t.Errorf("Node without source reference should be collapsible by full contraction")
	}
	if !collapsible(node, CONTRACT_PARTIAL) {
		t.Errorf("Node without source reference should be collapsible by partial contraction")
	}
	node.RefNodeID = "10"
	if collapsible(node, CONTRACT_FULL) {
		t.Errorf("Auxiliary node must not be collapsible")
	}
	node.RefNodeID = ""
	if collapsible(node, CONTRACT_NONE) {
		t.Errorf("Nothing is collapsible when contraction is disabled")
	}
}
