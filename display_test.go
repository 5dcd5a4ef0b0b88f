package drm2hosha

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestDisplayNetwork(t *testing.T) {
	junction := testNode("1", 0, 0)
	aux := auxiliaryNode("2", orb.Point{0, 2}, "1")
	stranger := testNode("3", 5, 5)
	stranger.RefNodeID = "100"
	net := &Network{
		Nodes: []Node{junction, aux, stranger},
		Links: []Link{testLink("1", "2", "3", orb.LineString{{0, 2}, {5, 5}})},
	}
	result := displayNetwork(net, nodePositions([]Node{junction}), 10, NewConfig())
	if len(result.Nodes) != len(net.Nodes) || len(result.Links) != len(net.Links) {
		t.Errorf("Display network must keep number of records")
		return
	}
	correctPositions := []orb.Point{{0, 0}, {0, 20}, {5, 5}}
	for i, node := range result.Nodes {
		if node.ID != net.Nodes[i].ID {
			t.Errorf("Node #%d should keep identifier '%s', but got '%s'", i, net.Nodes[i].ID, node.ID)
		}
		if !node.Geom.Equal(correctPositions[i]) {
			t.Errorf("Node '%s' should be displayed at %v, but got %v", node.ID, correctPositions[i], node.Geom)
		}
	}
	if result.Links[0].FromNodeID != "2" || result.Links[0].ToNodeID != "3" {
		t.Errorf("Topology must be preserved")
	}
	if !net.Nodes[1].Geom.Equal(orb.Point{0, 2}) {
		t.Errorf("Source network must not be modified")
	}
}
