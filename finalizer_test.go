package drm2hosha

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestFinalizeNetwork(t *testing.T) {
	original := &Network{
		Nodes: []Node{testNode("1", 0, 0), testNode("2", 10, 0)},
		Links: []Link{testLink("1", "1", "2", orb.LineString{{0, 0}, {10, 0}})},
	}
	original.Nodes[0].NodeType = NODE_DEAD_END

	derived := testLink("7", "1", "2", orb.LineString{{0, 0}, {10, 0}})
	derived.ParentID = "1"
	derived.FacilityType = FACILITY_UNDEFINED
	derived.Lanes = 0
	derived.Jurisdiction = JURISDICTION_UNDEFINED
	duplicate := derived
	duplicate.Geom = orb.LineString{{10, 0}, {0, 0}}
	duplicate.FromNodeID, duplicate.ToNodeID = "2", "1"

	untyped := testNode("1", 0, 0)
	untyped.NodeType = NODE_UNDEFINED
	net := &Network{
		Nodes: []Node{untyped, testNode("2", 10, 0), testNode("9", 50, 50)},
		Links: []Link{derived, duplicate},
	}
	alloc := newIDAllocator(net.Nodes, net.Links)
	result, err := finalizeNetwork(net, original, nil, NewConfig(), alloc)
	if err != nil {
		t.Error(err)
		return
	}
	if len(result.Nodes) != 2 {
		t.Errorf("Orphan node should be removed, but got %d nodes", len(result.Nodes))
	}
	if result.Nodes[0].NodeType != NODE_DEAD_END {
		t.Errorf("Node type should be restored to '%s', but got '%s'", NODE_DEAD_END, result.Nodes[0].NodeType)
	}
	first := result.Links[0]
	if first.FacilityType != FACILITY_ARTERIAL || first.Lanes != 2 || first.Jurisdiction != JURISDICTION_NATIONAL {
		t.Errorf("Attributes should be restored from parent link, but got '%s', %d, '%s'", first.FacilityType, first.Lanes, first.Jurisdiction)
	}
	if result.Links[0].ID != "7" {
		t.Errorf("First link should keep identifier '%s', but got '%s'", "7", result.Links[0].ID)
	}
	if result.Links[1].ID == "7" || result.Links[1].ID == "" {
		t.Errorf("Duplicate identifier should be renamed, but got '%s'", result.Links[1].ID)
	}
}

func TestFinalizeNetworkImpassable(t *testing.T) {
	original := &Network{
		Nodes: []Node{testNode("1", 0, 0), testNode("2", 10, 0)},
		Links: []Link{testLink("1", "1", "2", orb.LineString{{0, 0}, {10, 0}})},
	}
	closed := testLink("2", "2", "1", orb.LineString{{10, 0}, {10, 10}, {0, 0}})
	closed.DirFlag = DIR_FLAG_UNDEFINED
	outside := testLink("3", "2", "5", orb.LineString{{10, 0}, {20, 0}})
	outside.DirFlag = DIR_FLAG_UNDEFINED
	impassable := []Link{closed, outside}

	net := original.Clone()
	alloc := newIDAllocator(net.Nodes, net.Links)
	result, err := finalizeNetwork(net, original, impassable, NewConfig(), alloc)
	if err != nil {
		t.Error(err)
		return
	}
	if len(result.Links) != 1 {
		t.Errorf("Impassable links should be dropped by default, but got %d links", len(result.Links))
	}

	result, err = finalizeNetwork(net, original, impassable, NewConfig(WithRetainImpassable(true)), alloc)
	if err != nil {
		t.Error(err)
		return
	}
	if len(result.Links) != 2 {
		t.Errorf("Connected impassable link should be retained, but got %d links", len(result.Links))
		return
	}
	if result.Links[1].DirFlag.IsDefined() {
		t.Errorf("Retained link must stay impassable")
	}
}
