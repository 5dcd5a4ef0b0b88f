package drm2hosha

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

func TestIntegrateNetworks(t *testing.T) {
	auto := &Network{
		Nodes: []Node{testNode("1", 0, 0), testNode("2", 10, 0)},
		Links: []Link{testLink("a", "1", "2", orb.LineString{{0, 0}, {10, 0}})},
	}
	walk := &Network{
		Nodes: []Node{testNode("3", 0, 0), testNode("4", 0, 10), testNode("2", 10, 0)},
		Links: []Link{
			testWalkLink("w1", "3", "4", orb.LineString{{0, 0}, {0, 10}}),
			testWalkLink("w2", "4", "2", orb.LineString{{0, 10}, {10, 0}}),
		},
	}
	result, err := integrateNetworks(walk, auto, NewConfig())
	if err != nil {
		t.Error(err)
		return
	}
	if len(result.Nodes) != 3 {
		t.Errorf("Number of nodes should be %d, but got %d", 3, len(result.Nodes))
	}
	if len(result.Links) != 3 {
		t.Errorf("Number of links should be %d, but got %d", 3, len(result.Links))
		return
	}
	if result.Links[0].ID != "a" {
		t.Errorf("Vehicle links should go first, but got '%s'", result.Links[0].ID)
	}
	if result.Links[1].FromNodeID != "1" {
		t.Errorf("Pedestrian node '3' should be reconciled to '1', but got '%s'", result.Links[1].FromNodeID)
	}
	if _, ok := findNode(result.Nodes, "3"); ok {
		t.Errorf("Reconciled node '3' must be removed")
	}
}

func TestIntegrateNetworksCollision(t *testing.T) {
	auto := &Network{
		Nodes: []Node{testNode("1", 0, 0), testNode("2", 10, 0)},
		Links: []Link{testLink("a", "1", "2", orb.LineString{{0, 0}, {10, 0}})},
	}
	walk := &Network{
		Nodes: []Node{testNode("2", 5, 5), testNode("4", 0, 10)},
		Links: []Link{testWalkLink("w", "2", "4", orb.LineString{{5, 5}, {0, 10}})},
	}
	_, err := integrateNetworks(walk, auto, NewConfig())
	var collisionErr *IDCollisionError
	if !errors.As(err, &collisionErr) {
		t.Errorf("Same identifier for different places must produce IDCollisionError, but got %v", err)
		return
	}
	if collisionErr.NodeID != "2" {
		t.Errorf("Colliding node should be '%s', but got '%s'", "2", collisionErr.NodeID)
	}
}
