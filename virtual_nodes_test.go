package drm2hosha

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// Two tiles: A -> V in the first one, C -> B in the second one. V and C are virtual nodes pointing at each other.
func tileBoundaryNetwork() ([]Link, []Node) {
	a := testNode("53390000001", 0, 0)
	v := testNode("53390000002", 10, 0)
	v.NextMesh, v.NextNodeID = "533901", "3"
	c := testNode("53390100003", 10, 0)
	c.NextMesh, c.NextNodeID = "533900", "2"
	b := testNode("53390100004", 20, 0)
	links := []Link{
		testLink("1", a.ID, v.ID, orb.LineString{{0, 0}, {10, 0}}),
		testLink("2", c.ID, b.ID, orb.LineString{{10, 0}, {20, 0}}),
	}
	return links, []Node{a, v, c, b}
}

func TestResolveVirtualNodes(t *testing.T) {
	links, nodes := tileBoundaryNetwork()
	mergedLinks, mergedNodes, err := resolveVirtualNodes(links, nodes, NewConfig())
	if err != nil {
		t.Error(err)
		return
	}
	if len(mergedNodes) != 2 {
		t.Errorf("Number of nodes should be %d, but got %d", 2, len(mergedNodes))
	}
	if len(mergedLinks) != 1 {
		t.Errorf("Number of links should be %d, but got %d", 1, len(mergedLinks))
		return
	}
	link := mergedLinks[0]
	if link.FromNodeID != "53390000001" || link.ToNodeID != "53390100004" {
		t.Errorf("Merged link should go from '%s' to '%s', but got '%s' -> '%s'", "53390000001", "53390100004", link.FromNodeID, link.ToNodeID)
	}
	correctGeom := "LINESTRING(0 0,10 0,20 0)"
	if wkt.MarshalString(link.Geom) != correctGeom {
		t.Errorf("Merged geometry should be '%s', but got '%s'", correctGeom, wkt.MarshalString(link.Geom))
	}
	if link.LengthMeters != 20 {
		t.Errorf("Merged length should be %f, but got %f", 20.0, link.LengthMeters)
	}
	for _, node := range mergedNodes {
		if node.NextMesh != "" || node.NextNodeID != "" {
			t.Errorf("Continuation reference of node '%s' must be cleared", node.ID)
		}
	}
	if len(links) != 2 || links[1].FromNodeID != "53390100003" {
		t.Errorf("Input links must not be modified")
	}
}

func TestResolveVirtualNodesSymmetric(t *testing.T) {
	links, nodes := tileBoundaryNetwork()
	mergedLinks, _, err := resolveVirtualNodes(links, nodes, NewConfig(WithSymmetricMerge(true)))
	if err != nil {
		t.Error(err)
		return
	}
	// Both legs produce the same stitched geometry, only one is kept
	if len(mergedLinks) != 1 {
		t.Errorf("Number of links should be %d, but got %d", 1, len(mergedLinks))
		return
	}
	if mergedLinks[0].ID != "1" {
		t.Errorf("First stitched link should be kept, but got '%s'", mergedLinks[0].ID)
	}
}

func TestResolveVirtualNodesWithoutContinuation(t *testing.T) {
	v := testNode("53390000002", 10, 0)
	v.NextMesh, v.NextNodeID = "533901", "3"
	target := testNode("53390100003", 10, 0)
	d := testNode("53390000005", 10, 10)
	links := []Link{
		testLink("1", v.ID, d.ID, orb.LineString{{10, 0}, {10, 10}}),
	}
	mergedLinks, mergedNodes, err := resolveVirtualNodes(links, []Node{v, target, d}, NewConfig())
	if err != nil {
		t.Error(err)
		return
	}
	if len(mergedLinks) != 1 || mergedLinks[0].FromNodeID != target.ID {
		t.Errorf("Link should be re-pointed to node '%s', but got %v", target.ID, mergedLinks)
	}
	if len(mergedNodes) != 2 {
		t.Errorf("Number of nodes should be %d, but got %d", 2, len(mergedNodes))
	}

	// Continuation node is outside of the study area
	mergedLinks, _, err = resolveVirtualNodes(links, []Node{v, d}, NewConfig())
	if err != nil {
		t.Error(err)
		return
	}
	if len(mergedLinks) != 0 {
		t.Errorf("Link leading outside of the study area should be dropped, but got %d links", len(mergedLinks))
	}
}

func TestResolveVirtualNodesDanglingReference(t *testing.T) {
	a := testNode("1", 0, 0)
	links := []Link{
		testLink("1", "1", "2", orb.LineString{{0, 0}, {10, 0}}),
	}
	_, _, err := resolveVirtualNodes(links, []Node{a}, NewConfig())
	var refErr *DanglingReferenceError
	if !errors.As(err, &refErr) {
		t.Errorf("Unknown node must produce DanglingReferenceError, but got %v", err)
		return
	}
	if refErr.NodeID != "2" {
		t.Errorf("Dangling node should be '%s', but got '%s'", "2", refErr.NodeID)
	}
}

func TestDropDuplicateGeometries(t *testing.T) {
	links := []Link{
		testLink("1", "a", "b", orb.LineString{{0, 0}, {1, 0}}),
		testLink("2", "b", "a", orb.LineString{{1, 0}, {0, 0}}),
		testLink("3", "a", "b", orb.LineString{{0, 0}, {0.5, 0.5}, {1, 0}}),
		testLink("4", "a", "b", orb.LineString{{0, 0}, {1, 0}}),
		testLink("5", "c", "d", orb.LineString{{0, 5}, {1, 5}}),
		testLink("6", "d", "c", orb.LineString{{1, 5}, {0, 5}}),
	}
	stitched := []bool{false, false, false, false, true, true}
	unique := dropDuplicateGeometries(links, stitched)
	correctIDs := []string{"1", "2", "3", "5"}
	if len(unique) != len(correctIDs) {
		t.Errorf("Number of unique links should be %d, but got %d", len(correctIDs), len(unique))
		return
	}
	for i, link := range unique {
		if link.ID != correctIDs[i] {
			t.Errorf("Unique link #%d should be '%s', but got '%s'", i, correctIDs[i], link.ID)
		}
	}
}

func TestResolveVirtualNodesOppositeOneWays(t *testing.T) {
	a := testNode("53390000001", 0, 0)
	b := testNode("53390000002", 10, 0)
	links := []Link{
		testLink("1", a.ID, b.ID, orb.LineString{{0, 0}, {5, 1}, {10, 0}}),
		testLink("2", b.ID, a.ID, orb.LineString{{10, 0}, {5, 1}, {0, 0}}),
	}
	for i := range links {
		links[i].DirFlag = DIR_FLAG_FORWARD
	}
	mergedLinks, _, err := resolveVirtualNodes(links, []Node{a, b}, NewConfig())
	if err != nil {
		t.Error(err)
		return
	}
	if len(mergedLinks) != 2 {
		t.Errorf("Both one way links should be kept, but got %d links", len(mergedLinks))
	}
}

// Three tiles: X -> T1 | V1 -> V2 | T2 -> Y. Middle link crosses the whole tile and has both endpoints virtual.
func TestResolveVirtualNodesTileCrossing(t *testing.T) {
	x := testNode("53390000001", 0, 0)
	t1 := testNode("53390000002", 10, 0)
	t1.NextMesh, t1.NextNodeID = "533901", "3"
	v1 := testNode("53390100003", 10, 0)
	v1.NextMesh, v1.NextNodeID = "533900", "2"
	v2 := testNode("53390100004", 20, 0)
	v2.NextMesh, v2.NextNodeID = "533902", "5"
	t2 := testNode("53390200005", 20, 0)
	t2.NextMesh, t2.NextNodeID = "533901", "4"
	y := testNode("53390200006", 30, 0)
	links := []Link{
		testLink("1", x.ID, t1.ID, orb.LineString{{0, 0}, {10, 0}}),
		testLink("2", v1.ID, v2.ID, orb.LineString{{10, 0}, {20, 0}}),
		testLink("3", t2.ID, y.ID, orb.LineString{{20, 0}, {30, 0}}),
	}
	mergedLinks, mergedNodes, err := resolveVirtualNodes(links, []Node{x, t1, v1, v2, t2, y}, NewConfig())
	if err != nil {
		t.Error(err)
		return
	}
	if len(mergedNodes) != 2 {
		t.Errorf("Number of nodes should be %d, but got %d", 2, len(mergedNodes))
	}
	if len(mergedLinks) != 1 {
		t.Errorf("Number of links should be %d, but got %d", 1, len(mergedLinks))
		return
	}
	link := mergedLinks[0]
	if link.ID != "2" || link.FromNodeID != x.ID || link.ToNodeID != y.ID {
		t.Errorf("Stitched link should be '2' going from '%s' to '%s', but got '%s' going from '%s' to '%s'", x.ID, y.ID, link.ID, link.FromNodeID, link.ToNodeID)
	}
	correctGeom := "LINESTRING(0 0,10 0,20 0,30 0)"
	if wkt.MarshalString(link.Geom) != correctGeom {
		t.Errorf("Stitched geometry should be '%s', but got '%s'", correctGeom, wkt.MarshalString(link.Geom))
	}
	if link.LengthMeters != 30 {
		t.Errorf("Stitched length should be %f, but got %f", 30.0, link.LengthMeters)
	}
}
