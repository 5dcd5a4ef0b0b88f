package drm2hosha

import (
	"github.com/paulmach/orb"
)

func testNode(id string, x, y float64) Node {
	return Node{
		ID:        id,
		Geom:      orb.Point{x, y},
		NodeType:  NODE_INTERSECTION,
		RefNodeID: id,
	}
}

func testLink(id, from, to string, geom orb.LineString) Link {
	return Link{
		ID:           id,
		FromNodeID:   from,
		ToNodeID:     to,
		Geom:         geom,
		DirFlag:      DIR_FLAG_BOTH,
		LengthMeters: lineLength(geom),
		FacilityType: FACILITY_ARTERIAL,
		Lanes:        2,
		Jurisdiction: JURISDICTION_NATIONAL,
		RowWidth:     ROW_WIDTH_5_5_TO_13_0,
		LinkType:     LINK_ROAD,
		ParentID:     id,
	}
}

func testWalkLink(id, from, to string, geom orb.LineString) Link {
	link := testLink(id, from, to, geom)
	link.FacilityType = FACILITY_EXPRESSWAY
	link.PedFacility = PED_FACILITY_OFFSTREET_PATH
	return link
}

func findNode(nodes []Node, id string) (Node, bool) {
	for _, node := range nodes {
		if node.ID == id {
			return node, true
		}
	}
	return Node{}, false
}

func countLinks(links []Link, filter func(Link) bool) int {
	n := 0
	for _, link := range links {
		if filter(link) {
			n++
		}
	}
	return n
}
