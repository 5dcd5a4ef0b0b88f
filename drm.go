package drm2hosha

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// DRMLink is a raw record of DRM link table
type DRMLink struct {
	LinkID           string
	Mesh             string
	FromNodeID       string
	ToNodeID         string
	Geom             orb.LineString
	DirectionCode    int
	LengthMeters     float64
	RoadClassCode    int
	Lanes            int
	JurisdictionCode int
	RowWidthCode     int
}

// DRMNode is a raw record of DRM node table
type DRMNode struct {
	NodeID       string
	Mesh         string
	Geom         orb.Point
	NodeTypeCode int
	NextMesh     string
	NextNodeID   string
}

// ConvertLinks translates raw DRM links into GMNS links
func ConvertLinks(rawLinks []DRMLink, cfg *Config) ([]Link, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	links := make([]Link, 0, len(rawLinks))
	for _, raw := range rawLinks {
		link, err := convertLink(raw, cfg.pedestrianRoadClasses)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't convert link '%s'", raw.LinkID)
		}
		links = append(links, link)
	}
	return links, nil
}

func convertLink(raw DRMLink, pedestrianClasses []int) (Link, error) {
	dirFlag, err := DirFlagFromCode(raw.DirectionCode)
	if err != nil {
		return Link{}, err
	}
	facilityType, err := FacilityTypeFromCode(raw.RoadClassCode)
	if err != nil {
		return Link{}, err
	}
	jurisdiction, err := JurisdictionFromCode(raw.JurisdictionCode)
	if err != nil {
		return Link{}, err
	}
	rowWidth, err := RowWidthFromCode(raw.RowWidthCode)
	if err != nil {
		return Link{}, err
	}
	if len(raw.Geom) < 2 {
		return Link{}, fmt.Errorf("link geometry has %d points", len(raw.Geom))
	}
	fromNodeID, toNodeID := raw.FromNodeID, raw.ToNodeID
	if raw.Mesh != "" {
		fromNodeID = ComposeNodeID(raw.Mesh, raw.FromNodeID)
		toNodeID = ComposeNodeID(raw.Mesh, raw.ToNodeID)
	}
	return Link{
		ID:           raw.LinkID,
		FromNodeID:   fromNodeID,
		ToNodeID:     toNodeID,
		Directed:     false,
		Geom:         raw.Geom.Clone(),
		DirFlag:      dirFlag,
		LengthMeters: raw.LengthMeters,
		FacilityType: facilityType,
		Lanes:        raw.Lanes,
		PedFacility:  pedFacilityFromRoadClass(raw.RoadClassCode, pedestrianClasses),
		Jurisdiction: jurisdiction,
		RowWidth:     rowWidth,
		LinkType:     LINK_ROAD,
		ParentID:     raw.LinkID,
	}, nil
}

// ConvertNodes translates raw DRM nodes into GMNS nodes
func ConvertNodes(rawNodes []DRMNode) ([]Node, error) {
	nodes := make([]Node, 0, len(rawNodes))
	for _, raw := range rawNodes {
		nodeType, err := NodeTypeFromCode(raw.NodeTypeCode)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't convert node '%s'", raw.NodeID)
		}
		nodeID := raw.NodeID
		if raw.Mesh != "" {
			nodeID = ComposeNodeID(raw.Mesh, raw.NodeID)
		}
		nodes = append(nodes, Node{
			ID:         nodeID,
			Geom:       raw.Geom,
			NodeType:   nodeType,
			NextMesh:   raw.NextMesh,
			NextNodeID: raw.NextNodeID,
			RefNodeID:  nodeID,
		})
	}
	return nodes, nil
}
