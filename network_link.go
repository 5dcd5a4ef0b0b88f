package drm2hosha

import (
	"github.com/paulmach/orb"
)

/* Links stuff */

type Link struct {
	ID           string
	FromNodeID   string
	ToNodeID     string
	Directed     bool
	Geom         orb.LineString
	DirFlag      DirFlag
	LengthMeters float64
	FacilityType FacilityType
	Lanes        int
	PedFacility  string
	Jurisdiction Jurisdiction
	RowWidth     RowWidth

	NetworkType NetworkType
	LinkType    LinkType
	// Turn links only
	MovementType          MovementType
	MovementCompositeType MovementCompositeType
	ViaNodeID             string
	// Source link this one has been derived from
	ParentID string
}

// withGeometry returns copy of the link with new geometry and length scaled proportionally to the geometry change
func (link Link) withGeometry(geom orb.LineString) Link {
	newLink := link
	newLink.Geom = geom
	newLink.LengthMeters = scaledLength(link.LengthMeters, link.Geom, geom)
	return newLink
}

// withEndpoints returns copy of the link with new endpoints
func (link Link) withEndpoints(fromNodeID, toNodeID string) Link {
	newLink := link
	newLink.FromNodeID = fromNodeID
	newLink.ToNodeID = toNodeID
	return newLink
}

// mirror returns the same link traversed in opposite direction
func (link Link) mirror(id string) Link {
	newLink := link
	newLink.ID = id
	newLink.FromNodeID = link.ToNodeID
	newLink.ToNodeID = link.FromNodeID
	newLink.Geom = reverseLine(link.Geom)
	newLink.Directed = true
	return newLink
}

// isRoutable reports whether the link is passable in at least one direction
func (link Link) isRoutable() bool {
	return link.DirFlag.IsDefined()
}

// attributeSignature is a set of non-geometric attributes which have to match for two links to be merged
type attributeSignature struct {
	dirFlag      DirFlag
	facilityType FacilityType
	lanes        int
	pedFacility  string
	jurisdiction Jurisdiction
	rowWidth     RowWidth
	networkType  NetworkType
}

func (link Link) signature() attributeSignature {
	return attributeSignature{
		dirFlag:      link.DirFlag,
		facilityType: link.FacilityType,
		lanes:        link.Lanes,
		pedFacility:  link.PedFacility,
		jurisdiction: link.Jurisdiction,
		rowWidth:     link.RowWidth,
		networkType:  link.NetworkType,
	}
}

func scaledLength(length float64, oldGeom, newGeom orb.LineString) float64 {
	oldLength := lineLength(oldGeom)
	newLength := lineLength(newGeom)
	if length <= 0 || oldLength == 0 {
		return newLength
	}
	return length * newLength / oldLength
}
