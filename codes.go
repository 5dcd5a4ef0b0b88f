package drm2hosha

import (
	"fmt"
)

// InvalidCodeError is returned when a DRM attribute code is outside of its declared domain
type InvalidCodeError struct {
	Field string
	Code  int
}

func (err *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid %s code: %d", err.Field, err.Code)
}

const (
	FIELD_DIRECTION    = "direction"
	FIELD_ROAD_CLASS   = "road_class"
	FIELD_JURISDICTION = "jurisdiction"
	FIELD_ROW_WIDTH    = "row_width"
	FIELD_NODE_TYPE    = "node_type"
)

/* Direction */

// DirFlag is a direction restriction of a link relative to its from->to orientation
type DirFlag int8

const (
	DIR_FLAG_BOTH    = DirFlag(0)
	DIR_FLAG_FORWARD = DirFlag(1)
	DIR_FLAG_REVERSE = DirFlag(-1)
	// Impassable link
	DIR_FLAG_UNDEFINED = DirFlag(-128)
)

func (flag DirFlag) IsDefined() bool {
	return flag == DIR_FLAG_BOTH || flag == DIR_FLAG_FORWARD || flag == DIR_FLAG_REVERSE
}

func (flag DirFlag) String() string {
	if !flag.IsDefined() {
		return ""
	}
	return fmt.Sprintf("%d", int8(flag))
}

// allowsForward reports whether link could be traversed from its source node to its target node
func (flag DirFlag) allowsForward() bool {
	return flag == DIR_FLAG_BOTH || flag == DIR_FLAG_FORWARD
}

// allowsBackward reports whether link could be traversed from its target node to its source node
func (flag DirFlag) allowsBackward() bool {
	return flag == DIR_FLAG_BOTH || flag == DIR_FLAG_REVERSE
}

// opposite returns restriction of the same link traversed in opposite direction
func (flag DirFlag) opposite() DirFlag {
	switch flag {
	case DIR_FLAG_FORWARD:
		return DIR_FLAG_REVERSE
	case DIR_FLAG_REVERSE:
		return DIR_FLAG_FORWARD
	default:
		return flag
	}
}

var (
	dirFlagByDirectionCode = map[int]DirFlag{
		0: DIR_FLAG_BOTH,      // Not surveyed
		1: DIR_FLAG_BOTH,      // No regulation
		2: DIR_FLAG_UNDEFINED, // No entry (unconditional)
		3: DIR_FLAG_BOTH,      // No entry (conditional)
		4: DIR_FLAG_FORWARD,   // One way, forward (unconditional)
		5: DIR_FLAG_REVERSE,   // One way, reverse (unconditional)
		6: DIR_FLAG_FORWARD,   // One way, forward (conditional)
		7: DIR_FLAG_REVERSE,   // One way, reverse (conditional)
		8: DIR_FLAG_BOTH,      // One way with switching
	}
)

// DirFlagFromCode translates DRM traffic regulation code into DirFlag
func DirFlagFromCode(code int) (DirFlag, error) {
	flag, ok := dirFlagByDirectionCode[code]
	if !ok {
		return DIR_FLAG_UNDEFINED, &InvalidCodeError{Field: FIELD_DIRECTION, Code: code}
	}
	return flag, nil
}

/* Road class */

type FacilityType uint16

const (
	FACILITY_EXPRESSWAY = FacilityType(iota + 1)
	FACILITY_ARTERIAL
	FACILITY_COLLECTOR
	FACILITY_LOCAL

	FACILITY_UNDEFINED = FacilityType(0)
)

func (iotaIdx FacilityType) String() string {
	return [...]string{"", "expressway", "arterial", "collector", "local"}[iotaIdx]
}

var (
	facilityTypeByRoadClass = map[int]FacilityType{
		1: FACILITY_EXPRESSWAY, // National expressway
		2: FACILITY_EXPRESSWAY, // Urban expressway
		3: FACILITY_ARTERIAL,   // General national road
		4: FACILITY_ARTERIAL,   // Major local road (prefectural)
		5: FACILITY_ARTERIAL,   // Major local road (designated city)
		6: FACILITY_COLLECTOR,  // General prefectural road
		7: FACILITY_COLLECTOR,  // Designated city road
		9: FACILITY_LOCAL,      // Other roads
		0: FACILITY_LOCAL,      // Not surveyed
	}
)

// FacilityTypeFromCode translates DRM road class code into FacilityType
func FacilityTypeFromCode(code int) (FacilityType, error) {
	facility, ok := facilityTypeByRoadClass[code]
	if !ok {
		return FACILITY_UNDEFINED, &InvalidCodeError{Field: FIELD_ROAD_CLASS, Code: code}
	}
	return facility, nil
}

/* Jurisdiction */

type Jurisdiction uint16

const (
	JURISDICTION_NEXCO = Jurisdiction(iota + 1)
	JURISDICTION_METROPOLITAN_HANSHIN_HONSHU_SHIKOKU
	JURISDICTION_PUBLIC_CORPORATION
	JURISDICTION_NATIONAL
	JURISDICTION_PREFECTURE
	JURISDICTION_DESIGNATED_CITY
	JURISDICTION_OTHER_MUNICIPALITY
	JURISDICTION_OTHERS
	JURISDICTION_UNDETERMINED

	JURISDICTION_UNDEFINED = Jurisdiction(0)
)

func (iotaIdx Jurisdiction) String() string {
	return [...]string{"", "NEXCO", "Metropolitan or Hanshin or Honshu-Shikoku", "Public Corporation", "National", "Prefecture", "Designated City", "Other Municipality", "Others", "Undetermined"}[iotaIdx]
}

var (
	jurisdictionByCode = map[int]Jurisdiction{
		0: JURISDICTION_UNDETERMINED,
		1: JURISDICTION_NEXCO,
		2: JURISDICTION_METROPOLITAN_HANSHIN_HONSHU_SHIKOKU,
		3: JURISDICTION_PUBLIC_CORPORATION,
		4: JURISDICTION_NATIONAL,
		5: JURISDICTION_PREFECTURE,
		6: JURISDICTION_DESIGNATED_CITY,
		7: JURISDICTION_OTHER_MUNICIPALITY,
		8: JURISDICTION_OTHERS,
	}
)

// JurisdictionFromCode translates DRM road administrator code into Jurisdiction
func JurisdictionFromCode(code int) (Jurisdiction, error) {
	jurisdiction, ok := jurisdictionByCode[code]
	if !ok {
		return JURISDICTION_UNDEFINED, &InvalidCodeError{Field: FIELD_JURISDICTION, Code: code}
	}
	return jurisdiction, nil
}

/* Right-of-way width */

type RowWidth uint16

const (
	ROW_WIDTH_UNDETERMINED = RowWidth(iota + 1)
	ROW_WIDTH_13_0_PLUS
	ROW_WIDTH_5_5_TO_13_0
	ROW_WIDTH_3_0_TO_5_5
	ROW_WIDTH_UNDER_3_0

	ROW_WIDTH_UNDEFINED = RowWidth(0)
)

func (iotaIdx RowWidth) String() string {
	return [...]string{"", "Undetermined", ">=13.0m", ">=5.5m&<13.0m", ">=3.0m&<5.5m", "<3.0m"}[iotaIdx]
}

var (
	rowWidthByCode = map[int]RowWidth{
		0: ROW_WIDTH_UNDETERMINED,
		1: ROW_WIDTH_13_0_PLUS,
		2: ROW_WIDTH_5_5_TO_13_0,
		3: ROW_WIDTH_3_0_TO_5_5,
		4: ROW_WIDTH_UNDER_3_0,
	}
)

// RowWidthFromCode translates DRM road width class code into RowWidth
func RowWidthFromCode(code int) (RowWidth, error) {
	width, ok := rowWidthByCode[code]
	if !ok {
		return ROW_WIDTH_UNDEFINED, &InvalidCodeError{Field: FIELD_ROW_WIDTH, Code: code}
	}
	return width, nil
}

/* Node type */

type NodeType uint16

const (
	NODE_INTERSECTION = NodeType(iota + 1)
	NODE_DEAD_END
	NODE_DUMMY
	NODE_BLOCK_CHANGE_INTERSECTION
	NODE_ATTRIBUTE_CHANGE
	NODE_NECESSARY_TRAFFIC_CONTROL
	NODE_CENSUS_END

	NODE_UNDEFINED = NodeType(0)
)

func (iotaIdx NodeType) String() string {
	return [...]string{"", "Intersection", "DeadEnd", "Dummy", "BlockChangeIntersection", "AttributeChange", "NecessaryTrafficControl", "CensusEnd"}[iotaIdx]
}

// NodeTypeFromCode translates DRM node type code (1..7) into NodeType
func NodeTypeFromCode(code int) (NodeType, error) {
	if code < int(NODE_INTERSECTION) || code > int(NODE_CENSUS_END) {
		return NODE_UNDEFINED, &InvalidCodeError{Field: FIELD_NODE_TYPE, Code: code}
	}
	return NodeType(code), nil
}

/* Pedestrian facility */

const (
	PED_FACILITY_OFFSTREET_PATH = "offstreet_path"
)

var (
	defaultPedestrianRoadClasses = []int{2}
)

// pedFacilityFromRoadClass returns pedestrian facility tag for given road class code
func pedFacilityFromRoadClass(code int, pedestrianClasses []int) string {
	for _, pedClass := range pedestrianClasses {
		if code == pedClass {
			return PED_FACILITY_OFFSTREET_PATH
		}
	}
	return ""
}
