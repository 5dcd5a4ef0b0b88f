package drm2hosha

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// MissingPropertyError is returned when feature does not carry mapped property
type MissingPropertyError struct {
	Property string
}

func (err *MissingPropertyError) Error() string {
	return fmt.Sprintf("missing property '%s'", err.Property)
}

// LoadDRMGeoJSON reads DRM link and node tables from GeoJSON files
func LoadDRMGeoJSON(linksFile, nodesFile string, mapping FieldMapping) ([]DRMLink, []DRMNode, error) {
	err := mapping.Validate()
	if err != nil {
		return nil, nil, err
	}
	linksFC, err := readFeatureCollection(linksFile)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't read links")
	}
	nodesFC, err := readFeatureCollection(nodesFile)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't read nodes")
	}
	links, err := ParseDRMLinks(linksFC, mapping.Links)
	if err != nil {
		return nil, nil, err
	}
	nodes, err := ParseDRMNodes(nodesFC, mapping.Nodes)
	if err != nil {
		return nil, nil, err
	}
	return links, nodes, nil
}

func readFeatureCollection(fname string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read file")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse GeoJSON")
	}
	return fc, nil
}

// ParseDRMLinks extracts raw DRM links from features with LineString (or single-part MultiLineString) geometry
func ParseDRMLinks(fc *geojson.FeatureCollection, mapping LinkFieldMapping) ([]DRMLink, error) {
	links := make([]DRMLink, 0, len(fc.Features))
	for i, feature := range fc.Features {
		link, err := parseDRMLink(feature, mapping)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't parse link feature #%d", i)
		}
		links = append(links, link)
	}
	return links, nil
}

func parseDRMLink(feature *geojson.Feature, mapping LinkFieldMapping) (DRMLink, error) {
	if feature.Geometry == nil {
		return DRMLink{}, errors.New("feature has no geometry")
	}
	var coordinates [][]float64
	switch {
	case feature.Geometry.IsLineString():
		coordinates = feature.Geometry.LineString
	case feature.Geometry.IsMultiLineString() && len(feature.Geometry.MultiLineString) == 1:
		coordinates = feature.Geometry.MultiLineString[0]
	default:
		return DRMLink{}, errors.Errorf("unexpected geometry type '%s'", feature.Geometry.Type)
	}
	geom := make(orb.LineString, 0, len(coordinates))
	for _, coordinate := range coordinates {
		if len(coordinate) < 2 {
			return DRMLink{}, errors.New("coordinate has less than 2 dimensions")
		}
		geom = append(geom, orb.Point{coordinate[0], coordinate[1]})
	}

	props := feature.Properties
	link := DRMLink{Geom: geom}
	var err error
	if link.LinkID, err = stringProperty(props, mapping.LinkID); err != nil {
		return DRMLink{}, err
	}
	if link.Mesh, err = stringProperty(props, mapping.Mesh); err != nil {
		return DRMLink{}, err
	}
	if link.FromNodeID, err = stringProperty(props, mapping.FromNodeID); err != nil {
		return DRMLink{}, err
	}
	if link.ToNodeID, err = stringProperty(props, mapping.ToNodeID); err != nil {
		return DRMLink{}, err
	}
	if link.DirectionCode, err = intProperty(props, mapping.Direction); err != nil {
		return DRMLink{}, err
	}
	if link.LengthMeters, err = floatProperty(props, mapping.Length); err != nil {
		return DRMLink{}, err
	}
	if link.RoadClassCode, err = intProperty(props, mapping.FacilityType); err != nil {
		return DRMLink{}, err
	}
	if link.JurisdictionCode, err = intProperty(props, mapping.Jurisdiction); err != nil {
		return DRMLink{}, err
	}
	if link.RowWidthCode, err = intProperty(props, mapping.RowWidth); err != nil {
		return DRMLink{}, err
	}
	// Lanes are not surveyed for every link
	if lanes, err := intProperty(props, mapping.Lanes); err == nil {
		link.Lanes = lanes
	}
	return link, nil
}

// ParseDRMNodes extracts raw DRM nodes from features with Point geometry
func ParseDRMNodes(fc *geojson.FeatureCollection, mapping NodeFieldMapping) ([]DRMNode, error) {
	nodes := make([]DRMNode, 0, len(fc.Features))
	for i, feature := range fc.Features {
		node, err := parseDRMNode(feature, mapping)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't parse node feature #%d", i)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func parseDRMNode(feature *geojson.Feature, mapping NodeFieldMapping) (DRMNode, error) {
	if feature.Geometry == nil || !feature.Geometry.IsPoint() || len(feature.Geometry.Point) < 2 {
		return DRMNode{}, errors.New("feature has no point geometry")
	}
	props := feature.Properties
	node := DRMNode{
		Geom: orb.Point{feature.Geometry.Point[0], feature.Geometry.Point[1]},
	}
	var err error
	if node.NodeID, err = stringProperty(props, mapping.NodeID); err != nil {
		return DRMNode{}, err
	}
	if node.NodeTypeCode, err = intProperty(props, mapping.NodeType); err != nil {
		return DRMNode{}, err
	}
	if mapping.Mesh != "" {
		if node.Mesh, err = stringProperty(props, mapping.Mesh); err != nil {
			return DRMNode{}, err
		}
	}
	// Continuation reference is empty for most of nodes
	node.NextMesh, _ = stringProperty(props, mapping.NextMesh)
	node.NextNodeID, _ = stringProperty(props, mapping.NextNodeID)
	return node, nil
}

// stringProperty returns property as string. Integral numbers are formatted without fraction part.
func stringProperty(props map[string]interface{}, key string) (string, error) {
	value, ok := props[key]
	if !ok || value == nil {
		return "", &MissingPropertyError{Property: key}
	}
	switch v := value.(type) {
	case string:
		return v, nil
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), nil
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func intProperty(props map[string]interface{}, key string) (int, error) {
	value, ok := props[key]
	if !ok || value == nil {
		return 0, &MissingPropertyError{Property: key}
	}
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, errors.Errorf("property '%s' is not an integer: %v", key, v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, errors.Wrapf(err, "Can't parse property '%s'", key)
		}
		return n, nil
	default:
		return 0, errors.Errorf("property '%s' has unexpected type %T", key, value)
	}
}

func floatProperty(props map[string]interface{}, key string) (float64, error) {
	value, ok := props[key]
	if !ok || value == nil {
		return 0, &MissingPropertyError{Property: key}
	}
	switch v := value.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "Can't parse property '%s'", key)
		}
		return f, nil
	default:
		return 0, errors.Errorf("property '%s' has unexpected type %T", key, value)
	}
}
