package drm2hosha

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

const (
	osmGenerator = "drm2hosha"
)

// toOSM converts network (coordinates must be EPSG:4326) into OSM document. New entities get negative identifiers as JOSM expects for unsaved data.
// Interior vertices of links become untagged nodes.
func toOSM(net *Network) *osm.OSM {
	doc := osm.OSM{
		Version:   "0.6",
		Generator: osmGenerator,
		Nodes:     make(osm.Nodes, 0, len(net.Nodes)),
		Ways:      make(osm.Ways, 0, len(net.Links)),
	}
	nextNodeID := osm.NodeID(-1)
	newNode := func(lon, lat float64, tags osm.Tags) osm.NodeID {
		id := nextNodeID
		nextNodeID--
		doc.Nodes = append(doc.Nodes, &osm.Node{
			ID:      id,
			Lat:     lat,
			Lon:     lon,
			Visible: true,
			Tags:    tags,
		})
		return id
	}

	osmNodes := make(map[string]osm.NodeID, len(net.Nodes))
	for _, node := range net.Nodes {
		tags := osm.Tags{
			{Key: "gmns:node_id", Value: node.ID},
		}
		if node.NodeType != NODE_UNDEFINED {
			tags = append(tags, osm.Tag{Key: "gmns:node_type", Value: node.NodeType.String()})
		}
		osmNodes[node.ID] = newNode(node.X(), node.Y(), tags)
	}

	for i, link := range net.Links {
		wayNodes := make(osm.WayNodes, 0, len(link.Geom))
		wayNodes = append(wayNodes, osm.WayNode{ID: osmNodes[link.FromNodeID]})
		for j := 1; j < len(link.Geom)-1; j++ {
			wayNodes = append(wayNodes, osm.WayNode{ID: newNode(link.Geom[j].X(), link.Geom[j].Y(), nil)})
		}
		wayNodes = append(wayNodes, osm.WayNode{ID: osmNodes[link.ToNodeID]})
		doc.Ways = append(doc.Ways, &osm.Way{
			ID:      osm.WayID(-(i + 1)),
			Visible: true,
			Nodes:   wayNodes,
			Tags:    linkTags(link),
		})
	}
	return &doc
}

func linkTags(link Link) osm.Tags {
	tags := osm.Tags{
		{Key: "gmns:link_id", Value: link.ID},
		{Key: "gmns:mode", Value: link.NetworkType.String()},
		{Key: "gmns:link_type", Value: link.LinkType.String()},
		{Key: "gmns:length", Value: formatFloat(link.LengthMeters)},
	}
	if link.NetworkType == NETWORK_WALK {
		tags = append(tags, osm.Tag{Key: "highway", Value: "footway"})
	} else {
		tags = append(tags, osm.Tag{Key: "highway", Value: "road"})
	}
	if link.Directed || link.DirFlag == DIR_FLAG_FORWARD {
		tags = append(tags, osm.Tag{Key: "oneway", Value: "yes"})
	} else if link.DirFlag == DIR_FLAG_REVERSE {
		tags = append(tags, osm.Tag{Key: "oneway", Value: "-1"})
	}
	if link.FacilityType != FACILITY_UNDEFINED {
		tags = append(tags, osm.Tag{Key: "gmns:facility_type", Value: link.FacilityType.String()})
	}
	if link.Lanes > 0 {
		tags = append(tags, osm.Tag{Key: "lanes", Value: strconv.Itoa(link.Lanes)})
	}
	if link.LinkType == LINK_TURN {
		tags = append(tags, osm.Tag{Key: "gmns:movement", Value: link.MovementCompositeType.String()})
		tags = append(tags, osm.Tag{Key: "gmns:via_node_id", Value: link.ViaNodeID})
	}
	return tags
}

// WriteOSM writes network (coordinates must be EPSG:4326) as OSM XML document
func WriteOSM(w io.Writer, net *Network) error {
	data, err := xml.MarshalIndent(toOSM(net), "", "  ")
	if err != nil {
		return errors.Wrap(err, "Can't marshal OSM document")
	}
	if _, err = io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "Can't write XML header")
	}
	if _, err = w.Write(data); err != nil {
		return errors.Wrap(err, "Can't write OSM document")
	}
	return nil
}

// ExportOSM writes network (coordinates must be EPSG:4326) into OSM XML file
func ExportOSM(net *Network, fname string) error {
	return writeArtifacts([]artifact{
		{path: fname, write: func(w io.Writer) error { return WriteOSM(w, net) }},
	})
}
