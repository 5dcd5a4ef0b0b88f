package drm2hosha

import (
	"io"

	"github.com/paulmach/orb"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

func writeLinksGeoJSON(w io.Writer, links []Link) error {
	names := linkPropertyNames()
	fc := geojson.NewFeatureCollection()
	for _, link := range links {
		feature := geojson.NewLineStringFeature(lineCoordinates(link.Geom))
		for i, prop := range linkProperties(link) {
			feature.SetProperty(names[i], prop)
		}
		fc.AddFeature(feature)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't convert links to geojson format")
	}
	_, err = w.Write(b)
	return err
}

func writeNodesGeoJSON(w io.Writer, nodes []Node) error {
	fc := geojson.NewFeatureCollection()
	for _, node := range nodes {
		feature := geojson.NewPointFeature([]float64{node.X(), node.Y()})
		feature.SetProperty("node_id", node.ID)
		feature.SetProperty("x_coord", node.X())
		feature.SetProperty("y_coord", node.Y())
		feature.SetProperty("node_type", node.NodeType.String())
		fc.AddFeature(feature)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't convert nodes to geojson format")
	}
	_, err = w.Write(b)
	return err
}

func lineCoordinates(line orb.LineString) [][]float64 {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].X(), line[i].Y()}
	}
	return pts2d
}
