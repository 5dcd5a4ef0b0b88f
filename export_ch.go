package drm2hosha

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/LdDl/ch"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// chEdge is a directed edge of the graph prepared for contraction hierarchies
type chEdge struct {
	source int64
	target int64
	weight float64
	link   *Link
	// True when edge goes against link orientation
	reversed bool
}

// chEdges returns directed edges allowed by direction restrictions of links. Vertex label is the position of node in the node table.
func chEdges(net *Network) ([]chEdge, error) {
	labels := make(map[string]int64, len(net.Nodes))
	for i, node := range net.Nodes {
		labels[node.ID] = int64(i)
	}
	edges := make([]chEdge, 0, len(net.Links)*2)
	for i := range net.Links {
		link := &net.Links[i]
		source, ok := labels[link.FromNodeID]
		if !ok {
			return nil, &DanglingReferenceError{Stage: "contraction hierarchies", LinkID: link.ID, NodeID: link.FromNodeID}
		}
		target, ok := labels[link.ToNodeID]
		if !ok {
			return nil, &DanglingReferenceError{Stage: "contraction hierarchies", LinkID: link.ID, NodeID: link.ToNodeID}
		}
		if !link.isRoutable() {
			continue
		}
		if link.Directed || link.DirFlag.allowsForward() {
			edges = append(edges, chEdge{source: source, target: target, weight: link.LengthMeters, link: link})
		}
		if !link.Directed && link.DirFlag.allowsBackward() {
			edges = append(edges, chEdge{source: target, target: source, weight: link.LengthMeters, link: link, reversed: true})
		}
	}
	return edges, nil
}

// ExportCH prepares contraction hierarchies over the network and writes three files: '<prefix>.csv' (edges), '<prefix>_vertices.csv' and '<prefix>_shortcuts.csv'
func ExportCH(net *Network, prefix string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix = strings.TrimSuffix(prefix, ".csv")
	fnameEdges := prefix + ".csv"
	fnameVertices := prefix + "_vertices.csv"
	fnameShortcuts := prefix + "_shortcuts.csv"

	edges, err := chEdges(net)
	if err != nil {
		return err
	}
	graph := ch.Graph{}
	for i := range net.Nodes {
		err = graph.CreateVertex(int64(i))
		if err != nil {
			return errors.Wrap(err, "Can't create vertex")
		}
	}
	for _, edge := range edges {
		err = graph.AddEdge(edge.source, edge.target, edge.weight)
		if err != nil {
			return errors.Wrap(err, "Can't wrap source and target vertices as edge")
		}
	}

	logger.Info("Starting contraction process...")
	st := time.Now()
	graph.PrepareContractionHierarchies()
	logger.Info("Done contraction process", zap.Duration("elapsed", time.Since(st)))

	err = writeArtifacts([]artifact{
		{path: fnameEdges, write: func(w io.Writer) error { return writeCHEdges(w, edges) }},
		{path: fnameVertices, write: func(w io.Writer) error { return writeCHVertices(w, &graph, net) }},
	})
	if err != nil {
		return err
	}
	err = graph.ExportShortcutsToFile(fnameShortcuts)
	if err != nil {
		return errors.Wrap(err, "Can't export shortcuts")
	}
	return nil
}

func writeCHEdges(w io.Writer, edges []chEdge) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	// 		from_vertex_id - int64, ID of source vertex
	// 		to_vertex_id - int64, ID of target vertex
	// 		weight - float64, Weight of an edge (meters)
	//      geom - geometry (WKT representation)
	//      link_id - string, ID of GMNS link
	err := writer.Write([]string{"from_vertex_id", "to_vertex_id", "weight", "geom", "link_id"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, edge := range edges {
		geom := edge.link.Geom
		if edge.reversed {
			geom = reverseLine(geom)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", edge.source),
			fmt.Sprintf("%d", edge.target),
			formatFloat(edge.weight),
			wkt.MarshalString(geom),
			edge.link.ID,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeCHVertices(w io.Writer, graph *ch.Graph, net *Network) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	// 		vertex_id - int64, ID of vertex
	// 		order_pos - int, Position of vertex in hierarchies (evaluted by library)
	// 		importance - int, Importance of vertex in graph (evaluted by library)
	//      geom - geometry (WKT representation)
	//      node_id - string, ID of GMNS node
	err := writer.Write([]string{"vertex_id", "order_pos", "importance", "geom", "node_id"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	vertices := graph.Vertices
	for i := 0; i < len(vertices); i++ {
		label := vertices[i].Label
		node := net.Nodes[label]
		err = writer.Write([]string{
			fmt.Sprintf("%d", label),
			fmt.Sprintf("%d", vertices[i].OrderPos()),
			fmt.Sprintf("%d", vertices[i].Importance()),
			wkt.MarshalString(node.Geom),
			node.ID,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write vertex")
		}
	}
	writer.Flush()
	return writer.Error()
}
