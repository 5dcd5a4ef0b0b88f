package drm2hosha

import (
	"fmt"

	"github.com/paulmach/orb"
)

/* Nodes stuff */

const (
	meshCodeWidth  = 6
	localNodeWidth = 5

	sentinelMesh      = "000000"
	sentinelLocalNode = "00000"
)

type Node struct {
	ID       string
	Geom     orb.Point
	NodeType NodeType

	// Continuation reference: only before virtual node resolution
	NextMesh   string
	NextNodeID string

	// Source node this one has been derived from
	RefNodeID string
}

func (node Node) X() float64 {
	return node.Geom.X()
}

func (node Node) Y() float64 {
	return node.Geom.Y()
}

// isVirtual reports whether node is a placeholder for a link crossing a tile boundary
func (node Node) isVirtual() bool {
	if node.NextMesh == "" || node.NextNodeID == "" {
		return false
	}
	return padCode(node.NextMesh, meshCodeWidth) != sentinelMesh && padCode(node.NextNodeID, localNodeWidth) != sentinelLocalNode
}

// isAuxiliary reports whether node has been derived from another (junction) node
func (node Node) isAuxiliary() bool {
	return node.RefNodeID != "" && node.RefNodeID != node.ID
}

// withSourceRef returns copies of nodes where empty source reference points to the node itself
func withSourceRef(nodes []Node) []Node {
	result := make([]Node, len(nodes))
	for i, node := range nodes {
		if node.RefNodeID == "" {
			node.RefNodeID = node.ID
		}
		result[i] = node
	}
	return result
}

// continuationID returns identifier of the node in adjacent tile which given virtual node continues into
func (node Node) continuationID() string {
	return ComposeNodeID(node.NextMesh, node.NextNodeID)
}

// ComposeNodeID returns globally unique node identifier: mesh code + zero-padded local node id
func ComposeNodeID(mesh string, localID string) string {
	return fmt.Sprintf("%s%s", mesh, padCode(localID, localNodeWidth))
}

// padCode left-pads numeric code with zeros up to given width
func padCode(code string, width int) string {
	for len(code) < width {
		code = "0" + code
	}
	return code
}
