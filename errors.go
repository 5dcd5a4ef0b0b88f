package drm2hosha

import (
	"fmt"
)

// DanglingReferenceError is returned when link endpoint is not present in the node table
type DanglingReferenceError struct {
	Stage  string
	LinkID string
	NodeID string
}

func (err *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s: link '%s' references unknown node '%s'", err.Stage, err.LinkID, err.NodeID)
}

// IDCollisionError is returned when the same node identifier is used for two different places
type IDCollisionError struct {
	NodeID string
}

func (err *IDCollisionError) Error() string {
	return fmt.Sprintf("node identifier '%s' is used for different locations", err.NodeID)
}
