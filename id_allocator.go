package drm2hosha

import (
	"strconv"
)

// idAllocator hands out fresh decimal identifiers for synthesized nodes and links.
// One allocator is shared by every stage of a run so identifiers never collide between modal networks.
type idAllocator struct {
	nextNode  int64
	nextLink  int64
	usedNodes map[string]struct{}
	usedLinks map[string]struct{}
}

func newIDAllocator(nodes []Node, links []Link) *idAllocator {
	alloc := idAllocator{
		nextNode:  1,
		nextLink:  1,
		usedNodes: make(map[string]struct{}, len(nodes)),
		usedLinks: make(map[string]struct{}, len(links)),
	}
	for _, node := range nodes {
		alloc.usedNodes[node.ID] = struct{}{}
		if v, err := strconv.ParseInt(node.ID, 10, 64); err == nil && v >= alloc.nextNode {
			alloc.nextNode = v + 1
		}
	}
	for _, link := range links {
		alloc.usedLinks[link.ID] = struct{}{}
		if v, err := strconv.ParseInt(link.ID, 10, 64); err == nil && v >= alloc.nextLink {
			alloc.nextLink = v + 1
		}
	}
	return &alloc
}

func (alloc *idAllocator) nodeID() string {
	for {
		id := strconv.FormatInt(alloc.nextNode, 10)
		alloc.nextNode++
		if _, ok := alloc.usedNodes[id]; !ok {
			alloc.usedNodes[id] = struct{}{}
			return id
		}
	}
}

func (alloc *idAllocator) linkID() string {
	for {
		id := strconv.FormatInt(alloc.nextLink, 10)
		alloc.nextLink++
		if _, ok := alloc.usedLinks[id]; !ok {
			alloc.usedLinks[id] = struct{}{}
			return id
		}
	}
}
