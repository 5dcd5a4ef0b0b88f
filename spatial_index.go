package drm2hosha

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

// pointIndex is R-tree of points keyed by their position in some table
type pointIndex struct {
	tr     *rtree.RTreeG[int]
	points []orb.Point
}

func newPointIndex() *pointIndex {
	var tr rtree.RTreeG[int]
	return &pointIndex{
		tr:     &tr,
		points: make([]orb.Point, 0),
	}
}

// insert adds point and returns its key
func (pi *pointIndex) insert(pt orb.Point) int {
	key := len(pi.points)
	pi.points = append(pi.points, pt)
	pi.tr.Insert([2]float64{pt.X(), pt.Y()}, [2]float64{pt.X(), pt.Y()}, key)
	return key
}

// within returns keys (ascending) of points located not farther than tolerance from given point
func (pi *pointIndex) within(pt orb.Point, tolerance float64) []int {
	min, max := pointBound(pt, tolerance)
	result := make([]int, 0, 2)
	pi.tr.Search(min, max, func(_, _ [2]float64, key int) bool {
		if pointsClose(pi.points[key], pt, tolerance) {
			result = append(result, key)
		}
		return true
	})
	sort.Ints(result)
	return result
}
