package drm2hosha

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// All helpers below assume planar coordinates: X == easting, Y == northing, units are meters

// lineLength returns length of given line
func lineLength(line orb.LineString) float64 {
	if len(line) < 2 {
		return 0.0
	}
	return planar.Length(line)
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(line orb.LineString) orb.LineString {
	output := line.Clone()
	output.Reverse()
	return output
}

// cleanLine removes consecutive duplicate points. Returns new slice
func cleanLine(line orb.LineString) orb.LineString {
	output := make(orb.LineString, 0, len(line))
	for i, pt := range line {
		if i > 0 && pt.Equal(output[len(output)-1]) {
			continue
		}
		output = append(output, pt)
	}
	return output
}

// snapLine makes given line start exactly at 'source' and end exactly at 'target'. Returns new slice
func snapLine(line orb.LineString, source, target orb.Point) orb.LineString {
	cleaned := cleanLine(line)
	if len(cleaned) < 2 {
		return orb.LineString{source, target}
	}
	cleaned[0] = source
	cleaned[len(cleaned)-1] = target
	return cleaned
}

// pointOnSegmentByFraction returns a point on given segment using fraction of its length
func pointOnSegmentByFraction(p, q orb.Point, fraction float64) orb.Point {
	return orb.Point{
		(1-fraction)*p.X() + fraction*q.X(),
		(1-fraction)*p.Y() + fraction*q.Y(),
	}
}

// pointAtDistance returns point located at given distance along the line and index of point in line right before it
func pointAtDistance(line orb.LineString, distance float64) (orb.Point, int) {
	if len(line) == 0 {
		return orb.Point{}, 0
	}
	if len(line) == 1 || distance <= 0 {
		return line[0], 0
	}
	cl := 0.0
	for i := 1; i < len(line); i++ {
		segmentLength := planar.Distance(line[i-1], line[i])
		if segmentLength > 0 && cl+segmentLength >= distance {
			return pointOnSegmentByFraction(line[i-1], line[i], (distance-cl)/segmentLength), i - 1
		}
		cl += segmentLength
	}
	return line[len(line)-1], len(line) - 2
}

// substring returns part of the line between two distances measured from its start
func substring(line orb.LineString, start, end float64) orb.LineString {
	total := lineLength(line)
	if start < 0 {
		start = 0
	}
	if end > total {
		end = total
	}
	startPt, startIdx := pointAtDistance(line, start)
	endPt, endIdx := pointAtDistance(line, end)
	if end <= start {
		return orb.LineString{startPt, startPt}
	}
	result := make(orb.LineString, 0, endIdx-startIdx+2)
	result = append(result, startPt)
	for i := startIdx + 1; i <= endIdx; i++ {
		result = append(result, line[i])
	}
	result = append(result, endPt)
	result = cleanLine(result)
	if len(result) < 2 {
		return orb.LineString{startPt, endPt}
	}
	return result
}

// joinLines returns single line made of two lines connected by their closest endpoints.
// Order of the first line is preserved, coincident junction point is kept once.
func joinLines(first, second orb.LineString) orb.LineString {
	if len(first) == 0 {
		return second.Clone()
	}
	if len(second) == 0 {
		return first.Clone()
	}
	firstStart, firstEnd := first[0], first[len(first)-1]
	secondStart, secondEnd := second[0], second[len(second)-1]

	candidates := [4]float64{
		planar.Distance(firstEnd, secondStart),
		planar.Distance(firstEnd, secondEnd),
		planar.Distance(firstStart, secondEnd),
		planar.Distance(firstStart, secondStart),
	}
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i] < candidates[best] {
			best = i
		}
	}
	var head, tail orb.LineString
	switch best {
	case 0:
		head, tail = first, second
	case 1:
		head, tail = first, reverseLine(second)
	case 2:
		head, tail = second, first
	default:
		head, tail = reverseLine(second), first
	}
	result := make(orb.LineString, 0, len(head)+len(tail))
	result = append(result, head...)
	for i, pt := range tail {
		if i == 0 && pt.Equal(result[len(result)-1]) {
			continue
		}
		result = append(result, pt)
	}
	return result
}

// pointsClose reports whether two points are within given tolerance
func pointsClose(p, q orb.Point, tolerance float64) bool {
	return planar.Distance(p, q) <= tolerance
}

// pointBound returns bounding box of the point extended by tolerance
func pointBound(pt orb.Point, tolerance float64) ([2]float64, [2]float64) {
	return [2]float64{pt.X() - tolerance, pt.Y() - tolerance}, [2]float64{pt.X() + tolerance, pt.Y() + tolerance}
}

// angleBetweenLines returns angle between two lines
//
// Note: panics if number of points in any line is less than 2
func angleBetweenLines(l1 orb.LineString, l2 orb.LineString) float64 {
	angle1 := math.Atan2(l1[len(l1)-1].Y()-l1[0].Y(), l1[len(l1)-1].X()-l1[0].X())
	angle2 := math.Atan2(l2[len(l2)-1].Y()-l2[0].Y(), l2[len(l2)-1].X()-l2[0].X())
	return normalizeAngle(angle2 - angle1)
}

// concatLines appends second line to the first one. Coincident junction point is kept once. Returns new slice
func concatLines(first, second orb.LineString) orb.LineString {
	result := make(orb.LineString, 0, len(first)+len(second))
	result = append(result, first...)
	for i, pt := range second {
		if i == 0 && len(result) > 0 && pt.Equal(result[len(result)-1]) {
			continue
		}
		result = append(result, pt)
	}
	return result
}
