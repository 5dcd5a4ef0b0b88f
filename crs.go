package drm2hosha

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	CRS_WGS84        = "EPSG:4326"
	CRS_WEB_MERCATOR = "EPSG:3857"
)

// UnsupportedCRSError is returned for coordinate reference system which could not be handled
type UnsupportedCRSError struct {
	CRS string
}

func (err *UnsupportedCRSError) Error() string {
	return fmt.Sprintf("unsupported CRS: '%s'", err.CRS)
}

// Japan Plane Rectangular CS (JGD2011) zones I-XIX: EPSG code -> origin (latitude, longitude) in degrees
var planeRectangularOrigins = map[int][2]float64{
	6669: {33, 129 + 30.0/60.0},
	6670: {33, 131},
	6671: {36, 132 + 10.0/60.0},
	6672: {33, 133 + 30.0/60.0},
	6673: {36, 134 + 20.0/60.0},
	6674: {36, 136},
	6675: {36, 137 + 10.0/60.0},
	6676: {36, 138 + 30.0/60.0},
	6677: {36, 139 + 50.0/60.0},
	6678: {40, 140 + 50.0/60.0},
	6679: {44, 140 + 15.0/60.0},
	6680: {44, 142 + 15.0/60.0},
	6681: {44, 144 + 15.0/60.0},
	6682: {26, 142},
	6683: {26, 127 + 30.0/60.0},
	6684: {26, 124},
	6685: {26, 131},
	6686: {20, 136},
	6687: {26, 154},
}

// NormalizeCRS brings CRS identifier to 'EPSG:<code>' form. Accepts 'EPSG:<code>', 'epsg:<code>' and bare '<code>'.
func NormalizeCRS(crs string) (string, error) {
	code, err := epsgCode(crs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("EPSG:%d", code), nil
}

func epsgCode(crs string) (int, error) {
	value := strings.TrimSpace(crs)
	if idx := strings.Index(value, ":"); idx >= 0 {
		if !strings.EqualFold(value[:idx], "EPSG") {
			return 0, &UnsupportedCRSError{CRS: crs}
		}
		value = value[idx+1:]
	}
	code, err := strconv.Atoi(value)
	if err != nil {
		return 0, &UnsupportedCRSError{CRS: crs}
	}
	if code != 4326 && code != 3857 {
		if _, ok := planeRectangularOrigins[code]; !ok {
			return 0, &UnsupportedCRSError{CRS: crs}
		}
	}
	return code, nil
}

// IsGeographic reports whether CRS uses angular coordinates
func IsGeographic(crs string) bool {
	code, err := epsgCode(crs)
	return err == nil && code == 4326
}

// workingCRS returns planar CRS used by the pipeline for given input CRS
func workingCRS(inputCRS string) string {
	if IsGeographic(inputCRS) {
		return CRS_WEB_MERCATOR
	}
	normalized, err := NormalizeCRS(inputCRS)
	if err != nil {
		return inputCRS
	}
	return normalized
}

// Transformer reprojects coordinates between two supported CRS through WGS84
type Transformer struct {
	from    string
	to      string
	toWGS84 orb.Projection
	fromWGS orb.Projection
}

// NewTransformer creates transformer between two CRS
func NewTransformer(from, to string) (*Transformer, error) {
	fromCode, err := epsgCode(from)
	if err != nil {
		return nil, err
	}
	toCode, err := epsgCode(to)
	if err != nil {
		return nil, err
	}
	return &Transformer{
		from:    fmt.Sprintf("EPSG:%d", fromCode),
		to:      fmt.Sprintf("EPSG:%d", toCode),
		toWGS84: projectionToWGS84(fromCode),
		fromWGS: projectionFromWGS84(toCode),
	}, nil
}

// Identity reports whether transformer does not change coordinates
func (tr *Transformer) Identity() bool {
	return tr.from == tr.to
}

// Point reprojects single point
func (tr *Transformer) Point(pt orb.Point) orb.Point {
	if tr.Identity() {
		return pt
	}
	return tr.fromWGS(tr.toWGS84(pt))
}

// LineString reprojects every point of the line. Returns new slice
func (tr *Transformer) LineString(line orb.LineString) orb.LineString {
	result := make(orb.LineString, len(line))
	for i, pt := range line {
		result[i] = tr.Point(pt)
	}
	return result
}

// Network returns reprojected copy of the network
func (tr *Transformer) Network(net *Network) *Network {
	result := Network{
		Nodes: make([]Node, len(net.Nodes)),
		Links: make([]Link, len(net.Links)),
	}
	for i, node := range net.Nodes {
		node.Geom = tr.Point(node.Geom)
		result.Nodes[i] = node
	}
	for i, link := range net.Links {
		link.Geom = tr.LineString(link.Geom)
		result.Links[i] = link
	}
	return &result
}

func projectionToWGS84(code int) orb.Projection {
	switch code {
	case 4326:
		return func(pt orb.Point) orb.Point { return pt }
	case 3857:
		return project.Mercator.ToWGS84
	default:
		origin := planeRectangularOrigins[code]
		return func(pt orb.Point) orb.Point {
			lat, lon := gaussKrugerInverse(pt.Y(), pt.X(), origin[0], origin[1])
			return orb.Point{lon, lat}
		}
	}
}

func projectionFromWGS84(code int) orb.Projection {
	switch code {
	case 4326:
		return func(pt orb.Point) orb.Point { return pt }
	case 3857:
		return project.WGS84.ToMercator
	default:
		origin := planeRectangularOrigins[code]
		return func(pt orb.Point) orb.Point {
			northing, easting := gaussKrugerForward(pt.Lat(), pt.Lon(), origin[0], origin[1])
			return orb.Point{easting, northing}
		}
	}
}

/* Gauss-Krüger projection on GRS80 ellipsoid (Kawase series, as used by GSI) */

const (
	grs80SemiMajor    = 6378137.0
	grs80Flattening   = 1.0 / 298.257222101
	planeScaleFactor  = 0.9999
	seriesTermsNumber = 5
)

type gaussKrugerSeries struct {
	n     float64
	aBar  float64
	a     [seriesTermsNumber + 1]float64
	alpha [seriesTermsNumber + 1]float64
	beta  [seriesTermsNumber + 1]float64
	delta [seriesTermsNumber + 2]float64
}

var gkSeries = newGaussKrugerSeries()

func newGaussKrugerSeries() gaussKrugerSeries {
	n := grs80Flattening / (2 - grs80Flattening)
	n2, n3, n4, n5, n6 := n*n, n*n*n, n*n*n*n, n*n*n*n*n, n*n*n*n*n*n
	s := gaussKrugerSeries{n: n}
	s.a = [seriesTermsNumber + 1]float64{
		1 + n2/4 + n4/64,
		-3.0 / 2.0 * (n - n3/8 - n5/64),
		15.0 / 16.0 * (n2 - n4/4),
		-35.0 / 48.0 * (n3 - 5.0/16.0*n5),
		315.0 / 512.0 * n4,
		-693.0 / 1280.0 * n5,
	}
	s.aBar = planeScaleFactor * grs80SemiMajor / (1 + n) * s.a[0]
	s.alpha = [seriesTermsNumber + 1]float64{
		0,
		n/2 - 2.0/3.0*n2 + 5.0/16.0*n3 + 41.0/180.0*n4 - 127.0/288.0*n5,
		13.0/48.0*n2 - 3.0/5.0*n3 + 557.0/1440.0*n4 + 281.0/630.0*n5,
		61.0/240.0*n3 - 103.0/140.0*n4 + 15061.0/26880.0*n5,
		49561.0/161280.0*n4 - 179.0/168.0*n5,
		34729.0 / 80640.0 * n5,
	}
	s.beta = [seriesTermsNumber + 1]float64{
		0,
		n/2 - 2.0/3.0*n2 + 37.0/96.0*n3 - 1.0/360.0*n4 - 81.0/512.0*n5,
		1.0/48.0*n2 + 1.0/15.0*n3 - 437.0/1440.0*n4 + 46.0/105.0*n5,
		17.0/480.0*n3 - 37.0/840.0*n4 - 209.0/4480.0*n5,
		4397.0/161280.0*n4 - 11.0/504.0*n5,
		4583.0 / 161280.0 * n5,
	}
	s.delta = [seriesTermsNumber + 2]float64{
		0,
		2*n - 2.0/3.0*n2 - 2*n3 + 116.0/45.0*n4 + 26.0/45.0*n5 - 2854.0/675.0*n6,
		7.0/3.0*n2 - 8.0/5.0*n3 - 227.0/45.0*n4 + 2704.0/315.0*n5 + 2323.0/945.0*n6,
		56.0/15.0*n3 - 136.0/35.0*n4 - 1262.0/105.0*n5 + 73814.0/2835.0*n6,
		4279.0/630.0*n4 - 332.0/35.0*n5 - 399572.0/14175.0*n6,
		4174.0/315.0*n5 - 144838.0/6237.0*n6,
		601676.0 / 22275.0 * n6,
	}
	return s
}

// meridianArc returns scaled length of meridian arc from the equator to given latitude (radians)
func (s gaussKrugerSeries) meridianArc(lat float64) float64 {
	sum := s.a[0] * lat
	for j := 1; j <= seriesTermsNumber; j++ {
		sum += s.a[j] * math.Sin(2*float64(j)*lat)
	}
	return planeScaleFactor * grs80SemiMajor / (1 + s.n) * sum
}

// gaussKrugerForward returns northing and easting (meters) for given latitude and longitude (degrees)
func gaussKrugerForward(lat, lon, originLat, originLon float64) (float64, float64) {
	s := gkSeries
	phi := degreesToRadians(lat)
	dLambda := degreesToRadians(lon - originLon)
	e := 2 * math.Sqrt(s.n) / (1 + s.n)
	t := math.Sinh(math.Atanh(math.Sin(phi)) - e*math.Atanh(e*math.Sin(phi)))
	tBar := math.Sqrt(1 + t*t)
	xiPrime := math.Atan2(t, math.Cos(dLambda))
	etaPrime := math.Atanh(math.Sin(dLambda) / tBar)

	x := xiPrime
	y := etaPrime
	for j := 1; j <= seriesTermsNumber; j++ {
		k := 2 * float64(j)
		x += s.alpha[j] * math.Sin(k*xiPrime) * math.Cosh(k*etaPrime)
		y += s.alpha[j] * math.Cos(k*xiPrime) * math.Sinh(k*etaPrime)
	}
	northing := s.aBar*x - s.meridianArc(degreesToRadians(originLat))
	easting := s.aBar * y
	return northing, easting
}

// gaussKrugerInverse returns latitude and longitude (degrees) for given northing and easting (meters)
func gaussKrugerInverse(northing, easting, originLat, originLon float64) (float64, float64) {
	s := gkSeries
	xi := (northing + s.meridianArc(degreesToRadians(originLat))) / s.aBar
	eta := easting / s.aBar

	xiPrime := xi
	etaPrime := eta
	for j := 1; j <= seriesTermsNumber; j++ {
		k := 2 * float64(j)
		xiPrime -= s.beta[j] * math.Sin(k*xi) * math.Cosh(k*eta)
		etaPrime -= s.beta[j] * math.Cos(k*xi) * math.Sinh(k*eta)
	}
	chi := math.Asin(math.Sin(xiPrime) / math.Cosh(etaPrime))
	phi := chi
	for j := 1; j <= seriesTermsNumber+1; j++ {
		phi += s.delta[j] * math.Sin(2*float64(j)*chi)
	}
	lambda := degreesToRadians(originLon) + math.Atan2(math.Sinh(etaPrime), math.Cos(xiPrime))
	return radiansToDegrees(phi), radiansToDegrees(lambda)
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

func radiansToDegrees(r float64) float64 {
	return r * 180.0 / math.Pi
}
