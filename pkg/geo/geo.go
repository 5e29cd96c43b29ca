package geo

import (
	"math"

	"github.com/satria-nugraha/corridorsim/pkg/util"
	"github.com/twpayne/go-polyline"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

const (
	earthRadiusKM = 6371.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// HaversineDistanceMeter. haversine distance between two coordinates in meter.
func HaversineDistanceMeter(from, to Coordinate) float64 {
	return CalculateHaversineDistance(from.Lat, from.Lon, to.Lat, to.Lon) * 1000.0
}

// GetDestinationPoint. destination coordinate after travelling dist km from
// (lat, lon) on the given bearing in degrees.
func GetDestinationPoint(lat, lon, bearing, dist float64) (float64, float64) {
	latRad := util.DegreeToRadians(lat)
	lonRad := util.DegreeToRadians(lon)
	bearingRad := util.DegreeToRadians(bearing)
	angular := dist / earthRadiusKM

	destLat := math.Asin(math.Sin(latRad)*math.Cos(angular) +
		math.Cos(latRad)*math.Sin(angular)*math.Cos(bearingRad))
	destLon := lonRad + math.Atan2(math.Sin(bearingRad)*math.Sin(angular)*math.Cos(latRad),
		math.Cos(angular)-math.Sin(latRad)*math.Sin(destLat))

	return util.RadiansToDegree(destLat), util.RadiansToDegree(destLon)
}

// PolylineFromCoords. encode coordinates as a google encoded polyline string.
func PolylineFromCoords(coords []Coordinate) string {
	path := make([][]float64, 0, len(coords))
	for _, c := range coords {
		path = append(path, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(path))
}
