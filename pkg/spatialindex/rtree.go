package spatialindex

import (
	"math"

	"github.com/satria-nugraha/corridorsim/pkg/geo"
	"github.com/satria-nugraha/corridorsim/pkg/network"
	"github.com/satria-nugraha/corridorsim/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree indexes corridor segments by their bounding boxes so a query coordinate can
// be snapped to the segment it most likely lies on.
type Rtree struct {
	tr *rtree.RTreeG[SegmentRef]
}

type SegmentRef struct {
	segment network.Segment
}

func (sr SegmentRef) ID() string {
	return sr.segment.ID
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[SegmentRef]
	return &Rtree{
		tr: &tr,
	}
}

// Build inserts every corridor segment, padding each bounding box by
// boundingBoxRadius (in km) so near-miss queries still hit.
func (rt *Rtree) Build(corridor *network.Corridor, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("building r-tree spatial index",
		zap.Int("segments", corridor.NumSegments()))

	for _, seg := range corridor.Segments() {
		lowerFromLat, lowerFromLon := geo.GetDestinationPoint(seg.From.Lat, seg.From.Lon, 225, boundingBoxRadius)
		upperFromLat, upperFromLon := geo.GetDestinationPoint(seg.From.Lat, seg.From.Lon, 45, boundingBoxRadius)

		lowerToLat, lowerToLon := geo.GetDestinationPoint(seg.To.Lat, seg.To.Lon, 225, boundingBoxRadius)
		upperToLat, upperToLon := geo.GetDestinationPoint(seg.To.Lat, seg.To.Lon, 45, boundingBoxRadius)

		minLat := math.Min(lowerFromLat, lowerToLat)
		minLon := math.Min(lowerFromLon, lowerToLon)
		maxLat := math.Max(upperFromLat, upperToLat)
		maxLon := math.Max(upperFromLon, upperToLon)

		rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
			SegmentRef{segment: seg})
	}

	log.Info("r-tree spatial index built")
}

// SearchWithinRadius returns the segments whose padded bounding boxes intersect a
// box of radius km around the query point.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []SegmentRef {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]SegmentRef, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data SegmentRef) bool {
			results = append(results, data)
			return len(results) < 20
		})
	return results
}

// NearestSegment snaps (qLat, qLon) to the candidate segment with the smallest
// perpendicular distance. Fails with ErrNotFound when nothing lies within radius km.
func (rt *Rtree) NearestSegment(qLat, qLon, radius float64) (network.Segment, error) {
	candidates := rt.SearchWithinRadius(qLat, qLon, radius)
	if len(candidates) == 0 {
		return network.Segment{}, util.WrapErrorf(nil, util.ErrNotFound,
			"no corridor segment within %.2f km of (%f, %f)", radius, qLat, qLon)
	}

	query := geo.NewCoordinate(qLat, qLon)
	best := candidates[0].segment
	bestDist := math.Inf(1)
	for _, cand := range candidates {
		dist := geo.PointLinePerpendicularDistance(cand.segment.From, cand.segment.To, query)
		if dist < bestDist {
			bestDist = dist
			best = cand.segment
		}
	}
	return best, nil
}
