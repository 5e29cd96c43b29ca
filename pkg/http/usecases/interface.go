package usecases

import (
	"github.com/satria-nugraha/corridorsim/pkg/network"
)

type SpatialIndex interface {
	NearestSegment(lat, lon, radius float64) (network.Segment, error)
}
