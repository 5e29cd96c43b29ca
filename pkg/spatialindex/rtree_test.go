package spatialindex

import (
	"errors"
	"testing"

	"github.com/satria-nugraha/corridorsim/pkg/geo"
	"github.com/satria-nugraha/corridorsim/pkg/logger"
	"github.com/satria-nugraha/corridorsim/pkg/network"
	"github.com/satria-nugraha/corridorsim/pkg/util"
)

func TestNearestSegment(t *testing.T) {
	segments := []network.Segment{
		{ID: "west", From: geo.NewCoordinate(-7.800, 110.360), To: geo.NewCoordinate(-7.800, 110.370)},
		{ID: "east", From: geo.NewCoordinate(-7.800, 110.370), To: geo.NewCoordinate(-7.800, 110.380)},
	}
	corridor, err := network.NewCorridor(segments)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	log, err := logger.New()
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	rt := NewRtree()
	rt.Build(corridor, 0.05, log)

	testCases := []struct {
		name     string
		lat, lon float64
		expected string
	}{
		{name: "on west segment", lat: -7.8001, lon: 110.365, expected: "west"},
		{name: "on east segment", lat: -7.8001, lon: 110.375, expected: "east"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			seg, err := rt.NearestSegment(tt.lat, tt.lon, 0.5)
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if seg.ID != tt.expected {
				t.Errorf("snapped to %q, want %q", seg.ID, tt.expected)
			}
		})
	}

	// nothing within radius
	_, err = rt.NearestSegment(-8.2, 111.0, 0.5)
	if !errors.Is(util.ErrorCode(err), util.ErrNotFound) {
		t.Errorf("error code = %v, want ErrNotFound", util.ErrorCode(err))
	}
}
