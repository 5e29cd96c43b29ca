package network

import (
	"github.com/satria-nugraha/corridorsim/pkg/geo"
	"github.com/satria-nugraha/corridorsim/pkg/routing"
	"github.com/satria-nugraha/corridorsim/pkg/util"
)

// Segment is one directed road edge of the imported network. Identifiers are opaque
// tokens assigned by the import tooling; within one network each identifier names
// exactly one segment.
type Segment struct {
	ID         string         `json:"id"`
	From       geo.Coordinate `json:"from"`
	To         geo.Coordinate `json:"to"`
	LengthM    float64        `json:"length,omitempty"`
	Lanes      int            `json:"lanes,omitempty"`
	SpeedLimit float64        `json:"speed_limit,omitempty"`
}

// Corridor is the contiguous ordered chain of segments over which routing is defined,
// outermost origin first. Internal consistency (non-empty, no duplicate identifiers)
// is checked at construction; validating the chain against true network topology is
// the import tooling's job, not ours.
type Corridor struct {
	segments []Segment
	index    map[string]int
	offsets  []float64 // cumulative start offset of each segment, meters
	length   float64
}

func NewCorridor(segments []Segment) (*Corridor, error) {
	if len(segments) == 0 {
		return nil, util.WrapErrorf(nil, routing.ErrMalformedChain, "corridor: no segments")
	}

	index := make(map[string]int, len(segments))
	offsets := make([]float64, len(segments))
	var length float64
	for i, seg := range segments {
		if seg.ID == "" {
			return nil, util.WrapErrorf(nil, routing.ErrMalformedChain,
				"corridor: segment %d has empty identifier", i)
		}
		if _, ok := index[seg.ID]; ok {
			return nil, util.WrapErrorf(nil, routing.ErrMalformedChain,
				"corridor: duplicate segment %q", seg.ID)
		}
		index[seg.ID] = i

		if segments[i].LengthM <= 0 {
			segments[i].LengthM = geo.HaversineDistanceMeter(seg.From, seg.To)
		}
		offsets[i] = length
		length += segments[i].LengthM
	}

	return &Corridor{
		segments: segments,
		index:    index,
		offsets:  offsets,
		length:   length,
	}, nil
}

// ChainIDs returns the ordered segment identifiers, origin end first.
func (c *Corridor) ChainIDs() []string {
	ids := make([]string, len(c.segments))
	for i, seg := range c.segments {
		ids[i] = seg.ID
	}
	return ids
}

func (c *Corridor) Segments() []Segment {
	return c.segments
}

func (c *Corridor) Segment(id string) (Segment, bool) {
	i, ok := c.index[id]
	if !ok {
		return Segment{}, false
	}
	return c.segments[i], true
}

// StartOffset returns the distance in meters from the corridor origin to the start of
// segment id.
func (c *Corridor) StartOffset(id string) (float64, bool) {
	i, ok := c.index[id]
	if !ok {
		return 0, false
	}
	return c.offsets[i], true
}

// Length is the total corridor length in meters.
func (c *Corridor) Length() float64 {
	return c.length
}

func (c *Corridor) NumSegments() int {
	return len(c.segments)
}

// Coordinates returns the corridor geometry as the chain of segment endpoints.
func (c *Corridor) Coordinates() []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(c.segments)+1)
	coords = append(coords, c.segments[0].From)
	for _, seg := range c.segments {
		coords = append(coords, seg.To)
	}
	return coords
}
