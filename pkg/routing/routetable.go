package routing

import (
	"errors"

	"github.com/satria-nugraha/corridorsim/pkg/util"
)

var (
	ErrMalformedChain = errors.New("segment chain is empty or contains duplicate identifiers")
	ErrUnknownOrigin  = errors.New("no route registered for origin segment")
)

// Route is the ordered sequence of segment identifiers a vehicle traverses from its
// origin segment to the end of the corridor. The first element is always the origin
// segment itself.
type Route []string

func (r Route) Origin() string {
	return r[0]
}

// RouteTable maps every segment vehicles may originate on to its fixed route.
// Built once at scenario-construction time, immutable afterwards, so lookups are
// safe from any number of goroutines.
type RouteTable struct {
	routes map[string]Route
}

// Build constructs the suffix route table of chain: for every position i the route of
// chain[i] is chain[i:], so a vehicle inserted anywhere on the corridor drives through
// every downstream segment. The chain must be non-empty and duplicate-free.
func Build(chain []string) (*RouteTable, error) {
	if len(chain) == 0 {
		return nil, util.WrapErrorf(nil, ErrMalformedChain, "route table: empty segment chain")
	}

	seen := make(map[string]struct{}, len(chain))
	for _, id := range chain {
		if _, ok := seen[id]; ok {
			return nil, util.WrapErrorf(nil, ErrMalformedChain,
				"route table: duplicate segment %q in chain", id)
		}
		seen[id] = struct{}{}
	}

	routes := make(map[string]Route, len(chain))
	for i := range chain {
		route := make(Route, len(chain)-i)
		copy(route, chain[i:])
		routes[chain[i]] = route
	}
	return &RouteTable{routes: routes}, nil
}

// Lookup returns the route registered for segmentID. An identifier that is not a key
// means the origin distribution and the route table disagree; that mismatch is
// surfaced to the caller instead of defaulting, since a defaulted route would make
// the vehicle leave the network at the next junction.
func (rt *RouteTable) Lookup(segmentID string) (Route, error) {
	route, ok := rt.routes[segmentID]
	if !ok {
		return nil, util.WrapErrorf(nil, ErrUnknownOrigin,
			"route table: unknown origin segment %q", segmentID)
	}
	out := make(Route, len(route))
	copy(out, route)
	return out, nil
}

// Has reports whether segmentID is a registered origin.
func (rt *RouteTable) Has(segmentID string) bool {
	_, ok := rt.routes[segmentID]
	return ok
}

// Origins returns every registered origin segment, in no particular order.
func (rt *RouteTable) Origins() []string {
	origins := make([]string, 0, len(rt.routes))
	for id := range rt.routes {
		origins = append(origins, id)
	}
	return origins
}

func (rt *RouteTable) Len() int {
	return len(rt.routes)
}
