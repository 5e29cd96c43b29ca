package routing

import (
	"github.com/satria-nugraha/corridorsim/pkg/util"
)

// Strategy builds the route table for a corridor chain. Scenarios take a Strategy as a
// plain function value; replacing the default routing behavior means passing another
// function, not subclassing anything.
type Strategy func(chain []string) (*RouteTable, error)

// CorridorSuffixes is the default strategy: every segment routes through all of its
// downstream segments to the end of the corridor.
func CorridorSuffixes(chain []string) (*RouteTable, error) {
	return Build(chain)
}

// SingletonRoutes registers each segment as a route containing only itself, which is
// the simulator-global default when no corridor routing is configured: vehicles exit
// the network at the end of their insertion segment.
func SingletonRoutes(chain []string) (*RouteTable, error) {
	if len(chain) == 0 {
		return nil, util.WrapErrorf(nil, ErrMalformedChain, "route table: empty segment chain")
	}

	routes := make(map[string]Route, len(chain))
	for _, id := range chain {
		if _, ok := routes[id]; ok {
			return nil, util.WrapErrorf(nil, ErrMalformedChain,
				"route table: duplicate segment %q in chain", id)
		}
		routes[id] = Route{id}
	}
	return &RouteTable{routes: routes}, nil
}
