package main

import (
	"flag"
	"fmt"

	"github.com/satria-nugraha/corridorsim/pkg/network"
	"github.com/satria-nugraha/corridorsim/pkg/routing"
)

var (
	corridorPath = flag.String("corridor", "./data/corridor.json", "corridor definition file (.json or .json.bz2)")
)

// Inspect a corridor file: build its route table and print every registered route.
func main() {
	flag.Parse()

	corridor, err := network.LoadCorridor(*corridorPath)
	if err != nil {
		panic(err)
	}

	table, err := routing.Build(corridor.ChainIDs())
	if err != nil {
		panic(err)
	}

	fmt.Printf("corridor: %d segments, %.1f m\n", corridor.NumSegments(), corridor.Length())
	for _, id := range corridor.ChainIDs() {
		route, err := table.Lookup(id)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%-12s -> %v\n", id, []string(route))
	}
}
