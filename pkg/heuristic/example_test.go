package heuristic_test

import (
	"fmt"

	"github.com/matzehuels/linebalance/pkg/bounds"
	"github.com/matzehuels/linebalance/pkg/heuristic"
	"github.com/matzehuels/linebalance/pkg/instance"
	"github.com/matzehuels/linebalance/pkg/preprocess"
)

func Example() {
	inst := instance.New("three", 3, 10)
	copy(inst.T, []int{5, 5, 5})

	p, err := preprocess.Build(inst)
	if err != nil {
		panic(err)
	}

	b := bounds.Compute(p)
	r, err := heuristic.Sample(p, 1, 100)
	if err != nil {
		panic(err)
	}

	fmt.Println("best bound:", b.Best())
	fmt.Println("stations:", r.Stations)
	// Output:
	// best bound: 2
	// stations: 2
}
