package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/effects"
)

func ExampleEcho_ProcessInPlace() {
	e, err := effects.NewEcho(4)
	if err != nil {
		panic(err)
	}

	first := []float64{1, 0, 0, 0}
	e.ProcessInPlace(first, 0.5)

	second := make([]float64, 4)
	e.ProcessInPlace(second, 0.5)
	fmt.Println(first, second)

	// Output: [1 0 0 0] [0.5 0 0 0]
}

func ExampleDelay_ProcessInPlace() {
	d, err := effects.NewDelay(2)
	if err != nil {
		panic(err)
	}

	d.ProcessInPlace([]float64{1, 1}, 1)
	for range 2 {
		buf := make([]float64, 2)
		d.ProcessInPlace(buf, 1)
		fmt.Printf("%.2f\n", buf[0])
	}

	// Output:
	// 1.00
	// 0.30
}
