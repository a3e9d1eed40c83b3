package pitch_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/effects/pitch"
)

func ExampleFactor() {
	fmt.Printf("%.3f %.3f %.3f\n", pitch.Factor(7), pitch.Factor(-12), pitch.Factor(20))
	// Output: 1.498 0.500 2.000
}

func ExamplePitchShifter_Shift() {
	p, err := pitch.NewPitchShifter(44100)
	if err != nil {
		panic(err)
	}

	frame := make([]float64, 2048)
	for i := range frame {
		frame[i] = 0.5 * math.Sin(2*math.Pi*220*float64(i)/44100)
	}

	out, err := p.Shift(frame, 5)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(out))
	// Output: 2048
}
