package bank_test

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/filter/bank"
)

func ExampleBandOf() {
	for _, f := range []float64{20, 440, 1000, 12000} {
		fmt.Printf("%5.0f Hz -> %s\n", f, bank.Bands()[bank.BandOf(f)].Key)
	}

	// Output:
	//    20 Hz -> 32
	//   440 Hz -> 500
	//  1000 Hz -> 1k
	// 12000 Hz -> 16k
}

func ExampleBank_Process() {
	b, err := bank.New(44100, 1024)
	if err != nil {
		panic(err)
	}

	frame := make([]float64, 1024)
	frame[0] = 1

	out, err := b.Process(frame, bank.UnityGains())
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.6f\n", out[0])

	// Output: 1.000000
}
