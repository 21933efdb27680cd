package conditioner_test

import (
	"fmt"
	"log"

	conditioner "github.com/tphakala/go-audio-conditioner"
)

func ExampleDCCut() {
	// Four stereo frames of a constant 0.5 offset.
	src := []float32{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	dst := make([]float32, len(src))

	conditioner.DCCut(dst, src, 4, 48000, 20)

	left, _ := conditioner.DeinterleaveFromStereo(dst)
	for _, v := range left {
		fmt.Printf("%.4f\n", v)
	}
	// Output:
	// 0.5000
	// 0.4987
	// 0.4974
	// 0.4961
}

func ExampleNoiseGate() {
	g := conditioner.NewNoiseGate(48000, conditioner.DefaultNoiseGateParams())
	out := make([]float32, 2)

	// Left is loud enough to open; right stays below the open threshold.
	g.Process(out, []float32{0.5, 0.045}, 1)

	fmt.Println(g.IsOpen(0), g.IsOpen(1))
	fmt.Printf("%.4f %.4f\n", out[0], out[1])
	// Output:
	// true false
	// 0.0021 0.0000
}

func ExampleNew() {
	cfg := conditioner.DefaultConfig()
	c, err := conditioner.New(&cfg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(c.Name())

	cfg.GateParams.ThClose = 0.1
	_, err = conditioner.New(&cfg)
	fmt.Println(err)
	// Output:
	// dcblock -> gate
	// invalid conditioner configuration: open threshold 0.05 below close threshold 0.1
}
