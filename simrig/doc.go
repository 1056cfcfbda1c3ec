// Package simrig simulates an odor rig for tests, examples and the CLI.
//
// A simulated rig mixes channels linearly: every channel has a signature,
// the sensor response per unit of flow, and a measurement is the baseline
// plus the flow-weighted sum of signatures, optionally with Gaussian noise.
//
//	rig, _ := simrig.New(signatures, func(o *simrig.Options) {
//	    o.Noise = 0.01
//	    o.Seed = 7
//	})
//	target, _ := rig.Response([]float64{4, 1.5})
package simrig
