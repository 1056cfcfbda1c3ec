// Package diffevol implements an online differential-evolution search for
// expensive, one-sample-at-a-time objectives such as physical odor
// measurements.
//
// The Engine never evaluates the objective itself. A driver pulls the next
// vector to test with GetTestCandidate, measures it out of band and pushes the
// result back with AddMeasurement:
//
//	eng, _ := diffevol.New(channels, diffevol.DefaultParameters())
//	_ = eng.SetTarget(target)
//	for {
//		c, _ := eng.GetTestCandidate()
//		if c.IsFinal {
//			break
//		}
//		_ = eng.AddMeasurement(measure(c.Vector))
//	}
//
// Every search dimension is normalized to [ValueMin, ValueMax]. The first
// generation is a fixed set of near-boundary corner vectors plus the center;
// later generations are produced by DE/rand/1 mutation, binomial crossover and
// greedy per-slot selection.
//
// An Engine is single-owner and not safe for concurrent use. Run one Engine per
// search.
package diffevol
