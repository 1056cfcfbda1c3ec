// Package odorsearch searches for odor recipes: mixtures of channel flows
// whose sensor measurement reproduces a target measurement.
//
// The search itself is an online differential evolution run (package
// diffevol). This package wraps it for hosts that drive a physical rig:
// channel calibration, structured logging, metrics, an append-only journal
// for resuming after a restart, and archiving of finished runs.
//
// # Quick Start
//
//	channels := []odorsearch.Channel{
//	    {Name: "lemon", Min: 0, Max: 20},
//	    {Name: "vanilla", Min: 0, Max: 5},
//	}
//	s, _ := odorsearch.New(channels, odorsearch.WithSeed(7))
//	_ = s.SetTarget(target)
//
//	for {
//	    recipe, _ := s.Next()
//	    if recipe.Final {
//	        break
//	    }
//	    _ = s.Report(rig.Measure(recipe.FlowValues()))
//	}
//
// Or let Run drive the loop:
//
//	final, err := odorsearch.Run(ctx, s, rig, odorsearch.WithPace(2*time.Second))
//
// # Durability
//
// With WithJournal every target, trial and final decision is appended to
// <dir>/<runID>.journal. Resume replays a journal into a fresh session and
// verifies that each regenerated candidate matches the recorded one.
//
// # Key Features
//
//   - Pull/push search protocol (Next/Report)
//   - Deterministic runs from a seed
//   - Journal with CRC32C records and optional zstd compression
//   - Report archiving to local disk, MinIO or S3 (lz4/zstd)
//   - Prometheus metrics via package promcollector
package odorsearch
