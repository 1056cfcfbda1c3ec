package main

import (
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/odorsearch/journal"
	"github.com/spf13/cobra"
)

func newReplayCmd() *cobra.Command {
	var trials bool

	cmd := &cobra.Command{
		Use:   "replay <journal>",
		Short: "Summarize a run journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := summarizeJournal(args[0])
			if err != nil {
				return err
			}
			summary.print(cmd.OutOrStdout(), trials)
			return nil
		},
	}
	cmd.Flags().BoolVar(&trials, "trials", false, "print every trial")

	return cmd
}

type journalSummary struct {
	meta     journal.Meta
	target   []float64
	trials   []journal.Trial
	best     int
	finished bool
	final    int
}

func summarizeJournal(path string) (journalSummary, error) {
	s := journalSummary{best: -1}
	bestDistance := math.Inf(1)

	err := journal.Replay(path, func(e journal.Entry) error {
		switch e.Type {
		case journal.RecordStart:
			s.meta = e.Meta
		case journal.RecordTarget:
			s.target = e.Target
		case journal.RecordTrial:
			s.trials = append(s.trials, e.Trial)
			if e.Trial.Distance < bestDistance {
				bestDistance = e.Trial.Distance
				s.best = len(s.trials) - 1
			}
		case journal.RecordFinal:
			s.finished = true
			s.final = e.Final
		}
		return nil
	})
	return s, err
}

func (s journalSummary) print(w io.Writer, trials bool) {
	fmt.Fprintf(w, "run:      %s\n", s.meta.RunID)
	fmt.Fprintf(w, "started:  %s\n", s.meta.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "seed:     %d\n", s.meta.Seed)
	fmt.Fprintf(w, "channels: %d\n", len(s.meta.Channels))
	fmt.Fprintf(w, "trials:   %d\n", len(s.trials))

	if s.best >= 0 {
		best := s.trials[s.best]
		fmt.Fprintf(w, "best:     trial %d, distance %.4f\n", best.ID, best.Distance)
	}
	if s.finished {
		fmt.Fprintf(w, "status:   finished (final trial %d)\n", s.final)
	} else {
		fmt.Fprintln(w, "status:   in progress")
	}

	if !trials {
		return
	}
	for _, t := range s.trials {
		fmt.Fprintf(w, "  %4d  %v  %.4f\n", t.ID, t.Vector, t.Distance)
	}
}
