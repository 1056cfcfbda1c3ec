package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hupe1980/odorsearch"
	"github.com/hupe1980/odorsearch/archive"
	"github.com/hupe1980/odorsearch/simrig"
	"github.com/spf13/cobra"
)

type simulateFlags struct {
	configPath  string
	channels    int
	sensors     int
	rigSeed     uint64
	seed        uint64
	noise       float64
	target      string
	journalDir  string
	compress    bool
	archiveURI  string
	compression string
	indexTable  string
	experiment  string
	maxTrials   int
	pace        time.Duration
}

func newSimulateCmd(g *globalFlags) *cobra.Command {
	f := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a search against a simulated rig",
		Long: `Runs a complete search against a simulated linear mixing rig.

The target measurement is the rig's response to --target flows (or random
flows inside the channel ranges). Channels come from --config or are
generated as c0..cN with flows in [0, 10].`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := g.logger()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSimulate(ctx, cmd, f, logger)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML search config")
	fl.IntVar(&f.channels, "channels", 3, "number of generated channels (without --config)")
	fl.IntVar(&f.sensors, "sensors", 4, "number of simulated sensors")
	fl.Uint64Var(&f.rigSeed, "rig-seed", 1, "seed of the simulated channel signatures and noise")
	fl.Uint64Var(&f.seed, "seed", 0, "search seed (0 draws a random seed unless the config sets one)")
	fl.Float64Var(&f.noise, "noise", 0, "standard deviation of sensor noise")
	fl.StringVar(&f.target, "target", "", "comma separated target flows")
	fl.StringVar(&f.journalDir, "journal", "", "journal directory")
	fl.BoolVar(&f.compress, "compress", false, "zstd-compress the journal")
	fl.StringVar(&f.archiveURI, "archive", "", "archive uri for the run report (file://, s3://, minio://, mem://)")
	fl.StringVar(&f.compression, "compression", "", "report compression (none, lz4, zstd)")
	fl.StringVar(&f.indexTable, "index-table", "", "DynamoDB table of the run index")
	fl.StringVar(&f.experiment, "experiment", "default", "experiment name in the run index")
	fl.IntVar(&f.maxTrials, "max-trials", 0, "stop after that many measurements (0 = no limit)")
	fl.DurationVar(&f.pace, "pace", 0, "minimum interval between measurements")

	return cmd
}

func (f *simulateFlags) config(cmd *cobra.Command) (odorsearch.Config, error) {
	cfg := odorsearch.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = odorsearch.LoadConfig(f.configPath); err != nil {
			return odorsearch.Config{}, err
		}
	} else {
		if f.channels < 1 {
			return odorsearch.Config{}, fmt.Errorf("--channels must be positive, got %d", f.channels)
		}
		for i := range f.channels {
			cfg.Channels = append(cfg.Channels, odorsearch.Channel{Name: fmt.Sprintf("c%d", i), Min: 0, Max: 10})
		}
	}

	changed := cmd.Flags().Changed
	if changed("seed") {
		seed := f.seed
		cfg.Seed = &seed
	}
	if changed("journal") {
		cfg.Journal.Dir = f.journalDir
	}
	if changed("compress") {
		cfg.Journal.Compress = f.compress
	}
	if changed("archive") {
		cfg.Archive.URI = f.archiveURI
	}
	if changed("compression") {
		c, err := archive.ParseCompression(f.compression)
		if err != nil {
			return odorsearch.Config{}, err
		}
		cfg.Archive.Compression = c
	}
	if changed("index-table") {
		cfg.Archive.IndexTable = f.indexTable
	}
	if changed("experiment") || cfg.Archive.Experiment == "" {
		cfg.Archive.Experiment = f.experiment
	}
	if changed("max-trials") {
		cfg.MaxTrials = f.maxTrials
	}
	if changed("pace") {
		cfg.Pace = f.pace
	}

	return cfg, cfg.Validate()
}

func (f *simulateFlags) targetFlows(channels []odorsearch.Channel) ([]float64, error) {
	if f.target == "" {
		rng := rand.New(rand.NewPCG(f.rigSeed, f.rigSeed+1))
		flows := make([]float64, len(channels))
		for i, ch := range channels {
			flows[i] = ch.Min + rng.Float64()*(ch.Max-ch.Min)
		}
		return flows, nil
	}

	parts := strings.Split(f.target, ",")
	if len(parts) != len(channels) {
		return nil, fmt.Errorf("--target has %d flows, want %d", len(parts), len(channels))
	}
	flows := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid target flow %q: %w", p, err)
		}
		flows[i] = v
	}
	return flows, nil
}

func runSimulate(ctx context.Context, cmd *cobra.Command, f *simulateFlags, logger *odorsearch.Logger) error {
	cfg, err := f.config(cmd)
	if err != nil {
		return err
	}

	rig, err := simrig.New(simrig.RandomSignatures(len(cfg.Channels), f.sensors, f.rigSeed), func(o *simrig.Options) {
		o.Noise = f.noise
		o.Seed = f.rigSeed
	})
	if err != nil {
		return err
	}

	targetFlows, err := f.targetFlows(cfg.Channels)
	if err != nil {
		return err
	}
	target, err := rig.Response(targetFlows)
	if err != nil {
		return err
	}

	s, err := odorsearch.New(cfg.Channels, append(cfg.Options(), odorsearch.WithLogger(logger))...)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.SetTarget(target); err != nil {
		return err
	}

	final, err := odorsearch.Run(ctx, s, rig, cfg.RunOptions()...)
	if err != nil {
		if path := s.JournalPath(); path != "" {
			logger.Warn("search interrupted; continue with the journal", "path", path)
		}
		return err
	}

	report := s.RunReport()
	printFinal(cmd.OutOrStdout(), s.ID(), final, report, targetFlows)

	if cfg.Archive.URI == "" {
		return nil
	}

	store, err := openStore(ctx, cfg.Archive.URI)
	if err != nil {
		return err
	}
	name, err := odorsearch.ArchiveReport(ctx, store, report, cfg.Archive.Compression)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "report:   %s\n", name)

	if cfg.Archive.IndexTable != "" {
		index, err := openRunIndex(ctx, cfg.Archive.IndexTable)
		if err != nil {
			return err
		}
		entry, err := index.Commit(ctx, cfg.Archive.Experiment, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "index:    %s v%d\n", entry.Experiment, entry.Version)
	}

	return nil
}

func printFinal(w io.Writer, runID string, final odorsearch.Recipe, report odorsearch.RunReport, targetFlows []float64) {
	fmt.Fprintf(w, "run:      %s\n", runID)
	fmt.Fprintf(w, "trials:   %d\n", len(report.Trials))
	if report.Best != nil {
		fmt.Fprintf(w, "distance: %.4f (trial %d)\n", report.Best.Distance, report.Best.ID)
	}
	for i, flow := range final.Flows {
		fmt.Fprintf(w, "  %-12s %8.3f  (target %.3f)\n", flow.Channel, flow.Value, targetFlows[i])
	}
}
