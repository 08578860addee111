package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/gift-exchange/internal/harness"
	"github.com/appengine-ltd/gift-exchange/internal/pairing"
	"github.com/appengine-ltd/gift-exchange/internal/roster"
)

var errSeedFailures = errors.New("some seeds failed")

func newVerifyCmd(a *app) *cobra.Command {
	var (
		dataset     string
		report      string
		prefix      string
		seeds       int
		workers     int
		maxAttempts int
		strict      bool
		dispersion  bool
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Pair every seed in a range and report failures",
		Long: `Runs the pairing once per seed (seed_0, seed_1, ...) against the participant
file, writes every pairing to the report file and prints a pass/fail summary.
Exits 1 when any seed failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("dataset") {
				cfg.Dataset = dataset
			}
			if flags.Changed("report") {
				cfg.Report = report
			}
			if flags.Changed("prefix") {
				cfg.SeedPrefix = prefix
			}
			if flags.Changed("seeds") {
				cfg.Seeds = seeds
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("max-attempts") {
				cfg.MaxAttempts = maxAttempts
			}
			if flags.Changed("strict") {
				cfg.StrictExclusions = strict
			}
			if err := cfg.Validate(); err != nil {
				return withExit(exitInvalidInput, err)
			}

			ds, err := roster.Read(cfg.Dataset)
			if err != nil {
				return withExit(exitInvalidInput, err)
			}

			opts := cfg.HarnessOptions()
			opts.Logger = a.logger
			rep, err := harness.Run(cmd.Context(), ds, opts)
			if errors.Is(err, pairing.ErrInvalidInput) {
				return withExit(exitInvalidInput, err)
			}
			if err != nil {
				return withExit(exitInternal, err)
			}
			if err := rep.WriteFile(cfg.Report); err != nil {
				return withExit(exitInternal, err)
			}

			out := cmd.OutOrStdout()
			if err := harness.Summary(out, rep, cfg.Report); err != nil {
				return withExit(exitInternal, err)
			}
			if dispersion {
				d, err := harness.Dispersion(rep)
				if err != nil {
					a.logger.Sugar().Warnf("dispersion unavailable: %v", err)
				} else if err := d.Write(out); err != nil {
					return withExit(exitInternal, err)
				}
			}
			if n := len(rep.Failures()); n > 0 {
				return withExit(exitSeedFailures, fmt.Errorf("%w: %d of %d", errSeedFailures, n, rep.Total()))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&dataset, "dataset", "d", "", "participant file (JSON or YAML)")
	f.StringVarP(&report, "report", "o", "", "report output path")
	f.StringVar(&prefix, "prefix", "", "seed name prefix")
	f.IntVarP(&seeds, "seeds", "n", 0, "number of seeds to test")
	f.IntVarP(&workers, "workers", "w", 0, "seeds evaluated in parallel")
	f.IntVar(&maxAttempts, "max-attempts", 0, "retry budget per seed")
	f.BoolVar(&strict, "strict", false, "fail when an exclusion names an unknown participant")
	f.BoolVar(&dispersion, "dispersion", false, "print receiver spread across seeds")
	return cmd
}
