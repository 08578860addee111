package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/appengine-ltd/gift-exchange/internal/harness"
	"github.com/appengine-ltd/gift-exchange/internal/pairing"
	"github.com/appengine-ltd/gift-exchange/internal/roster"
)

func newPairCmd(a *app) *cobra.Command {
	var (
		dataset string
		seed    string
		out     string
	)
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Draw the pairing for a single seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataset == "" {
				dataset = a.cfg.Dataset
			}
			ds, err := roster.Read(dataset)
			if err != nil {
				return withExit(exitInvalidInput, err)
			}

			opts := a.cfg.HarnessOptions()
			opts.Logger = a.logger
			e, err := harness.Single(ds, seed, opts)
			if errors.Is(err, pairing.ErrInvalidInput) {
				return withExit(exitInvalidInput, err)
			}
			if err != nil {
				return withExit(exitInternal, err)
			}
			if e.Failed() {
				return withExit(exitSeedFailures, fmt.Errorf("seed %s: %w", seed, e.Err))
			}
			a.logger.Debug("paired seed", zap.String("seed", seed), zap.Int("attempts", e.Assignment.Attempts))
			fmt.Fprintln(cmd.OutOrStdout(), e.Text())

			if out != "" {
				data, err := json.MarshalIndent(e.Assignment, "", "  ")
				if err != nil {
					return withExit(exitInternal, err)
				}
				if err := os.WriteFile(out, data, 0o600); err != nil {
					return withExit(exitInternal, fmt.Errorf("write assignment: %w", err))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "participant file (JSON or YAML)")
	cmd.Flags().StringVarP(&seed, "seed", "s", "", "seed string")
	cmd.Flags().StringVarP(&out, "out", "o", "", "also write the assignment as JSON")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}
