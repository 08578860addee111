package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/appengine-ltd/gift-exchange/internal/config"
	"github.com/appengine-ltd/gift-exchange/internal/logging"
)

type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "giftswap",
		Short:         "Seeded gift exchange pairings",
		Long:          "giftswap draws reproducible giver → receiver pairings from a participant file and checks them across many seeds.",
		Version:       fmt.Sprintf("%s (%s) %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "config file (optional unless set explicitly)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newVerifyCmd(a),
		newPairCmd(a),
		newHashCmd(a),
		newHashPasswordsCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return withExit(exitInvalidInput, fmt.Errorf("load .env: %w", err))
	}
	optional := !cmd.Flags().Changed("config")
	cfg, err := config.Load(a.configPath, optional)
	if err != nil {
		return withExit(exitInvalidInput, err)
	}
	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return withExit(exitInvalidInput, err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}
