package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/appengine-ltd/gift-exchange/internal/credentials"
)

func newHashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash [text]",
		Short: "Print the SHA-256 digest of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Debug("hashing text", zap.Int("bytes", len(args[0])))
			fmt.Fprintln(cmd.OutOrStdout(), credentials.Hash(args[0]))
			return nil
		},
	}
}

func newHashPasswordsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-passwords passwords.json participants.json [template.json]",
		Short: "Build a participant file with hashed passwords",
		Long: `Reads [{"name": ..., "password": ...}] and writes a participant file with
passwordHash fields. Keys from the optional template are kept, except
participants, which is replaced.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			template := ""
			if len(args) == 3 {
				template = args[2]
			}
			n, err := credentials.BuildFile(args[0], args[1], template, a.logger)
			if err != nil {
				return withExit(exitInvalidInput, err)
			}
			a.logger.Info("wrote participant file", zap.String("path", args[1]), zap.Int("participants", n))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s (%d participants).\n", args[1], n)
			fmt.Fprintf(out, "Delete %s or keep it out of source control.\n", args[0])
			return nil
		},
	}
}
