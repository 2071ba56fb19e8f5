package main

import (
	"errors"
	"fmt"

	"github.com/rogerio-castellano/stocksync/internal/auth"
	"github.com/rogerio-castellano/stocksync/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
}

// newRootCommand serves the API when run without a subcommand.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "stocksync",
		Short:        "Inventory, supplier orders and low-stock alerts",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts.configFile)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default: stocksync.yaml in . or /etc/stocksync)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newTokenCommand(opts))
	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts.configFile)
		},
	}
}

// newTokenCommand mints a custom token that a client exchanges for a session
// at POST /session/token.
func newTokenCommand(opts *rootOptions) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a custom sign-in token for a subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return errors.New("--subject is required")
			}
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			token, err := auth.NewSigner(cfg.JWTSecret).GenerateCustomToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject the token signs in as")
	return cmd
}
