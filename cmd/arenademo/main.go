package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/regionarena/internal/config"
	"github.com/pavanmanishd/regionarena/internal/logger"
)

func newRootCmd() *cobra.Command {
	d := &demo{}

	rootCmd := &cobra.Command{
		Use:           "arenademo",
		Short:         "Walk through the regionarena allocator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			lc := cfg.Logger()
			lc.Output = cmd.ErrOrStderr()
			d.cfg = cfg
			d.out = cmd.OutOrStdout()
			d.log = logger.Init(lc)
			d.log.Debug("configuration loaded",
				"capacity", cfg.Capacity, "source", cfg.Source, "budget", cfg.Budget)
			return nil
		},
	}
	config.RegisterFlags(rootCmd.PersistentFlags())

	for _, s := range d.steps() {
		rootCmd.AddCommand(&cobra.Command{
			Use:   s.name,
			Short: s.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return s.run()
			},
		})
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Run every demo in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.all()
		},
	})

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
