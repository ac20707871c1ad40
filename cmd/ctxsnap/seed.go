package main

import (
	"fmt"
	"os"

	"github.com/rpggio/ctxsnap/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample snapshots for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			created, err := seed.Run(cmd.Context(), a.snapshots, a.logger)
			out := cmd.OutOrStdout()
			for _, snap := range created {
				fmt.Fprintf(out, "Created %s  %q\n", seed.ShortID(snap.ID), snap.Name)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Done.")
			return nil
		},
	}
}
