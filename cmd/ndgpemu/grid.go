package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ndgpemu/ndgpemu/artifact"
	"github.com/ndgpemu/ndgpemu/format"
)

func NewGridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "Print the native wavenumber grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			files := e.cfg.Artifacts.Files
			grid, err := artifact.ReadKind(filepath.Join(e.cfg.Artifacts.Dir, files.Grid), format.KindGrid)
			if err != nil {
				return err
			}
			k, err := artifact.BuildVector(grid, format.KindGrid)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return outputJSON(cmd, map[string]any{"k": k})
			}
			for _, v := range k {
				fmt.Fprintf(cmd.OutOrStdout(), "%g\n", v)
			}

			return nil
		},
	}
}
