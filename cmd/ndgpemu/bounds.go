package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ndgpemu/ndgpemu/params"
)

func NewBoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bounds",
		Short: "Print the training range of every input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return outputJSON(cmd, map[string]any{
					"bounds":   params.Bounds(),
					"required": params.Required(),
				})
			}

			names := append([]string{params.H0rc, params.Z, params.A}, params.Required()...)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "param\tmin\tmax")
			for _, name := range names {
				b, err := params.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%g\t%g\n", name, b.Min, b.Max)
			}

			return w.Flush()
		},
	}
}
