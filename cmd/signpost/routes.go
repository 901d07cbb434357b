package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the endpoints the web server would register",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := newRanger(cmd)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ENDPOINT\tMETHODS\tPATH")
			for _, ep := range rng.Endpoints() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", ep.Name, strings.Join(ep.Methods, ","), ep.Path)
			}

			return tw.Flush()
		},
	}
}
