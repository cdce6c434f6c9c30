package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"resume-generator/resume/templates"
)

func newTemplatesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List template variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tENGINE\tDESCRIPTION")
			for _, info := range templates.Default().List() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Engine, info.Description)
			}
			return w.Flush()
		},
	}
}
