package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reoring/validations/i18n"
	"github.com/reoring/validations/predicate"
)

func (a *app) predicatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predicates",
		Short: "List registered predicates and their message templates",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			for _, name := range predicate.Default().Names() {
				fmt.Fprintf(tw, "%s?\t%s\n", name, i18n.T(name, nil))
			}
			return tw.Flush()
		},
	}
}
