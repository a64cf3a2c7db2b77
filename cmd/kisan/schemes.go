package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kisan/app"
	"kisan/pkg/scheme/service"
)

func schemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "Browse the government scheme catalog",
	}

	var f service.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List schemes matching a query, category and state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.NewSchemes()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCATEGORY\tSTATE\tSTATUS\tDEADLINE")
			for _, s := range svc.Filter(f) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Name, s.Category, s.State, s.Status, s.Deadline)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&f.Query, "q", "", "name or description contains")
	list.Flags().StringVar(&f.Category, "category", "", "exact category, or all")
	list.Flags().StringVar(&f.State, "state", "", "state contains")

	opts := &cobra.Command{
		Use:   "options",
		Short: "Print the categories and states used by the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.NewSchemes()
			if err != nil {
				return err
			}
			o := svc.Options()
			fmt.Fprintf(cmd.OutOrStdout(), "categories: %s\nstates: %s\n",
				strings.Join(o.Categories, ", "), strings.Join(o.States, ", "))
			return nil
		},
	}

	cmd.AddCommand(list, opts)
	return cmd
}
