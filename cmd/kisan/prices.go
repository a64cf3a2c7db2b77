package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kisan/app"
	"kisan/database"
	"kisan/entities"
	"kisan/pkg/feed"
	"kisan/pkg/market/service"
)

func pricesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Inspect and import market prices",
	}

	var q, location string
	list := &cobra.Command{
		Use:   "list",
		Short: "Search prices by crop or market and location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openMarket(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := svc.Search(cmd.Context(), q, location)
			if err != nil {
				return err
			}
			return writePrices(cmd.OutOrStdout(), rows)
		},
	}
	list.Flags().StringVar(&q, "q", "", "crop or market contains")
	list.Flags().StringVar(&location, "location", "", "location contains")

	imp := &cobra.Command{
		Use:   "import <file|url>",
		Short: "Import a CSV, XLSX or HTML price sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openMarket(cmd.Context())
			if err != nil {
				return err
			}
			src := args[0]
			var rep *service.ImportReport
			if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
				rep, err = svc.ImportURL(cmd.Context(), src)
			} else {
				var data []byte
				if data, err = os.ReadFile(src); err != nil {
					return err
				}
				rep, err = svc.Import(cmd.Context(), service.Source{Name: filepath.Base(src), Data: data})
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows, skipped %d\n", rep.Imported, rep.Skipped)
			return nil
		},
	}

	cmd.AddCommand(list, imp)
	return cmd
}

func openMarket(ctx context.Context) (service.MarketService, error) {
	cfg, log, err := setup()
	if err != nil {
		return nil, err
	}
	db, err := database.OpenMigrated(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	svc := app.NewMarket(cfg, db, feed.NewHub(log), log)
	if cfg.SeedPrices {
		if _, err := svc.Seed(ctx); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

func writePrices(out io.Writer, rows []entities.MarketPrice) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CROP\tMARKET\tLOCATION\tPRICE\tCHANGE\tTREND\tUPDATED")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t₹%s %s\t%+.1f%%\t%s\t%s\n",
			r.Crop, r.Market, r.Location, r.Price.String(), r.Unit, r.Change, r.Trend,
			r.LastUpdated.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
