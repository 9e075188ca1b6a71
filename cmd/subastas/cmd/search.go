package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/auction-browser/internal/api/client"
	"github.com/donaldgifford/auction-browser/internal/view"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

func (a *app) searchCmd() *cobra.Command {
	var (
		params   apiclient.SearchParams
		status   string
		minPrice float64
		maxPrice float64
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search auctions on the backend",
		Long: "Sends the given filters to the backend search endpoint. Only flags\n" +
			"you set are sent; the backend decides what the price bounds apply to.",
		Example: `  subastas search --state Jalisco
  subastas search --category vehiculos --status active
  subastas search --category maquinaria --min-price 10000 --max-price 500000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if status != "" {
				s, err := domain.ParseStatus(status)
				if err != nil {
					return err
				}
				params.Status = s
			}
			if cmd.Flags().Changed("min-price") {
				params.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				params.MaxPrice = &maxPrice
			}

			c, err := a.apiClient(cmd.Context())
			if err != nil {
				return err
			}

			search := view.NewSearch(c, a.log)
			defer search.Close()
			if err := search.Run(cmd.Context(), &params); err != nil {
				return err
			}
			snap := search.Snapshot()

			if a.jsonOutput() {
				return outputJSON(a.out, snap.Results)
			}
			if _, err := fmt.Fprintf(a.out, "%s\n\n", snap.CountLabel); err != nil {
				return err
			}
			if len(snap.Results) == 0 {
				return nil
			}
			return printAuctionsTable(a.out, snap.Results)
		},
	}
	cmd.Flags().StringVar(&params.Category, "category", "", "item category")
	cmd.Flags().StringVar(&params.State, "state", "", "state where the auction is held")
	cmd.Flags().StringVar(&status, "status", "", "auction status (upcoming, active, ended)")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "lower price bound")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "upper price bound")

	return cmd
}
