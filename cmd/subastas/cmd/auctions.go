package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/auction-browser/internal/api/client"
	"github.com/donaldgifford/auction-browser/internal/view"
	"github.com/donaldgifford/auction-browser/pkg/filter"
)

func (a *app) auctionsCmd() *cobra.Command {
	auctionsRoot := &cobra.Command{
		Use:   "auctions",
		Short: "Browse auctions",
		Long:  "List auctions by tab and inspect a single auction with its lots.",
	}

	auctionsRoot.AddCommand(
		a.auctionsListCmd(),
		a.auctionsGetCmd(),
	)

	return auctionsRoot
}

func (a *app) auctionsListCmd() *cobra.Command {
	var (
		tagName string
		state   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List auctions, optionally filtered by tab",
		Example: `  # Every auction
  subastas auctions list

  # Upcoming auctions held in Jalisco
  subastas auctions list --filter upcoming --state Jalisco

  # Negotiated sales as JSON
  subastas auctions list --filter negotiated --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tag, err := filter.ParseTag(tagName)
			if err != nil {
				return err
			}
			c, err := a.apiClient(cmd.Context())
			if err != nil {
				return err
			}

			listing := view.NewListing(c, a.log)
			defer listing.Close()
			if err := listing.Load(cmd.Context()); err != nil {
				return err
			}
			snap := listing.SetTag(tag)
			auctions := snap.Auctions
			if state != "" {
				auctions = filter.Where(auctions, filter.ByState(state))
			}

			if a.jsonOutput() {
				return outputJSON(a.out, auctions)
			}
			if err := printTabs(a.out, snap.Tag, snap.Counts); err != nil {
				return err
			}
			if len(auctions) == 0 {
				_, err := fmt.Fprintln(a.out, "No auctions found.")
				return err
			}
			return printAuctionsTable(a.out, auctions)
		},
	}
	cmd.Flags().StringVar(&tagName, "filter", "all", "tab filter (all, upcoming, ended, negotiated)")
	cmd.Flags().StringVar(&state, "state", "", "only auctions held in this state")

	return cmd
}

func (a *app) auctionsGetCmd() *cobra.Command {
	var where []string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an auction and its lots",
		Example: `  subastas auctions get 6650f1c2
  subastas auctions get 6650f1c2 --where category=vehiculos --where condition=bueno
  subastas auctions get 6650f1c2 --where max_price=250000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := filter.ParseItemCriteria(where)
			if err != nil {
				return err
			}
			c, err := a.apiClient(cmd.Context())
			if err != nil {
				return err
			}

			detail := view.NewAuctionDetail(c, a.log)
			defer detail.Close()
			if err := detail.Load(cmd.Context(), args[0]); err != nil {
				if apiclient.IsNotFound(err) {
					return fmt.Errorf("auction %s not found", args[0])
				}
				return err
			}
			snap := detail.Snapshot()
			items := filter.Items(snap.Items, &criteria)

			if a.jsonOutput() {
				return outputJSON(a.out, struct {
					Auction any `json:"auction"`
					Items   any `json:"items"`
				}{snap.Auction, items})
			}
			if err := printAuctionDetail(a.out, snap.Auction); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(a.out, "\nLots (%d of %s)\n\n", len(items), snap.ItemCountLabel()); err != nil {
				return err
			}
			return printItemsTable(a.out, items)
		},
	}
	cmd.Flags().StringArrayVar(&where, "where", nil,
		"item filter as key=value (category, condition, min_price, max_price); repeatable")

	return cmd
}
