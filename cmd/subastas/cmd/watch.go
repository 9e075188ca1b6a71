package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/auction-browser/internal/view"
	"github.com/donaldgifford/auction-browser/pkg/filter"
)

func (a *app) watchCmd() *cobra.Command {
	var (
		tagName  string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the auction list on an interval",
		Long: "Prints the auction list, then reloads it every --interval until\n" +
			"interrupted. A failed reload keeps the previous list and marks it stale.",
		Example: `  subastas watch --filter upcoming --interval 30s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tag, err := filter.ParseTag(tagName)
			if err != nil {
				return err
			}
			if interval == 0 {
				interval = a.cfg.Refresh.Interval
			}
			c, err := a.apiClient(cmd.Context())
			if err != nil {
				return err
			}

			listing := view.NewListing(c, a.log)
			defer listing.Close()
			listing.SetTag(tag)

			updates := make(chan view.ListingSnapshot, 1)
			refresher, err := view.NewRefresher(listing, interval, func(s view.ListingSnapshot) {
				select {
				case updates <- s:
				default:
				}
			}, a.log)
			if err != nil {
				return err
			}

			if err := a.printWatch(refresher.RunNow(cmd.Context())); err != nil {
				return err
			}
			// Drain the snapshot RunNow queued; it was printed above.
			select {
			case <-updates:
			default:
			}

			refresher.Start()
			defer func() { <-refresher.Stop().Done() }()

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case snap := <-updates:
					if err := a.printWatch(snap); err != nil {
						return err
					}
				}
			}
		},
	}
	cmd.Flags().StringVar(&tagName, "filter", "all", "tab filter (all, upcoming, ended, negotiated)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "reload interval (default from config refresh.interval)")

	return cmd
}

func (a *app) printWatch(snap view.ListingSnapshot) error {
	if a.jsonOutput() {
		return outputJSON(a.out, snap.Auctions)
	}

	header := fmt.Sprintf("== %s", snap.LoadedAt.Format(time.DateTime))
	switch {
	case snap.State == view.StateError && snap.Stale:
		header += fmt.Sprintf(" (stale: %v)", snap.Err)
	case snap.State == view.StateError:
		header = fmt.Sprintf("== could not load auctions: %v", snap.Err)
	}
	if _, err := fmt.Fprintln(a.out, header); err != nil {
		return err
	}
	if err := printTabs(a.out, snap.Tag, snap.Counts); err != nil {
		return err
	}
	if len(snap.Auctions) == 0 {
		_, err := fmt.Fprintln(a.out, "No auctions found.")
		return err
	}
	return printAuctionsTable(a.out, snap.Auctions)
}
