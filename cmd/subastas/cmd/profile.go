package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/auction-browser/internal/view"
)

const notLoggedIn = "Not logged in. Run `subastas login` first."

func (a *app) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in user's profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.apiClient(cmd.Context())
			if err != nil {
				return err
			}

			profile := view.NewProfile(c, a.log)
			defer profile.Close()
			if err := profile.Load(cmd.Context()); err != nil {
				return err
			}
			snap := profile.Snapshot()

			if snap.State == view.StateLoggedOut {
				if a.jsonOutput() {
					return outputJSON(a.out, nil)
				}
				_, err := fmt.Fprintln(a.out, notLoggedIn)
				return err
			}
			if a.jsonOutput() {
				return outputJSON(a.out, snap.User)
			}
			return printUser(a.out, snap.User)
		},
	}
}

func (a *app) myAuctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "my-auctions",
		Short: "List the auctions you are registered for",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.apiClient(cmd.Context())
			if err != nil {
				return err
			}

			mine := view.NewMyAuctions(c, a.log)
			defer mine.Close()
			if err := mine.Load(cmd.Context()); err != nil {
				return err
			}
			snap := mine.Snapshot()

			if snap.State == view.StateLoggedOut {
				if a.jsonOutput() {
					return outputJSON(a.out, []any{})
				}
				_, err := fmt.Fprintln(a.out, notLoggedIn)
				return err
			}
			if a.jsonOutput() {
				return outputJSON(a.out, snap.Auctions)
			}
			if len(snap.Auctions) == 0 {
				_, err := fmt.Fprintln(a.out, "You are not registered for any auction.")
				return err
			}
			return printAuctionsTable(a.out, snap.Auctions)
		},
	}
}
