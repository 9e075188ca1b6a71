package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/auction-browser/internal/api/client"
	"github.com/donaldgifford/auction-browser/internal/view"
)

func (a *app) itemsCmd() *cobra.Command {
	itemsRoot := &cobra.Command{
		Use:   "items",
		Short: "Inspect auction lots",
	}

	itemsRoot.AddCommand(&cobra.Command{
		Use:     "get <id>",
		Short:   "Show lot details",
		Example: `  subastas items get 6650f1c2-03`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.apiClient(cmd.Context())
			if err != nil {
				return err
			}

			detail := view.NewItemDetail(c, a.log)
			defer detail.Close()
			if err := detail.Load(cmd.Context(), args[0]); err != nil {
				if apiclient.IsNotFound(err) {
					return fmt.Errorf("item %s not found", args[0])
				}
				return err
			}
			item := detail.Snapshot().Item

			if a.jsonOutput() {
				return outputJSON(a.out, item)
			}
			return printItemDetail(a.out, item)
		},
	})

	return itemsRoot
}
