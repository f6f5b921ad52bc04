package asset

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/recruita/adapter/cli"
	bookingQueries "github.com/felixgeelhaar/recruita/internal/booking/application/queries"
	"github.com/felixgeelhaar/recruita/internal/resources/application/commands"
	"github.com/felixgeelhaar/recruita/internal/resources/application/queries"
)

// Cmd is the asset command group.
var Cmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage bookable equipment",
}

var (
	addCategory string
	addLocation string
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Register an asset",
	Long: `Register a piece of equipment. New assets are operational.

Examples:
  recruita asset add "Loaner laptop 7" --category laptop --location "IT desk"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.RegisterAssetHandler.Handle(cmd.Context(), commands.RegisterAssetCommand{
			OrganizationID: app.OrganizationID,
			Name:           args[0],
			Category:       addCategory,
			Location:       addLocation,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Registered asset: %s\n", result.AssetID)
		return nil
	},
}

var (
	listCategory string
	listAll      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		assets, err := app.ListAssetsHandler.Handle(cmd.Context(), queries.ListAssetsQuery{
			OrganizationID:  app.OrganizationID,
			Category:        listCategory,
			IncludeInactive: listAll,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(assets) == 0 {
			fmt.Fprintln(out, "No assets found.")
			return nil
		}
		for _, a := range assets {
			fmt.Fprintf(out, "%s  %-20s  %-12s  %s\n", a.ID, a.Name, a.Category, a.Status)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [asset-id] [operational|maintenance|retired]",
	Short: "Change an asset's status",
	Long: `Change an asset's operational status. Only operational assets can be
booked; existing bookings are kept.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		assetID, err := cli.ParseID("asset id", args[0])
		if err != nil {
			return err
		}

		if err := app.SetAssetStatusHandler.Handle(cmd.Context(), commands.SetAssetStatusCommand{
			OrganizationID: app.OrganizationID,
			AssetID:        assetID,
			Status:         args[1],
		}); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Asset %s is now %s\n", assetID, args[1])
		return nil
	},
}

var (
	availableFrom     string
	availableDuration int
	availableCategory string
)

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "Show which assets are free for a time window",
	Long: `Show every operational asset with whether it is free over the window.

Examples:
  recruita asset available --from 2024-06-10T10:00:00Z --duration 60 --category laptop`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		start, err := cli.ParseTime("--from", availableFrom)
		if err != nil {
			return err
		}

		rows, err := app.ListAvailableAssetsHandler.Handle(cmd.Context(), bookingQueries.ListAvailableAssetsQuery{
			OrganizationID: app.OrganizationID,
			Start:          start,
			End:            start.Add(time.Duration(availableDuration) * time.Minute),
			Category:       availableCategory,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "No assets match.")
			return nil
		}
		for _, a := range rows {
			state := "free"
			if !a.Available {
				state = "booked"
			}
			fmt.Fprintf(out, "%s  %-20s  %-12s  %s\n", a.ID, a.Name, a.Category, state)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addCategory, "category", "", "kind of equipment, e.g. laptop")
	addCmd.Flags().StringVar(&addLocation, "location", "", "where the asset is kept")
	_ = addCmd.MarkFlagRequired("category")

	listCmd.Flags().StringVar(&listCategory, "category", "", "only assets in this category")
	listCmd.Flags().BoolVar(&listAll, "all", false, "include retired and maintenance assets")

	availableCmd.Flags().StringVar(&availableFrom, "from", "", "window start (RFC 3339)")
	availableCmd.Flags().IntVar(&availableDuration, "duration", 60, "window length in minutes")
	availableCmd.Flags().StringVar(&availableCategory, "category", "", "only assets in this category")
	_ = availableCmd.MarkFlagRequired("from")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(statusCmd)
	Cmd.AddCommand(availableCmd)
}
