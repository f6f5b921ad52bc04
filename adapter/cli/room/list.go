package room

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/recruita/adapter/cli"
	bookingQueries "github.com/felixgeelhaar/recruita/internal/booking/application/queries"
	"github.com/felixgeelhaar/recruita/internal/resources/application/commands"
	"github.com/felixgeelhaar/recruita/internal/resources/application/queries"
)

var (
	listMinCapacity int
	listAll         bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List rooms",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		rooms, err := app.ListRoomsHandler.Handle(cmd.Context(), queries.ListRoomsQuery{
			OrganizationID:  app.OrganizationID,
			MinCapacity:     listMinCapacity,
			IncludeInactive: listAll,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(rooms) == 0 {
			fmt.Fprintln(out, "No rooms found.")
			return nil
		}
		for _, r := range rooms {
			state := ""
			if !r.Active {
				state = " (inactive)"
			}
			fmt.Fprintf(out, "%s  %-20s  %3d seats  %s%s\n", r.ID, r.Name, r.Capacity, r.Location, state)
			if cli.Verbose() && len(r.Equipment) > 0 {
				fmt.Fprintf(out, "    equipment: %s\n", strings.Join(r.Equipment, ", "))
			}
		}
		return nil
	},
}

var reactivate bool

var deactivateCmd = &cobra.Command{
	Use:   "deactivate [room-id]",
	Short: "Take a room out of service",
	Long: `Take a room out of service. Existing bookings are kept, but the room is
no longer offered or bookable. Use --reactivate to bring it back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		roomID, err := cli.ParseID("room id", args[0])
		if err != nil {
			return err
		}

		if err := app.SetRoomActiveHandler.Handle(cmd.Context(), commands.SetRoomActiveCommand{
			OrganizationID: app.OrganizationID,
			RoomID:         roomID,
			Active:         reactivate,
		}); err != nil {
			return err
		}

		if reactivate {
			fmt.Fprintf(cmd.OutOrStdout(), "Reactivated room: %s\n", roomID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated room: %s\n", roomID)
		}
		return nil
	},
}

var (
	availableFrom     string
	availableDuration int
	availableCapacity int
)

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "Show which rooms are free for a time window",
	Long: `Show every active room with whether it is free over the window.

Examples:
  recruita room available --from 2024-06-10T10:00:00Z --duration 60 --capacity 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		start, err := cli.ParseTime("--from", availableFrom)
		if err != nil {
			return err
		}

		rows, err := app.ListAvailableRoomsHandler.Handle(cmd.Context(), bookingQueries.ListAvailableRoomsQuery{
			OrganizationID: app.OrganizationID,
			Start:          start,
			End:            start.Add(time.Duration(availableDuration) * time.Minute),
			MinCapacity:    availableCapacity,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "No rooms match.")
			return nil
		}
		for _, r := range rows {
			state := "free"
			if !r.Available {
				state = "booked"
			}
			fmt.Fprintf(out, "%s  %-20s  %3d seats  %s\n", r.ID, r.Name, r.Capacity, state)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listMinCapacity, "capacity", 0, "minimum number of seats")
	listCmd.Flags().BoolVar(&listAll, "all", false, "include inactive rooms")

	deactivateCmd.Flags().BoolVar(&reactivate, "reactivate", false, "bring the room back into service")

	availableCmd.Flags().StringVar(&availableFrom, "from", "", "window start (RFC 3339)")
	availableCmd.Flags().IntVar(&availableDuration, "duration", 60, "window length in minutes")
	availableCmd.Flags().IntVar(&availableCapacity, "capacity", 0, "minimum number of seats")
	_ = availableCmd.MarkFlagRequired("from")
}
