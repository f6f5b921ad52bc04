package room

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/recruita/adapter/cli"
	"github.com/felixgeelhaar/recruita/internal/resources/application/commands"
)

var (
	addCapacity  int
	addLocation  string
	addEquipment []string
	addVideo     bool
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Register a room",
	Long: `Register a room in the organization's catalog.

Examples:
  recruita room add "Boardroom" --capacity 10 --location "HQ 3rd floor" --video
  recruita room add "Focus 1" --capacity 2 --equipment whiteboard`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.RegisterRoomHandler.Handle(cmd.Context(), commands.RegisterRoomCommand{
			OrganizationID:     app.OrganizationID,
			Name:               args[0],
			Capacity:           addCapacity,
			Location:           addLocation,
			Equipment:          addEquipment,
			HasVideoConference: addVideo,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Registered room: %s\n", result.RoomID)
		return nil
	},
}

func init() {
	addCmd.Flags().IntVar(&addCapacity, "capacity", 1, "number of seats")
	addCmd.Flags().StringVar(&addLocation, "location", "", "where the room is")
	addCmd.Flags().StringSliceVar(&addEquipment, "equipment", nil, "fixed equipment (repeatable)")
	addCmd.Flags().BoolVar(&addVideo, "video", false, "room has video conferencing")
}
