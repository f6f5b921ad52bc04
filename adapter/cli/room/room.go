package room

import "github.com/spf13/cobra"

// Cmd is the room command group.
var Cmd = &cobra.Command{
	Use:   "room",
	Short: "Manage bookable rooms",
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deactivateCmd)
	Cmd.AddCommand(availableCmd)
}
