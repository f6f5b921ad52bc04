package interview

import "github.com/spf13/cobra"

// Cmd is the interview command group.
var Cmd = &cobra.Command{
	Use:   "interview",
	Short: "Schedule and manage interviews",
	Long: `Schedule interviews with optional room and equipment bookings,
move or cancel them, and record their outcome and feedback.`,
}

func init() {
	Cmd.AddCommand(scheduleCmd)
	Cmd.AddCommand(rescheduleCmd)
	Cmd.AddCommand(cancelCmd)
	Cmd.AddCommand(completeCmd)
	Cmd.AddCommand(noShowCmd)
	Cmd.AddCommand(feedbackCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(bookingsCmd)
}
