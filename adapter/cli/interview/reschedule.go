package interview

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/recruita/adapter/cli"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
)

var (
	rescheduleAt     string
	rescheduleReason string
	rescheduleRoom   string
	rescheduleAssets []string
)

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule [interview-id]",
	Short: "Move an interview to a new start time",
	Long: `Move an interview. Its current bookings are released first; the
resources given here are then booked for the new slot. Resources not
named again are not rebooked.

Examples:
  recruita interview reschedule <id> --at 2024-06-10T14:00:00Z --room <room-id>
  recruita interview reschedule <id> --at 2024-06-11T09:00:00Z --reason "panel unavailable"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		interviewID, err := cli.ParseID("interview id", args[0])
		if err != nil {
			return err
		}
		roomID, err := cli.ParseOptionalID("room id", rescheduleRoom)
		if err != nil {
			return err
		}
		assetIDs, err := cli.ParseIDs("asset id", rescheduleAssets)
		if err != nil {
			return err
		}

		result, err := app.RescheduleInterviewHandler.Handle(cmd.Context(), commands.RescheduleInterviewCommand{
			InterviewID: interviewID,
			NewStart:    rescheduleAt,
			Reason:      rescheduleReason,
			RoomID:      roomID,
			AssetIDs:    assetIDs,
			ActorID:     app.ActorID,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Rescheduled interview %s to %s\n",
			result.Interview.ID(), result.Interview.ScheduledAt().Format("2006-01-02 15:04 MST"))
		cli.PrintBookingOutcome(out, result.Outcome, result.Failures)
		return nil
	},
}

func init() {
	rescheduleCmd.Flags().StringVar(&rescheduleAt, "at", "", "new start time (RFC 3339)")
	rescheduleCmd.Flags().StringVar(&rescheduleReason, "reason", "", "why the interview moved")
	rescheduleCmd.Flags().StringVar(&rescheduleRoom, "room", "", "room id to book for the new slot")
	rescheduleCmd.Flags().StringSliceVar(&rescheduleAssets, "asset", nil, "asset id to book for the new slot (repeatable)")
	_ = rescheduleCmd.MarkFlagRequired("at")
}
