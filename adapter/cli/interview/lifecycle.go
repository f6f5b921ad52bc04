package interview

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/recruita/adapter/cli"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
)

var cancelReason string

var cancelCmd = &cobra.Command{
	Use:   "cancel [interview-id]",
	Short: "Cancel an interview and release its bookings",
	Long: `Cancel an interview. Every room and asset booked for it is released.
Cancelling an interview twice is harmless.

Examples:
  recruita interview cancel <id> --reason "position filled"`,
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

		interview, err := app.CancelInterviewHandler.Handle(cmd.Context(), commands.CancelInterviewCommand{
			InterviewID: interviewID,
			Reason:      cancelReason,
			ActorID:     app.ActorID,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Cancelled interview: %s\n", interview.ID())
		return nil
	},
}

var (
	completeRating int
	completeNotes  string
)

var completeCmd = &cobra.Command{
	Use:   "complete [interview-id]",
	Short: "Mark an interview as completed",
	Long: `Mark an interview as held. A rating from 1 to 5 is optional.

Examples:
  recruita interview complete <id> --rating 4 --notes "strong system design"`,
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

		command := commands.CompleteInterviewCommand{
			InterviewID: interviewID,
			Notes:       completeNotes,
			ActorID:     app.ActorID,
		}
		if cmd.Flags().Changed("rating") {
			rating := completeRating
			command.Rating = &rating
		}

		interview, err := app.CompleteInterviewHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Completed interview: %s\n", interview.ID())
		return nil
	},
}

var noShowCmd = &cobra.Command{
	Use:   "no-show [interview-id]",
	Short: "Record that the candidate did not attend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		interviewID, err := cli.ParseID("interview id", args[0])
		if err != nil {
			return err
		}

		interview, err := app.RecordNoShowHandler.Handle(cmd.Context(), commands.RecordNoShowCommand{
			InterviewID: interviewID,
			ActorID:     app.ActorID,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Recorded no-show for interview: %s\n", interview.ID())
		return nil
	},
}

func init() {
	cancelCmd.Flags().StringVar(&cancelReason, "reason", "", "why the interview was cancelled")

	completeCmd.Flags().IntVar(&completeRating, "rating", 0, "overall rating (1-5)")
	completeCmd.Flags().StringVar(&completeNotes, "notes", "", "interview notes")
}
