package interview

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/recruita/adapter/cli"
	bookingQueries "github.com/felixgeelhaar/recruita/internal/booking/application/queries"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/queries"
)

var showCmd = &cobra.Command{
	Use:   "show [interview-id]",
	Short: "Show an interview",
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

		dto, err := app.GetInterviewHandler.Handle(cmd.Context(), queries.GetInterviewQuery{InterviewID: interviewID})
		if err != nil {
			return err
		}

		cli.PrintInterview(cmd.OutOrStdout(), *dto)
		return nil
	},
}

var (
	listApplication string
	listStatus      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List an application's interviews",
	Long: `List the interviews of one application, oldest first.

Examples:
  recruita interview list --application <id>
  recruita interview list --application <id> --status scheduled`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		applicationID, err := cli.ParseID("application id", listApplication)
		if err != nil {
			return err
		}

		dtos, err := app.ListInterviewsForApplicationHandler.Handle(cmd.Context(), queries.ListInterviewsForApplicationQuery{
			ApplicationID: applicationID,
			Status:        listStatus,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(dtos) == 0 {
			fmt.Fprintln(out, "No interviews found.")
			return nil
		}
		for _, i := range dtos {
			fmt.Fprintf(out, "%s  %-11s  %s  %s\n",
				i.ID, i.Status, i.ScheduledAt.Format("2006-01-02 15:04"), i.Title)
		}
		return nil
	},
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings [interview-id]",
	Short: "List the bookings held for an interview",
	Long: `List every room and asset booking made for an interview, released
bookings included.`,
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

		bookings, err := app.ListBookingsForInterviewHandler.Handle(cmd.Context(),
			bookingQueries.ListBookingsForInterviewQuery{InterviewID: interviewID})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(bookings) == 0 {
			fmt.Fprintln(out, "No bookings.")
			return nil
		}
		for _, b := range bookings {
			fmt.Fprintf(out, "%s  %-5s %s  %s - %s  %s\n",
				b.ID, b.ResourceKind, b.ResourceID,
				b.StartAt.Format(time.RFC3339), b.EndAt.Format("15:04"), b.Status)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listApplication, "application", "", "application id")
	listCmd.Flags().StringVar(&listStatus, "status", "", "only interviews in this status")
	_ = listCmd.MarkFlagRequired("application")
}
