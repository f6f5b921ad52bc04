package interview

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/recruita/adapter/cli"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/queries"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/security"
)

var (
	scheduleApplication  string
	scheduleType         string
	scheduleAt           string
	scheduleDuration     int
	scheduleInterviewers []string
	scheduleLocation     string
	scheduleMeetingURL   string
	scheduleRoom         string
	scheduleAssets       []string
	scheduleFromFile     string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [title]",
	Short: "Schedule an interview",
	Long: `Schedule an interview for an application. In-person interviews can
book a room and equipment; a booking that fails leaves the interview
scheduled and is reported.

Examples:
  recruita interview schedule "Tech Interview" --application <id> \
    --type in_person --at 2024-06-10T10:00:00Z --duration 60 \
    --interviewer <id> --room <room-id> --asset <asset-id>
  recruita interview schedule --from-file interview.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		command, err := buildScheduleCommand(app, args)
		if err != nil {
			return err
		}

		result, err := app.ScheduleInterviewHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Scheduled interview: %s\n", result.Interview.ID())
		if cli.Verbose() {
			cli.PrintInterview(out, queries.ToInterviewDTO(result.Interview))
		}
		cli.PrintBookingOutcome(out, result.Outcome, result.Failures)
		return nil
	},
}

func buildScheduleCommand(app *cli.App, args []string) (commands.ScheduleInterviewCommand, error) {
	var command commands.ScheduleInterviewCommand
	if scheduleFromFile != "" {
		if err := security.ReadJSONFile(scheduleFromFile, &command); err != nil {
			return command, err
		}
	} else {
		if len(args) == 0 {
			return command, fmt.Errorf("a title is required unless --from-file is given")
		}
		applicationID, err := cli.ParseID("application id", scheduleApplication)
		if err != nil {
			return command, err
		}
		interviewers, err := cli.ParseIDs("interviewer id", scheduleInterviewers)
		if err != nil {
			return command, err
		}
		roomID, err := cli.ParseOptionalID("room id", scheduleRoom)
		if err != nil {
			return command, err
		}
		assetIDs, err := cli.ParseIDs("asset id", scheduleAssets)
		if err != nil {
			return command, err
		}

		command = commands.ScheduleInterviewCommand{
			ApplicationID:   applicationID,
			Title:           args[0],
			Type:            scheduleType,
			InterviewerIDs:  interviewers,
			ScheduledAt:     scheduleAt,
			DurationMinutes: scheduleDuration,
			Location:        scheduleLocation,
			MeetingURL:      scheduleMeetingURL,
			RoomID:          roomID,
			AssetIDs:        assetIDs,
		}
	}

	if command.OrganizationID == uuid.Nil {
		command.OrganizationID = app.OrganizationID
	}
	if command.ActorID == uuid.Nil {
		command.ActorID = app.ActorID
	}
	return command, nil
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleApplication, "application", "", "application id")
	scheduleCmd.Flags().StringVar(&scheduleType, "type", "video", "interview type (phone, video, in_person, technical, panel)")
	scheduleCmd.Flags().StringVar(&scheduleAt, "at", "", "start time (RFC 3339)")
	scheduleCmd.Flags().IntVar(&scheduleDuration, "duration", 60, "duration in minutes")
	scheduleCmd.Flags().StringSliceVar(&scheduleInterviewers, "interviewer", nil, "interviewer id (repeatable)")
	scheduleCmd.Flags().StringVar(&scheduleLocation, "location", "", "where the interview takes place")
	scheduleCmd.Flags().StringVar(&scheduleMeetingURL, "meeting-url", "", "video call link")
	scheduleCmd.Flags().StringVar(&scheduleRoom, "room", "", "room id to book")
	scheduleCmd.Flags().StringSliceVar(&scheduleAssets, "asset", nil, "asset id to book (repeatable)")
	scheduleCmd.Flags().StringVar(&scheduleFromFile, "from-file", "", "read the interview from a JSON file")
}
