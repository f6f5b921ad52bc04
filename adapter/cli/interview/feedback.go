package interview

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/recruita/adapter/cli"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
)

var (
	feedbackInterviewer    string
	feedbackRating         int
	feedbackRecommendation string
	feedbackScores         map[string]int
	feedbackComments       string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [interview-id]",
	Short: "Submit an interviewer's feedback",
	Long: `Submit one interviewer's assessment. Each interviewer may submit once.
Depending on the completion policy, the interview is completed by the
first submission or once every assigned interviewer has submitted.

Recommendations: strong_hire, hire, no_hire, strong_no_hire

Examples:
  recruita interview feedback <id> --interviewer <id> --rating 4 \
    --recommendation hire --score coding=4 --score communication=5`,
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
		interviewerID, err := cli.ParseID("interviewer id", feedbackInterviewer)
		if err != nil {
			return err
		}

		result, err := app.AddFeedbackHandler.Handle(cmd.Context(), commands.AddFeedbackCommand{
			InterviewID:    interviewID,
			InterviewerID:  interviewerID,
			Rating:         feedbackRating,
			Recommendation: feedbackRecommendation,
			SectionScores:  feedbackScores,
			Comments:       feedbackComments,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Feedback recorded for interview: %s\n", result.Interview.ID())
		if result.Completed {
			fmt.Fprintln(out, "Interview completed.")
		}
		return nil
	},
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackInterviewer, "interviewer", "", "interviewer id")
	feedbackCmd.Flags().IntVar(&feedbackRating, "rating", 0, "overall rating (1-5)")
	feedbackCmd.Flags().StringVar(&feedbackRecommendation, "recommendation", "", "hiring recommendation")
	feedbackCmd.Flags().StringToIntVar(&feedbackScores, "score", nil, "section score as name=value (repeatable)")
	feedbackCmd.Flags().StringVar(&feedbackComments, "comments", "", "free-form comments")
	_ = feedbackCmd.MarkFlagRequired("interviewer")
	_ = feedbackCmd.MarkFlagRequired("recommendation")
}
