package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common scheduling workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("schedule_onsite").
		Description("Guide for scheduling an in-person interview with a room and equipment.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Onsite Interview Scheduling",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me schedule an in-person interview. Please:

1. Ask for the application id, the interviewers, the start time and the duration
2. Check which rooms are free using the room.availability tool
3. Check which equipment is free using the asset.availability tool
4. Schedule the interview with interview.schedule, passing the chosen room_id and asset_ids

If the result lists failures, the interview is still scheduled. Explain
which resources were not booked and offer to pick alternatives with
interview.reschedule.`,
						},
					},
				},
			}, nil
		})

	srv.Prompt("collect_feedback").
		Description("Walk an interviewer through submitting structured feedback.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Interview Feedback",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me submit feedback for an interview. Look it up with interview.get,
then ask me for an overall rating from 1 to 5, a recommendation
(strong_hire, hire, no_hire or strong_no_hire), any section scores and
comments. Submit them with interview.feedback.`,
						},
					},
				},
			}, nil
		})

	return nil
}
