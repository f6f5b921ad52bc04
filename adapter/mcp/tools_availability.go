package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/recruita/internal/booking/application/queries"
)

type roomAvailabilityInput struct {
	Start           string `json:"start" jsonschema:"required"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	MinCapacity     int    `json:"min_capacity,omitempty"`
}

type assetAvailabilityInput struct {
	Start           string `json:"start" jsonschema:"required"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Category        string `json:"category,omitempty"`
}

func registerAvailabilityTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("room.availability").
		Description("List active rooms and whether each is free for a window (default 60 minutes)").
		Handler(func(ctx context.Context, input roomAvailabilityInput) ([]queries.RoomAvailabilityDTO, error) {
			if app == nil || app.ListAvailableRoomsHandler == nil {
				return nil, fmt.Errorf("room availability %w", errNoDatabase)
			}
			start, end, err := parseWindow(input.Start, input.DurationMinutes)
			if err != nil {
				return nil, err
			}
			return app.ListAvailableRoomsHandler.Handle(ctx, queries.ListAvailableRoomsQuery{
				OrganizationID: app.OrganizationID,
				Start:          start,
				End:            end,
				MinCapacity:    input.MinCapacity,
			})
		})

	srv.Tool("asset.availability").
		Description("List operational assets and whether each is free for a window (default 60 minutes)").
		Handler(func(ctx context.Context, input assetAvailabilityInput) ([]queries.AssetAvailabilityDTO, error) {
			if app == nil || app.ListAvailableAssetsHandler == nil {
				return nil, fmt.Errorf("asset availability %w", errNoDatabase)
			}
			start, end, err := parseWindow(input.Start, input.DurationMinutes)
			if err != nil {
				return nil, err
			}
			return app.ListAvailableAssetsHandler.Handle(ctx, queries.ListAvailableAssetsQuery{
				OrganizationID: app.OrganizationID,
				Start:          start,
				End:            end,
				Category:       input.Category,
			})
		})

	return nil
}
