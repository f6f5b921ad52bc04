package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/recruita/internal/resources/application/queries"
)

// RegisterResources registers MCP resources that expose the resource catalog.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	srv.Resource("recruita://rooms").
		Name("Rooms").
		Description("Active rooms in the organization's catalog").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.ListRoomsHandler == nil {
				return nil, fmt.Errorf("room listing %w", errNoDatabase)
			}
			rooms, err := app.ListRoomsHandler.Handle(ctx, queries.ListRoomsQuery{OrganizationID: app.OrganizationID})
			if err != nil {
				return nil, err
			}
			return jsonContent(uri, rooms)
		})

	srv.Resource("recruita://assets").
		Name("Assets").
		Description("Operational assets in the organization's catalog").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.ListAssetsHandler == nil {
				return nil, fmt.Errorf("asset listing %w", errNoDatabase)
			}
			assets, err := app.ListAssetsHandler.Handle(ctx, queries.ListAssetsQuery{OrganizationID: app.OrganizationID})
			if err != nil {
				return nil, err
			}
			return jsonContent(uri, assets)
		})

	return nil
}

func jsonContent(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
