// Package mcp exposes read-only build-publisher operations as Model
// Context Protocol tools served on stdio (`gbp mcp`).
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gbpcli/src/gbp"
)

// Server wires the MCP tool surface to the API client.
type Server struct {
	mcpServer *server.MCPServer
	client    *gbp.Client
}

// NewServer creates the MCP server and registers its tools.
func NewServer(client *gbp.Client) *Server {
	s := server.NewMCPServer(
		"gbp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{mcpServer: s, client: client}
	srv.registerTools()
	return srv
}

func (s *Server) registerTools() {
	machinesTool := mcp.NewTool("list_machines",
		mcp.WithDescription("List the machines tracked by the build publisher with their build counts."),
	)

	buildsTool := mcp.NewTool("list_builds",
		mcp.WithDescription("List all builds for a machine, oldest first, with keep/published flags and timestamps."),
		mcp.WithString("machine",
			mcp.Required(),
			mcp.Description("Machine name"),
		),
	)

	latestTool := mcp.NewTool("latest_build",
		mcp.WithDescription("Return the latest build number for a machine."),
		mcp.WithString("machine",
			mcp.Required(),
			mcp.Description("Machine name"),
		),
	)

	logsTool := mcp.NewTool("build_logs",
		mcp.WithDescription("Fetch the log text of a build."),
		mcp.WithString("machine",
			mcp.Required(),
			mcp.Description("Machine name"),
		),
		mcp.WithNumber("number",
			mcp.Required(),
			mcp.Description("Build number"),
		),
	)

	diffTool := mcp.NewTool("diff_builds",
		mcp.WithDescription("Diff two builds of a machine. Returns the changed items with ADDED/REMOVED/CHANGED statuses in server order."),
		mcp.WithString("machine",
			mcp.Required(),
			mcp.Description("Machine name"),
		),
		mcp.WithNumber("left",
			mcp.Required(),
			mcp.Description("Left (older) build number"),
		),
		mcp.WithNumber("right",
			mcp.Required(),
			mcp.Description("Right (newer) build number"),
		),
	)

	s.mcpServer.AddTool(machinesTool, s.handleListMachines)
	s.mcpServer.AddTool(buildsTool, s.handleListBuilds)
	s.mcpServer.AddTool(latestTool, s.handleLatestBuild)
	s.mcpServer.AddTool(logsTool, s.handleBuildLogs)
	s.mcpServer.AddTool(diffTool, s.handleDiffBuilds)
}

// Run serves the tools on stdio until the stream closes.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) handleListMachines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	machines, err := s.client.Machines(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list machines: %v", err)), nil
	}

	type machinePayload struct {
		Name   string `json:"name"`
		Builds int    `json:"builds"`
	}
	payload := make([]machinePayload, len(machines))
	for i, m := range machines {
		payload[i] = machinePayload{Name: m.Name, Builds: m.BuildCount}
	}
	return jsonResult(payload)
}

func (s *Server) handleListBuilds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	machine := request.GetString("machine", "")
	if machine == "" {
		return mcp.NewToolResultError("machine parameter is required"), nil
	}

	builds, err := s.client.Builds(ctx, machine)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list builds: %v", err)), nil
	}

	payload := make([]buildPayload, len(builds))
	for i, b := range builds {
		payload[i] = toBuildPayload(b)
	}
	return jsonResult(payload)
}

func (s *Server) handleLatestBuild(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	machine := request.GetString("machine", "")
	if machine == "" {
		return mcp.NewToolResultError("machine parameter is required"), nil
	}

	build, err := s.client.Latest(ctx, machine)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("latest build: %v", err)), nil
	}
	if build == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no builds for machine %q", machine)), nil
	}
	return jsonResult(toBuildPayload(*build))
}

func (s *Server) handleBuildLogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	machine := request.GetString("machine", "")
	if machine == "" {
		return mcp.NewToolResultError("machine parameter is required"), nil
	}
	number := request.GetInt("number", -1)
	if number < 0 {
		return mcp.NewToolResultError("number parameter is required"), nil
	}

	logs, found, err := s.client.Logs(ctx, gbp.Build{Machine: machine, Number: number})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build logs: %v", err)), nil
	}
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("build %s/%d not found", machine, number)), nil
	}
	return mcp.NewToolResultText(logs), nil
}

func (s *Server) handleDiffBuilds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	machine := request.GetString("machine", "")
	if machine == "" {
		return mcp.NewToolResultError("machine parameter is required"), nil
	}
	left := request.GetInt("left", -1)
	right := request.GetInt("right", -1)
	if left < 0 || right < 0 {
		return mcp.NewToolResultError("left and right parameters are required"), nil
	}

	leftBuild, rightBuild, changes, err := s.client.Diff(ctx, machine, left, right)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("diff builds: %v", err)), nil
	}

	type changePayload struct {
		Item   string `json:"item"`
		Status string `json:"status"`
	}
	items := make([]changePayload, len(changes))
	for i, change := range changes {
		items[i] = changePayload{Item: change.Item, Status: change.Status.String()}
	}

	payload := struct {
		Left  buildPayload    `json:"left"`
		Right buildPayload    `json:"right"`
		Items []changePayload `json:"items"`
	}{toBuildPayload(leftBuild), toBuildPayload(rightBuild), items}

	return jsonResult(payload)
}

// buildPayload is the JSON shape of a build in tool results. Optional
// fields stay null when the API reported them absent.
type buildPayload struct {
	Machine   string  `json:"machine"`
	Number    int     `json:"number"`
	Submitted *string `json:"submitted,omitempty"`
	Completed *string `json:"completed,omitempty"`
	Keep      *bool   `json:"keep,omitempty"`
	Published *bool   `json:"published,omitempty"`
	Note      *string `json:"note,omitempty"`
}

func toBuildPayload(b gbp.Build) buildPayload {
	payload := buildPayload{Machine: b.Machine, Number: b.Number}
	if b.Info == nil {
		return payload
	}

	submitted := b.Info.Submitted.Format(time.RFC3339)
	payload.Submitted = &submitted
	if b.Info.Completed != nil {
		completed := b.Info.Completed.Format(time.RFC3339)
		payload.Completed = &completed
	}
	payload.Keep = b.Info.Keep
	payload.Published = b.Info.Published
	payload.Note = b.Info.Note
	return payload
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
