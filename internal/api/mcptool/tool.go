// Package mcptool exposes stats lookups as an MCP tool.
package mcptool

import (
	"context"
	"encoding/json"

	"cp_stats/internal/app/service"
	"cp_stats/internal/common"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const ToolName = "get_user_stats"

func NewServer(statsService *service.StatsService, version string) *server.MCPServer {
	s := server.NewMCPServer("cp-stats", version, server.WithToolCapabilities(false))
	s.AddTool(newTool(statsService.Platforms()), GetUserStatsHandler(statsService))
	return s
}

func newTool(platforms []string) mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Fetch a competitive-programming profile summary: rating, rank, solved count and per-language solves."),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("Judge to query"),
			mcp.Enum(platforms...),
		),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("Handle on that judge"),
		),
	)
}

// GetUserStatsHandler answers tool calls. Lookup failures become tool errors
// carrying the same message the HTTP API returns.
func GetUserStatsHandler(statsService *service.StatsService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		platform, err := request.RequireString("platform")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		username, err := request.RequireString("username")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		stats, err := statsService.GetUserStats(ctx, platform, username)
		if err != nil {
			return mcp.NewToolResultError(common.ClientMessage(err)), nil
		}
		out, err := json.Marshal(stats)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}
