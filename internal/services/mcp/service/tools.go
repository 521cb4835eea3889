package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/rollexpr/internal/services/mcp/domain"
)

func registerDiceTools(server *mcp.Server, roller domain.Roller) error {
	if server == nil {
		return fmt.Errorf("MCP server is nil")
	}
	mcp.AddTool(server, domain.RollDiceTool(), domain.RollDiceHandler(roller))
	mcp.AddTool(server, domain.RenderDiceTool(), domain.RenderDiceHandler(roller))
	mcp.AddTool(server, domain.RollHistoryTool(), domain.RollHistoryHandler(roller))
	return nil
}
