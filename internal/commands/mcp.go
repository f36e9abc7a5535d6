package commands

import (
	"github.com/spf13/cobra"

	"github.com/wordjournal/xcproj/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the xcproj MCP server",
	Long:  "Starts the xcproj MCP server over stdio. Exposes generate, verify, lint and identifier minting as typed tool calls.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.Run(cmd.Context(), Version)
	},
}
