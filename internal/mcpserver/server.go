package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run starts the xcproj MCP server over stdio.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string) error {
	return newServer(version).Run(ctx, &mcp.StdioTransport{})
}

func newServer(version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "xcproj",
			Version: version,
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_project",
		Description: "Generate <App>.xcodeproj/project.pbxproj from the project layout. Every identifier is allocated before anything is written, and an existing manifest is overwritten. Example: generate_project(root: \"/Users/me/WordJournal\")",
	}, handleGenerateProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "verify_project",
		Description: "Check that every expected source file and the project manifest exist on disk. Read-only.",
	}, handleVerifyProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lint_project",
		Description: "Parse a project.pbxproj and report dangling references, duplicate definitions and references to the wrong kind of object. Read-only.",
	}, handleLintProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "new_identifiers",
		Description: "Mint fresh 24-character uppercase hexadecimal object identifiers.",
	}, handleNewIdentifiers)

	return server
}
