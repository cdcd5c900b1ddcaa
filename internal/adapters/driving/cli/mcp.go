package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose guidance to AI assistants over MCP",
}

var mcpPort int

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run a Model Context Protocol server backed by the local knowledge base.

Tools:      evaluate, list_resources, get_protocol, assess_vitals
Resources:  sahaaya://conditions, sahaaya://hotlines, sahaaya://protocols/{type}

The server speaks JSON-RPC on stdio unless --port is given, in which case it
serves the streamable HTTP transport on that port.

  sahaaya mcp serve             # stdio, for desktop assistants
  sahaaya mcp serve --port 8090 # HTTP, for inspectors and remote clients`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve streamable HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := newMCPServer()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()
	stop := startBackground(ctx)
	defer stop()

	if mcpPort <= 0 {
		return server.Run(ctx)
	}
	addr := fmt.Sprintf(":%d", mcpPort)
	cmd.Printf("MCP server on http://localhost%s\n", addr)
	return server.RunHTTP(ctx, addr)
}
