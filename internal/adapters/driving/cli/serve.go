package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sahaaya/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/mcp"
	"github.com/custodia-labs/sahaaya/internal/logger"
)

var (
	serveAddr  string
	serveNoMCP bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API. Routes:

  POST /api/evaluate           {"text": "...", "language": "hi"}
  GET  /api/resources          ?region=&emergency=&limit=
  GET  /api/contacts           ?region=
  GET  /api/protocols[/{type}]
  GET  /api/hotlines
  POST /api/vitals             {"heart_rate": 120, "age_group": "adult"}
  GET  /api/history            ?limit=
  GET  /health

The MCP server is mounted at /mcp unless --no-mcp is given. Background
maintenance and knowledge base watching run while the server is up.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&serveNoMCP, "no-mcp", false, "do not mount the MCP server at /mcp")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if guidanceService == nil {
		return errors.New("guidance service not configured")
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	var mcpHandler http.Handler
	if !serveNoMCP {
		server, err := newMCPServer()
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}
		mcpHandler = server.Handler()
	}

	stop := startBackground(ctx)
	defer stop()

	router := httpapi.NewRouter(httpapi.NewHandler(guidanceService, emergencyService, historyService), mcpHandler)
	cmd.Printf("Listening on http://localhost%s\n", serveAddr)
	return httpapi.Run(ctx, serveAddr, router)
}

// startBackground starts the scheduler and knowledge watcher when configured.
// The returned function stops the scheduler.
func startBackground(ctx context.Context) func() {
	if knowledgeWatch != nil {
		go func() {
			if err := knowledgeWatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("knowledge watch stopped: %v", err)
			}
		}()
	}

	if scheduler == nil || !schedulerConfig.Enabled {
		return func() {}
	}

	go func() {
		if err := scheduler.Start(ctx); err != nil {
			// Scheduler errors shouldn't block the foreground command
			logger.Warn("scheduler stopped: %v", err)
		}
	}()

	return func() {
		if err := scheduler.Stop(); err != nil {
			logger.Warn("scheduler stop error: %v", err)
		}
	}
}

func newMCPServer() (*mcp.Server, error) {
	return mcp.NewServer(&mcp.Ports{
		Guidance:  guidanceService,
		Emergency: emergencyService,
		Knowledge: knowledgeService,
	})
}
