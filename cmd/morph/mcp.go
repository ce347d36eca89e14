package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aretw0/morph/internal/cli"
	"github.com/aretw0/morph/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the morph engine as an MCP Server.
This lets agents sample, validate and inspect transition documents as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// 1. Initialize Engine
		engine, _, err := setup(cmd, nil)
		if err != nil {
			return err
		}

		// 2. Initialize MCP Server Adapter
		srv := mcp.NewServer(engine)

		// 3. Start Server based on Transport
		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting morph MCP Server (Stdio)...")
			return srv.ServeStdio()
		case "sse":
			slog.Info("Starting morph MCP Server (SSE)", "port", port)

			// Create a context that cancels on interrupt signal
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()

			if err := srv.ServeSSE(sigCtx, port); err != nil {
				return fmt.Errorf("MCP Server execution failed: %w", err)
			}
			slog.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
