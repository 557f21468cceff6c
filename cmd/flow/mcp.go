package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/awantoch/kwanixflow/api"
	"github.com/awantoch/kwanixflow/constants"
	mcpserver "github.com/awantoch/kwanixflow/mcp"
)

// newMCPCmd creates the 'mcp' subcommand.
func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.CmdMCP,
		Short: constants.DescMCP,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig()
			if err != nil {
				exit(1)
				return
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			deps, cleanup, err := api.InitializeDependencies(ctx, cfg)
			if err != nil {
				fail("Failed to initialize: %v", err)
				return
			}
			defer cleanup()
			if err := mcpserver.Serve(ctx, mcpOptions(cmd), mcpserver.DiagramTools(deps.Service)); err != nil {
				fail("MCP server failed: %v", err)
			}
		},
	}
	cmd.Flags().Bool("stdio", true, "serve over stdin/stdout (default unless --addr is given)")
	cmd.Flags().String("addr", ":9090", "listen address; setting it switches to HTTP")
	return cmd
}

// mcpOptions picks the transport: an explicit --addr means HTTP unless
// --stdio was also given explicitly.
func mcpOptions(cmd *cobra.Command) mcpserver.Options {
	flags := cmd.Flags()
	stdio, _ := flags.GetBool("stdio")
	addr, _ := flags.GetString("addr")
	if flags.Changed("addr") && !flags.Changed("stdio") {
		stdio = false
	}
	return mcpserver.Options{Stdio: stdio, Addr: addr, Debug: debug}
}
