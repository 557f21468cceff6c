package mcp

import (
	"context"
	"io"

	"github.com/awantoch/kwanixflow/utils"
	mcp "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport"
	mcphttp "github.com/metoro-io/mcp-golang/transport/http"
	mcpstdio "github.com/metoro-io/mcp-golang/transport/stdio"
)

// ToolRegistration holds a tool's registration info for the MCP server.
type ToolRegistration struct {
	Name        string
	Description string
	Handler     any // func(ctx, ArgsT) (*mcp.ToolResponse, error)
}

// Options selects the transport.
type Options struct {
	Stdio bool
	Addr  string // HTTP listen address when Stdio is false
	Debug bool
}

// Serve runs the diagram tools until ctx is done.
func Serve(ctx context.Context, opts Options, tools []ToolRegistration) error {
	var tr transport.Transport
	if opts.Stdio {
		// stdout carries the protocol; CLI output would corrupt it.
		if !opts.Debug {
			utils.SetUserOutput(io.Discard)
		}
		utils.InfoCtx(ctx, "MCP server listening on stdio", "tools", len(tools))
		tr = mcpstdio.NewStdioServerTransport()
	} else {
		utils.InfoCtx(ctx, "MCP server listening on HTTP", "addr", opts.Addr, "tools", len(tools))
		tr = mcphttp.NewHTTPTransport("/mcp").WithAddr(opts.Addr)
	}

	server := mcp.NewServer(tr)
	if err := RegisterAllTools(server, tools); err != nil {
		return err
	}
	if err := server.Serve(); err != nil {
		return err
	}
	<-ctx.Done()
	utils.Info("MCP server stopped")
	return nil
}

// RegisterAllTools registers every tool, failing on the first rejected one.
func RegisterAllTools(server *mcp.Server, tools []ToolRegistration) error {
	for _, t := range tools {
		if err := server.RegisterTool(t.Name, t.Description, t.Handler); err != nil {
			return utils.Errorf("register tool %s: %w", t.Name, err)
		}
	}
	return nil
}
