// Package app wires configuration, the API client and the tool set into
// a runnable MCP server.
package app

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sitelens/sitelens-mcp-server/internal/client"
	"github.com/sitelens/sitelens-mcp-server/internal/config"
	"github.com/sitelens/sitelens-mcp-server/internal/mcp"
	"github.com/sitelens/sitelens-mcp-server/internal/tools"
)

// NewToolbox builds the shared Sitelens MCP toolbox.
func NewToolbox(cfg config.Config, log *logrus.Entry) *mcp.Toolbox {
	api := client.New(cfg, log)

	return mcp.NewToolbox(
		// App-wide overview
		tools.AppContext(api),

		// Page tools
		tools.ListPages(api),
		tools.PageContext(api),
		tools.ElementContext(api),

		// Visitor and session tools
		tools.Visitors(api),
		tools.VisitorDetail(api),
		tools.Sessions(api),
		tools.SessionDetail(api),

		// Journey analysis
		tools.UserFlows(api),
	)
}

// NewMCPServer constructs an MCP server with the shared toolbox.
func NewMCPServer(cfg config.Config, log *logrus.Entry) *mcp.Server {
	return mcp.NewServer(NewToolbox(cfg, log))
}

// RunMCPHTTP starts the MCP HTTP server on the provided address.
func RunMCPHTTP(cfg config.Config, addr string, log *logrus.Entry) error {
	return mcp.RunHTTP(NewMCPServer(cfg, log), addr, log)
}

// RunStdio serves MCP over the provided streams until EOF.
func RunStdio(ctx context.Context, cfg config.Config, r io.Reader, w io.Writer, log *logrus.Entry) error {
	return mcp.ServeStdio(ctx, NewMCPServer(cfg, log), r, w, log)
}
