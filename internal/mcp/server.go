// Package mcp exposes the scoring engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"io"
	"log"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spboyer/pagescore/internal/scoring"
)

// ServerName identifies the server during MCP initialization.
const ServerName = "pagescore"

// NewServer creates an MCP server with the scoring tools registered.
func NewServer(engine *scoring.Engine, version string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}

	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	scoreTool := NewScoreTool(engine, logger)
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	rulesTool := NewRulesTool(engine)
	s.AddTool(rulesTool.Definition(), rulesTool.Handle)

	return s
}

// ServeStdio runs the MCP server on the given reader/writer (typically
// stdin/stdout) until ctx is cancelled or r is exhausted.
func ServeStdio(ctx context.Context, s *server.MCPServer, r io.Reader, w io.Writer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(slogWriter{logger}, "", 0))
	return stdio.Listen(ctx, r, w)
}

// slogWriter adapts the transport's *log.Logger output to slog at debug level.
type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Write(p []byte) (int, error) {
	w.logger.Debug("mcp transport", "message", string(trimNewline(p)))
	return len(p), nil
}

func trimNewline(p []byte) []byte {
	if n := len(p); n > 0 && p[n-1] == '\n' {
		return p[:n-1]
	}
	return p
}
