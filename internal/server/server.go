// Package server exposes a sikuli.Session as Model Context Protocol tools.
package server

import (
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/sikuli-cli/internal/sikuli"
	"github.com/mj1618/sikuli-cli/internal/version"
	"go.uber.org/zap"
)

// Config holds MCP transport settings.
type Config struct {
	Transport string
	Port      int
}

// Server serializes tool calls onto one Session. The interpreter handles a
// single line at a time, so every handler holds sessionMu.
type Server struct {
	session   *sikuli.Session
	sessionMu sync.Mutex
	logger    *zap.Logger
	mcp       *mcpserver.MCPServer
}

// New creates a Server with every tool registered.
func New(session *sikuli.Session, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		session: session,
		logger:  logger.Named("mcp"),
		mcp:     mcpserver.NewMCPServer("sikuli-cli", version.Version),
	}
	s.registerTools()
	return s
}

// Serve blocks serving the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func targetOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("image", mcp.Description("Image file to search for")),
		mcp.WithNumber("similar", mcp.Description("Minimum similarity 0-1 (default 0.7)")),
		mcp.WithString("offset", mcp.Description("Click offset from the match center as dx,dy")),
		mcp.WithString("region", mcp.Description("Screen rectangle as x,y,w,h")),
		mcp.WithNumber("screen", mcp.Description("Monitor index")),
		mcp.WithBoolean("focused-window", mcp.Description("Use the focused application window")),
	}
}

func tool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	return mcp.NewTool(name, append([]mcp.ToolOption{mcp.WithDescription(description)}, opts...)...)
}

func (s *Server) registerTools() {
	timeout := mcp.WithNumber("timeout", mcp.Description("Seconds to wait (0 = no wait)"))
	images := mcp.WithArray("images", mcp.Description("Image files to search for"), mcp.Required())

	s.mcp.AddTool(
		tool("find", "Find an image on screen and return the match location and score",
			append(targetOptions(), mcp.WithBoolean("all", mcp.Description("Return every match")))...),
		s.stepHandler("find"),
	)
	s.mcp.AddTool(
		tool("wait", "Wait for an image to appear, or with vanish, to disappear",
			append(targetOptions(), timeout, mcp.WithBoolean("vanish", mcp.Description("Wait until the target is gone")))...),
		s.stepHandler("wait"),
	)
	s.mcp.AddTool(
		tool("exists", "Return the match of an image if it appears within the timeout",
			append(targetOptions(), timeout)...),
		s.stepHandler("exists"),
	)
	s.mcp.AddTool(
		tool("has", "Report whether an image appears within the timeout",
			append(targetOptions(), timeout)...),
		s.stepHandler("has"),
	)
	s.mcp.AddTool(
		tool("best", "Return the best scoring match among several images", images, timeout,
			mcp.WithNumber("similar", mcp.Description("Minimum similarity 0-1"))),
		s.stepHandler("best"),
	)
	s.mcp.AddTool(
		tool("any", "Return the first match among several images", images, timeout,
			mcp.WithNumber("similar", mcp.Description("Minimum similarity 0-1"))),
		s.stepHandler("any"),
	)
	s.mcp.AddTool(
		tool("click", "Click an image or region",
			append(targetOptions(), mcp.WithString("kind", mcp.Description("left, right, or double")))...),
		s.stepHandler("click"),
	)
	s.mcp.AddTool(
		tool("hover", "Move the mouse over an image or region", targetOptions()...),
		s.stepHandler("hover"),
	)
	s.mcp.AddTool(
		tool("drag", "Drag from one target and drop on another",
			mcp.WithObject("from", mcp.Description("Source target (image, region, ...)"), mcp.Required()),
			mcp.WithObject("to", mcp.Description("Destination target"), mcp.Required())),
		s.stepHandler("drag"),
	)
	s.mcp.AddTool(
		tool("highlight", "Outline a region on screen",
			mcp.WithString("region", mcp.Description("Screen rectangle as x,y,w,h")),
			mcp.WithNumber("screen", mcp.Description("Monitor index")),
			mcp.WithBoolean("focused-window", mcp.Description("Use the focused application window")),
			mcp.WithNumber("seconds", mcp.Description("Seconds to keep the outline (0 = toggle)")),
			mcp.WithString("color", mcp.Description("Outline color name"))),
		s.stepHandler("highlight"),
	)
	s.mcp.AddTool(
		tool("do", "Execute multiple steps in a batch. Supports: "+stepsSupported(),
			mcp.WithArray("steps", mcp.Description("Array of {action: {params}} objects"), mcp.Required()),
			mcp.WithBoolean("stop-on-error", mcp.Description("Stop on first error (default: true)"))),
		s.handleDo,
	)
}
