package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/sikuli-cli/internal/steps"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func stepsSupported() string { return steps.Supported }

// resultToText serializes a result to YAML for the tool response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

// stepHandler runs action with the request arguments under the session lock.
func (s *Server) stepHandler(action string) mcpserver.ToolHandlerFunc {
	return func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := request.GetArguments()

		s.sessionMu.Lock()
		defer s.sessionMu.Unlock()

		result, err := steps.Execute(s.session, action, params)
		if err != nil {
			s.logger.Debug("tool failed", zap.String("tool", action), zap.Error(err))
			result.OK = false
			result.Error = err.Error()
			return mcp.NewToolResultError(resultToText(result)), nil
		}
		result.OK = true
		return mcp.NewToolResultText(resultToText(result)), nil
	}
}

func (s *Server) handleDo(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	stopOnError := steps.BoolParam(params, "stop-on-error", true)

	rawSteps, ok := params["steps"]
	if !ok {
		return mcp.NewToolResultError("steps parameter is required"), nil
	}
	batch, err := steps.StepsFromAny(rawSteps)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	result := steps.RunBatch(s.session, batch, stopOnError)
	if !result.OK {
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}
