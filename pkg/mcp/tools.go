package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codelayers/strata/pkg/render"
)

// Tool name constants.
const (
	ToolNameClassify = "strata_classify"
	ToolNameSummary  = "strata_summary"
)

// Input size limits.
const (
	// MaxCodeInputBytes is the maximum allowed size for inline code input (1 MB).
	MaxCodeInputBytes = 1 << 20
)

// Sentinel errors for tool input validation.
var (
	// ErrEmptyCode indicates the code parameter is empty.
	ErrEmptyCode = errors.New("code parameter is required and must not be empty")
	// ErrCodeTooLarge indicates the code input exceeds the size limit.
	ErrCodeTooLarge = errors.New("code input exceeds maximum size")

	// errToolFailed marks a handler-level failure for metrics.
	errToolFailed = errors.New("tool call failed")
)

// ClassifyInput is the input schema for the strata_classify tool.
type ClassifyInput struct {
	Code string `json:"code"           jsonschema:"TSX source code to classify"`
	Path string `json:"path,omitempty" jsonschema:"optional file path recorded in the result"`
}

// SummaryInput is the input schema for the strata_summary tool.
type SummaryInput struct {
	Code string `json:"code" jsonschema:"TSX source code to summarize"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

func (s *Server) handleClassify(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input ClassifyInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateCodeInput(input.Code); err != nil {
		return errorResult(err)
	}

	src := []byte(input.Code)

	regions, err := s.engine.Classify(ctx, src)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(render.NewDocument(input.Path, len(src), regions))
}

func (s *Server) handleSummary(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input SummaryInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateCodeInput(input.Code); err != nil {
		return errorResult(err)
	}

	src := []byte(input.Code)

	regions, err := s.engine.Classify(ctx, src)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(render.Summarize(len(src), regions))
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// validateCodeInput checks common code input constraints.
func validateCodeInput(code string) error {
	if code == "" {
		return ErrEmptyCode
	}

	if len(code) > MaxCodeInputBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrCodeTooLarge, len(code), MaxCodeInputBytes)
	}

	return nil
}
