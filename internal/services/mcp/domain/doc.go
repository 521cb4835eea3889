// Package domain translates MCP tool calls into dice service operations.
//
// Handlers decode tool input, call the roller service and shape its results
// into structured outputs that MCP clients can render. Failures surface as
// localized tool errors that carry the stable error code.
package domain
