package domain

import (
	"fmt"

	"google.golang.org/grpc/codes"

	apperrors "github.com/louisbranch/rollexpr/internal/platform/errors"
)

// ToolError is a failed tool call as MCP clients see it. Its message is
// localized and prefixed with the stable error code.
type ToolError struct {
	Reason   apperrors.Code
	Status   codes.Code
	Locale   string
	Message  string
	Metadata map[string]string
	cause    error
}

// NewToolError localizes err through the gRPC status mapping.
func NewToolError(err error, locale string) *ToolError {
	details := apperrors.DetailsFromStatus(apperrors.HandleError(err, locale))
	return &ToolError{
		Reason:   details.Reason,
		Status:   details.Status,
		Locale:   details.Locale,
		Message:  details.Message,
		Metadata: details.Metadata,
		cause:    err,
	}
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.cause
}
