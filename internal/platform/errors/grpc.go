package errors

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/rollexpr/internal/platform/errors/i18n"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// HandleError converts domain errors to gRPC status for client responses.
// It formats the user-facing message using the i18n catalog for the given locale,
// defaulting to en-US if the locale is empty.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}

	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		catalog := i18n.GetCatalog(locale)
		userMsg := catalog.Format(string(appErr.Code), appErr.Metadata)
		return appErr.ToGRPCStatus(catalog.Locale(), userMsg)
	}

	// Unknown error - return internal with generic message
	return status.Error(codes.Internal, "an unexpected error occurred")
}

// Localize returns the user-facing message for err in the given locale.
// Errors without a code render the UNKNOWN template.
func Localize(err error, locale string) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return i18n.GetCatalog(locale).Format(string(appErr.Code), appErr.Metadata)
	}
	return i18n.GetCatalog(locale).Format(string(CodeUnknown), nil)
}

// Details is the client-facing view of a gRPC status built by HandleError.
type Details struct {
	Status   codes.Code
	Reason   Code
	Locale   string
	Message  string
	Metadata map[string]string
}

// DetailsFromStatus unpacks the ErrorInfo and LocalizedMessage attached by
// ToGRPCStatus. The status message is used when no localized message is
// attached.
func DetailsFromStatus(err error) Details {
	st := status.Convert(err)
	details := Details{
		Status:  st.Code(),
		Reason:  CodeUnknown,
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			details.Reason = Code(d.GetReason())
			details.Metadata = d.GetMetadata()
		case *errdetails.LocalizedMessage:
			details.Locale = d.GetLocale()
			details.Message = d.GetMessage()
		}
	}
	return details
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
// Returns nil if the error is not a domain error or has no metadata.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}
