package errors

import (
	"maps"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

// Domain is the ErrorInfo domain attached to every status built here.
const Domain = "github.com/louisbranch/rollexpr"

// Error is a coded failure. Message is meant for logs and spans; Metadata
// feeds the localized template selected by Code.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so errors.Is(err, New(code, ""))
// works as a code check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// New creates an error with no metadata or cause.
func New(code Code, message string) *Error {
	return WrapWithMetadata(code, message, nil, nil)
}

// WithMetadata creates an error whose localized message needs metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return WrapWithMetadata(code, message, metadata, nil)
}

// Wrap creates an error that keeps cause reachable through errors.As.
func Wrap(code Code, message string, cause error) *Error {
	return WrapWithMetadata(code, message, nil, cause)
}

// WrapWithMetadata creates an error with metadata and a cause. The metadata
// map is copied.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: maps.Clone(metadata),
		Cause:    cause,
	}
}

// ToGRPCStatus builds a status error carrying an ErrorInfo for the code and,
// when userMessage is set, a LocalizedMessage. The status message itself is
// the internal Message.
func (e *Error) ToGRPCStatus(locale string, userMessage string) error {
	st := status.New(e.Code.GRPCCode(), e.Message)

	details := []protoadapt.MessageV1{&errdetails.ErrorInfo{
		Reason:   string(e.Code),
		Domain:   Domain,
		Metadata: e.Metadata,
	}}
	if userMessage != "" {
		details = append(details, &errdetails.LocalizedMessage{Locale: locale, Message: userMessage})
	}

	withDetails, err := st.WithDetails(details...)
	if err != nil {
		return st.Err()
	}
	return withDetails.Err()
}
