package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestHandleErrorLocalizesDomainErrors(t *testing.T) {
	err := fmt.Errorf("roll: %w", WithMetadata(CodeTooManyDice, "expression rolls more than 10 dice", map[string]string{
		"Limit": "10",
	}))

	details := DetailsFromStatus(HandleError(err, "pt-BR"))
	if details.Status != codes.ResourceExhausted {
		t.Fatalf("status = %s, want ResourceExhausted", details.Status)
	}
	if details.Reason != CodeTooManyDice {
		t.Fatalf("reason = %s, want %s", details.Reason, CodeTooManyDice)
	}
	if details.Locale != "pt-BR" {
		t.Fatalf("locale = %q, want pt-BR", details.Locale)
	}
	if details.Message != "A expressão de dados rola mais de 10 dados" {
		t.Fatalf("message = %q", details.Message)
	}
	if details.Metadata["Limit"] != "10" {
		t.Fatalf("metadata = %v", details.Metadata)
	}
}

func TestHandleErrorDefaultsLocale(t *testing.T) {
	details := DetailsFromStatus(HandleError(New(CodeExpressionEmpty, "empty"), ""))
	if details.Locale != DefaultLocale || details.Message != "Dice expression cannot be empty" {
		t.Fatalf("details = %+v", details)
	}
}

func TestHandleErrorHidesUnknownErrors(t *testing.T) {
	details := DetailsFromStatus(HandleError(stderrors.New("secret internals"), "en-US"))
	if details.Status != codes.Internal {
		t.Fatalf("status = %s, want Internal", details.Status)
	}
	if details.Reason != CodeUnknown || details.Message != "an unexpected error occurred" {
		t.Fatalf("details = %+v", details)
	}
	if HandleError(nil, "en-US") != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestLocalize(t *testing.T) {
	err := WithMetadata(CodeMismatchedParentheses, "mismatch", map[string]string{"Open": "(", "Close": "]"})
	if got := Localize(err, "en-US"); got != "']' does not close '('" {
		t.Fatalf("Localize = %q", got)
	}
	if got := Localize(stderrors.New("boom"), "pt-BR"); got != "Algo deu errado durante a rolagem" {
		t.Fatalf("Localize unknown = %q", got)
	}
	if got := Localize(nil, "en-US"); got != "" {
		t.Fatalf("Localize(nil) = %q", got)
	}
}

func TestCodeHelpers(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", WithMetadata(CodeInvalidDie, "invalid die", map[string]string{"Sides": "7"}))
	if GetCode(err) != CodeInvalidDie || !IsCode(err, CodeInvalidDie) {
		t.Fatalf("GetCode = %s", GetCode(err))
	}
	if GetMetadata(err)["Sides"] != "7" {
		t.Fatalf("GetMetadata = %v", GetMetadata(err))
	}
	if GetCode(stderrors.New("plain")) != CodeUnknown || GetMetadata(stderrors.New("plain")) != nil {
		t.Fatal("expected unknown code and nil metadata for plain errors")
	}
}
