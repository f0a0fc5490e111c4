package errors

import (
	stdErrors "errors"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, publicMsg: "validation failed", detailsOK: true},
		{code: CodeDuplicate, publicMsg: "record already exists", detailsOK: true},
		{code: CodeNotFound, publicMsg: "record not found", detailsOK: true},
		{code: CodeInvalidTransition, publicMsg: "status transition disallowed", detailsOK: true},
		{code: CodeCorruption, publicMsg: "stored record is unreadable"},
		{code: CodePersistence, publicMsg: "ledger unavailable", retryable: true},
		{code: CodeInternal, publicMsg: "internal error", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.PublicMessage != "internal error" {
		t.Fatalf("expected internal metadata, got %q", meta.PublicMessage)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "settlementId is required")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "settlementId is required" {
		t.Fatalf("unexpected message %q", base.Message())
	}

	formatted := Newf(CodeNotFound, "Settlement with ID %s does not exist", "SETTLE-404")
	if formatted.Message() != "Settlement with ID SETTLE-404 does not exist" {
		t.Fatalf("unexpected formatted message %q", formatted.Message())
	}

	cause := stdErrors.New("connection reset")
	wrapped := Wrap(CodePersistence, cause, "Settlement creation failed: connection reset")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatal("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodePersistence {
		t.Fatalf("expected persistence code, got %s", wrapped.Code())
	}

	if Wrap(CodePersistence, nil, "no cause").Unwrap() != nil {
		t.Fatal("Wrap with nil cause should not fabricate one")
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(nil) != "" {
		t.Fatal("nil error has no code")
	}
	if CodeOf(stdErrors.New("plain")) != CodeInternal {
		t.Fatal("untyped errors map to internal")
	}

	err := New(CodeInvalidTransition, "Invalid status transition from COMPLETED to PENDING")
	if !HasCode(err, CodeInvalidTransition) {
		t.Fatal("expected invalid transition code")
	}
	if HasCode(err, CodeValidation) {
		t.Fatal("code mismatch should not match")
	}

	wrapped := Wrap(CodePersistence, err, "outer")
	if CodeOf(wrapped) != CodePersistence {
		t.Fatal("outermost code wins")
	}
}
