package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeRateLimit, http.StatusTooManyRequests},
		{CodeFormat, http.StatusBadGateway},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Errorf("MetadataFor(%s).HTTPStatus = %d, want %d", tc.code, got, tc.status)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("NO_SUCH_CODE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to internal, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "upload failed")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped error should match the cause via errors.Is")
	}
	if typed := As(fmt.Errorf("outer: %w", err)); typed == nil || typed.Code() != CodeDependency {
		t.Fatal("As should find the typed error through wrapping")
	}
}

func TestWrapNilCause(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeValidation, nil, "missing field")
	if err.Unwrap() != nil {
		t.Fatal("nil cause should produce no wrapped error")
	}
	if err.Code() != CodeValidation {
		t.Fatalf("code = %s", err.Code())
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	inner := stdErrors.New("root")
	err := Wrap(CodeFormat, inner, "decode listing")

	dump := Dump(err)
	if dump.Code != CodeFormat {
		t.Errorf("dump code = %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Errorf("expected full chain, got %v", dump.Chain)
	}
}
