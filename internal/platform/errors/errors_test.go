package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidParameters, http.StatusUnprocessableEntity},
		{ErrorCodeUnprocessableCreate, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeInvalidParameters, "Invalid parameters")
	if CodeOf(e1) != ErrorCodeInvalidParameters {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	if HTTPStatus(e1) != http.StatusUnprocessableEntity {
		t.Fatalf("HTTPStatus(New) = %d", HTTPStatus(e1))
	}

	src := stderrs.New("root")
	e2 := Wrapf(src, ErrorCodeDB, "select %s", "robots")
	if want := "select robots: root"; e2.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e2.Error(), want)
	}
	if msg, ok := MessageOf(e2); !ok || msg != "select robots" {
		t.Fatalf("MessageOf(ours) = %q, %v", msg, ok)
	}
	if _, ok := MessageOf(src); ok {
		t.Fatalf("MessageOf(foreign) should be !ok")
	}
	if stderrs.Unwrap(e2) != src {
		t.Fatalf("Wrap did not keep orig")
	}

	e3 := WithOp(WithField(e2, "name"), "robots.insert")
	got, ok := As(e3)
	if !ok || got.Field() != "name" || got.Op() != "robots.insert" {
		t.Fatalf("WithField/WithOp failed: %+v", got)
	}
	if orig, _ := As(e2); orig.Field() != "" || orig.Op() != "" {
		t.Fatalf("copy-on-write mutated original")
	}
	if WithOp(src, "x") != src {
		t.Fatalf("WithOp should leave foreign errors unchanged")
	}

	if HTTPStatus(nil) != http.StatusOK {
		t.Fatalf("HTTPStatus(nil) should be 200")
	}
	if HTTPStatus(src) != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus(foreign) should be 500")
	}

	if CodeOf(InvalidParamsf("x")) != ErrorCodeInvalidParameters ||
		CodeOf(JSONErrf("x")) != ErrorCodeJSON ||
		CodeOf(PanicErrf("x")) != ErrorCodePanic {
		t.Fatalf("sugar helpers code mismatch")
	}

	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", src))
	if got := Root(deep); got == nil || got.Error() != "root" {
		t.Fatalf("Root() failed, got %v", got)
	}
}

func TestIsMatchesSentinelCopies(t *testing.T) {
	sentinel := New(ErrorCodeNotFound, "Robot not found")
	labelled := WithOp(sentinel, "robots.get")
	wrapped := fmt.Errorf("handler: %w", labelled)

	if !stderrs.Is(wrapped, sentinel) {
		t.Fatalf("errors.Is should match a relabelled sentinel")
	}
	if stderrs.Is(wrapped, New(ErrorCodeNotFound, "not found")) {
		t.Fatalf("errors.Is should not match a different message")
	}
	if stderrs.Is(wrapped, New(ErrorCodeInvalidParameters, "Robot not found")) {
		t.Fatalf("errors.Is should not match a different code")
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrorCodeInvalidParameters.String() != "invalid_parameters" {
		t.Fatalf("unexpected label %q", ErrorCodeInvalidParameters.String())
	}
	if ErrorCode(9999).String() != "unknown" {
		t.Fatalf("unexpected default label")
	}
}
