package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFailEnvelopeShape(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusNotFound, CodeNotFound, "employee not found", "req-1")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var envelope Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Success {
		t.Fatal("expected success=false")
	}
	if envelope.Error == nil || envelope.Error.Code != CodeNotFound {
		t.Fatalf("unexpected error: %+v", envelope.Error)
	}
	if envelope.RequestID != "req-1" {
		t.Fatalf("expected requestId req-1, got %q", envelope.RequestID)
	}
}

func TestBinarySetsDownloadHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	Binary(rec, "application/pdf", "qualification-matrix.pdf", []byte("%PDF-"))

	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="qualification-matrix.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "%PDF-" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
