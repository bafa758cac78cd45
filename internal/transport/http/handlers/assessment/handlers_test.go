package assessmenthandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidTargetLevel(t *testing.T) {
	for _, v := range []int{0, 25, 60, 83, 100} {
		if !validTargetLevel(v) {
			t.Fatalf("expected %d to be a valid target", v)
		}
	}
	for _, v := range []int{-1, -25, 101, 150} {
		if validTargetLevel(v) {
			t.Fatalf("expected %d to be rejected", v)
		}
	}
}

func TestUpsertRejectsBadLevels(t *testing.T) {
	handler := NewHandler(nil)

	cases := []string{
		`{"employeeId":"e1","skillId":"s1","level":30}`,
		`{"employeeId":"e1","skillId":"s1","level":50,"targetLevel":-1}`,
		`{"employeeId":"e1","skillId":"s1","level":50,"targetLevel":150}`,
		`{"skillId":"s1","level":50}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPut, "/assessments", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.handleUpsert(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}
