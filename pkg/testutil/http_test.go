package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func recordJSON(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
	return DoRequest(handler, httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestReadBodyIsRepeatable(t *testing.T) {
	rr := recordJSON(t, `{"status":"pending","vote_count":1}`)

	// Successive assertions inspect the same recorded body.
	AssertJSONContains(t, rr, "status", "pending")
	AssertJSONContains(t, rr, "vote_count", float64(1))
	AssertJSONHasKey(t, rr, "status")
}

func TestAssertStatusAndError(t *testing.T) {
	rr := recordJSON(t, `{"error":"already registered","code":"already_registered"}`)
	rr.Code = http.StatusConflict

	AssertStatusAndError(t, rr, http.StatusConflict, "already_registered")
	AssertErrorCode(t, rr, "already_registered")
}
