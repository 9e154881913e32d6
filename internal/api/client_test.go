package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skepticlabs/skeptic-tui/internal/insights"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStartInterview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/interviews/start" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if body["persona_id"] != "custom-persona-1" {
			t.Errorf("persona_id = %q", body["persona_id"])
		}
		if body["problem"] == "" || body["solution"] == "" {
			t.Error("problem and solution must be sent")
		}
		json.NewEncoder(w).Encode(StartInterviewResponse{
			InterviewID: "int-42",
			Status:      "started",
		})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithLogger(testLogger()))
	resp, err := c.StartInterview(context.Background(),
		"custom-persona-1", "receipts pile up", "an inbox that sorts them")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.InterviewID != "int-42" {
		t.Errorf("InterviewID = %q", resp.InterviewID)
	}
}

func TestStartInterviewServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"persona not found"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithLogger(testLogger()))
	_, err := c.StartInterview(context.Background(), "p", "x", "y")
	if err == nil {
		t.Fatal("expected error")
	}

	var reqErr *RequestFailedError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error type = %T, want *RequestFailedError", err)
	}
	if reqErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d", reqErr.Status)
	}
	if reqErr.Body == "" {
		t.Error("Body snippet should be captured")
	}
}

func TestGetStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/interviews/int-42/status" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(StatusResponse{
			InterviewID:  "int-42",
			Status:       "completed",
			MessageCount: 12,
			IsComplete:   true,
		})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithLogger(testLogger()))
	status, err := c.GetStatus(context.Background(), "int-42")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.IsComplete || status.MessageCount != 12 {
		t.Errorf("status = %+v", status)
	}
}

func TestGetInsights(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/interviews/int-42/insights" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(insights.Report{
			Verdict:    insights.VerdictGo,
			Confidence: 81,
			Problem:    insights.Dimension{Score: 8.5, Label: "Strong", Reasoning: "acute pain"},
			Quotes:     []string{"I would pay for this tomorrow."},
		})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithLogger(testLogger()))
	report, err := c.GetInsights(context.Background(), "int-42")
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if report.Verdict != insights.VerdictGo {
		t.Errorf("Verdict = %q", report.Verdict)
	}
	if report.Problem.Score != 8.5 {
		t.Errorf("Problem.Score = %v", report.Problem.Score)
	}
}

func TestGetInsightsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>gateway timeout</html>")
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithLogger(testLogger()))
	if _, err := c.GetInsights(context.Background(), "int-42"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(StatusResponse{})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL+"/"), WithLogger(testLogger()))
	if _, err := c.GetStatus(context.Background(), "int-1"); err != nil {
		t.Fatalf("status: %v", err)
	}
	if gotPath != "/api/interviews/int-1/status" {
		t.Errorf("path = %q, trailing slash not trimmed", gotPath)
	}
}

func TestRequestFailedErrorMessage(t *testing.T) {
	err := &RequestFailedError{Op: "get status", Status: 404}
	if got := err.Error(); got != "get status: 404 Not Found" {
		t.Errorf("Error() = %q", got)
	}
}
