package e2e

import (
	"net/http"
	"testing"
)

func TestJobLookup_AfterPrint(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodPost, "/api/v1/print", printBody("JUNTAWA", 50, 50, ""))
	if err != nil {
		t.Fatalf("print request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	jobID := parseJSON(t, resp)["job_id"].(string)

	resp, err = doRequest(ta.app, http.MethodGet, "/api/v1/jobs/"+jobID, "")
	if err != nil {
		t.Fatalf("job request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	job := parseJSON(t, resp)
	if job["id"] != jobID {
		t.Errorf("expected job id %s, got %v", jobID, job["id"])
	}
	// Records are only visible once resolved.
	if job["status"] != "submitted" {
		t.Errorf("expected status 'submitted', got %v", job["status"])
	}
	if job["artifact_path"] == nil || job["artifact_path"] == "" {
		t.Error("expected artifact path in job record")
	}
}

func TestJobLookup_FailedJobIsRecorded(t *testing.T) {
	ta := setupApp(t)
	ta.dispatcher.available = false

	resp, err := doRequest(ta.app, http.MethodPost, "/api/v1/print", printBody("JUNTAWA", 50, 50, ""))
	if err != nil {
		t.Fatalf("print request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusServiceUnavailable)

	// The failed job is still auditable through the store.
	job := singleStoredJob(t, ta)
	resp, err = doRequest(ta.app, http.MethodGet, "/api/v1/jobs/"+job, "")
	if err != nil {
		t.Fatalf("job request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	record := parseJSON(t, resp)
	if record["status"] != "failed" {
		t.Errorf("expected status 'failed', got %v", record["status"])
	}
	if record["error_kind"] != "PRINTER_UNAVAILABLE" {
		t.Errorf("expected error kind, got %v", record["error_kind"])
	}
}

func TestJobLookup_Unknown(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodGet, "/api/v1/jobs/no-such-job", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusNotFound)
}
