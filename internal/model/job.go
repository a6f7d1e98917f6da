package model

import "time"

// JobStatus tracks a print job through its lifecycle. Transitions only move
// forward: Queued → Rendered → Submitted, or Queued/Rendered → Failed.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRendered  JobStatus = "rendered"
	JobStatusSubmitted JobStatus = "submitted"
	JobStatusFailed    JobStatus = "failed"
)

// PrintJob is the audit record of one print request. It is fully resolved
// (Submitted or Failed) before the request that created it returns.
type PrintJob struct {
	ID           string        `json:"id"`
	Text         string        `json:"text"`
	LabelSize    LabelSize     `json:"label_size"`
	Options      RenderOptions `json:"options"`
	Layout       *LayoutResult `json:"layout,omitempty"`
	ArtifactPath string        `json:"artifact_path,omitempty"`
	Status       JobStatus     `json:"status"`
	ErrorKind    ErrorKind     `json:"error_kind,omitempty"`
	Error        string        `json:"error,omitempty"`
	ReceiptID    string        `json:"receipt_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	ResolvedAt   *time.Time    `json:"resolved_at,omitempty"`
}

// JobReceipt is what the print subsystem hands back after accepting a job.
type JobReceipt struct {
	ID      string `json:"id"`
	Printer string `json:"printer"`
	Media   string `json:"media"`
}
