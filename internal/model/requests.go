package model

import "time"

// PrintRequest is the body of POST /api/v1/print.
type PrintRequest struct {
	Text      string        `json:"text" validate:"required,min=1,max=100"`
	LabelSize LabelSize     `json:"label_size" validate:"required"`
	Options   RenderOptions `json:"options"`
}

// PrintResponse is returned when a label was rendered and accepted by the
// print subsystem.
type PrintResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	JobID     string `json:"job_id"`
	ImagePath string `json:"image_path"`
}

// PrinterCapabilities advertises what the configured printer can do. It is
// assembled fresh on every capabilities query; availability reflects the
// printer state at query time.
type PrinterCapabilities struct {
	Name         string               `json:"name"`
	Available    bool                 `json:"available"`
	SupportedDPI []int                `json:"supported_dpi"`
	DefaultSizes map[string]LabelSize `json:"default_sizes"`
	MinSize      LabelSize            `json:"min_size"`
	MaxSize      LabelSize            `json:"max_size"`
}

// HealthResponse is the liveness payload. It never probes the printer.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}
