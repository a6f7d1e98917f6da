package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/labelforge/api/internal/service"
	"github.com/labelforge/api/pkg/response"
)

type JobsHandler struct {
	service *service.PrintService
}

func NewJobsHandler(svc *service.PrintService) *JobsHandler {
	return &JobsHandler{service: svc}
}

// Get handles GET /api/v1/jobs/:jobId. Records are already resolved when
// stored, so this is an audit lookup, not a polling endpoint.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	job, err := h.service.GetJob(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			return response.NotFound(c, "Job not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, job)
}
