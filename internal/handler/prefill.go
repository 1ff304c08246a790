package handler

import (
	"net/http"

	"planhaus/internal/logger"
	"planhaus/internal/service"

	"github.com/gin-gonic/gin"
)

type PrefillHandler struct {
	prefill  *service.PrefillService
	projects *service.ProjectService
}

func NewPrefillHandler(prefill *service.PrefillService, projects *service.ProjectService) *PrefillHandler {
	return &PrefillHandler{prefill: prefill, projects: projects}
}

// GET /api/projects/:id/prefill previews the derived bundle without writing.
func (h *PrefillHandler) Preview(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	bundle, err := h.prefill.Load(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// POST /api/projects/:id/prefill/apply runs one transaction covering all
// seven derived payloads; either everything lands or nothing does.
func (h *PrefillHandler) Apply(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	summary, err := h.prefill.Apply(c.Request.Context(), projectID)
	if err != nil {
		logger.Error("prefill.apply_failed", "project_id", projectID, "err", err)
		fail(c, err)
		return
	}
	logger.Info("prefill.applied", "project_id", projectID,
		"budget_items", summary.BudgetItems, "tasks", summary.Tasks)
	c.JSON(http.StatusOK, summary)
}
