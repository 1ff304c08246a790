package handler

import (
	"encoding/json"
	"net/http"

	"planhaus/internal/logger"
	"planhaus/internal/service"

	"github.com/gin-gonic/gin"
)

type IntakeHandler struct {
	intakes *service.IntakeService
}

func NewIntakeHandler(intakes *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakes: intakes}
}

// GET /api/intake
func (h *IntakeHandler) Get(c *gin.Context) {
	row, rec, err := h.intakes.Get(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submitted": row.Submitted, "data": rec})
}

// PUT /api/intake/steps/:step. Autosave path, draft validation.
func (h *IntakeHandler) SaveStep(c *gin.Context) {
	step := c.Param("step")
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.intakes.SaveStep(c.Request.Context(), c.GetInt("user_id"), step, json.RawMessage(raw))
	if err != nil {
		fail(c, err)
		return
	}
	if !res.OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "issues": res.Issues})
		return
	}
	logger.Debug("intake.step_saved", "uid", c.GetInt("user_id"), "step", step)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/intake/submit. Complete-schema validation, marks terminal.
func (h *IntakeHandler) Submit(c *gin.Context) {
	res, err := h.intakes.Submit(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !res.OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "issues": res.Issues})
		return
	}
	logger.Info("intake.submitted", "uid", c.GetInt("user_id"))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/intake/status
func (h *IntakeHandler) Status(c *gin.Context) {
	status, err := h.intakes.Status(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
