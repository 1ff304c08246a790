package handler

import (
	"encoding/json"
	"net/http"

	"planhaus/internal/logger"
	"planhaus/internal/model"
	"planhaus/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type SeatingHandler struct {
	seating  *service.SeatingService
	projects *service.ProjectService
}

func NewSeatingHandler(seating *service.SeatingService, projects *service.ProjectService) *SeatingHandler {
	return &SeatingHandler{seating: seating, projects: projects}
}

type tableRequest struct {
	Name     string          `json:"name" binding:"required"`
	MaxSeats int             `json:"max_seats"`
	Capacity int             `json:"capacity"`
	Position json.RawMessage `json:"position,omitempty"`
}

// POST /api/projects/:id/tables
func (h *SeatingHandler) CreateTable(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	t := model.SeatingTable{
		ProjectID: projectID,
		Name:      req.Name,
		MaxSeats:  req.MaxSeats,
		Capacity:  req.Capacity,
		Position:  datatypes.JSON(req.Position),
	}
	if err := h.seating.CreateTable(c.Request.Context(), &t); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// GET /api/projects/:id/tables
func (h *SeatingHandler) ListTables(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	tables, err := h.seating.ListTables(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	if tables == nil {
		tables = []model.SeatingTable{}
	}
	c.JSON(http.StatusOK, tables)
}

// PATCH /api/projects/:id/tables/:tableID
func (h *SeatingHandler) UpdateTable(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	tableID, ok := pathID(c, "tableID")
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	allowed := map[string]bool{"name": true, "max_seats": true, "capacity": true, "position": true}
	for k := range fields {
		if !allowed[k] {
			delete(fields, k)
		}
	}
	t, err := h.seating.UpdateTable(c.Request.Context(), projectID, tableID, fields)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/projects/:id/tables/:tableID
func (h *SeatingHandler) DeleteTable(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	tableID, ok := pathID(c, "tableID")
	if !ok {
		return
	}
	if err := h.seating.DeleteTable(c.Request.Context(), projectID, tableID); err != nil {
		fail(c, err)
		return
	}
	logger.Info("seating.table_deleted", "project_id", projectID, "table_id", tableID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/projects/:id/assignments assigns or moves a guest.
func (h *SeatingHandler) AssignGuest(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	var req model.AssignGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	a, err := h.seating.AssignGuest(c.Request.Context(), projectID, req.GuestID, req.TableID, req.SeatNumber)
	if err != nil {
		fail(c, err)
		return
	}
	logger.Info("seating.assigned", "project_id", projectID, "guest_id", req.GuestID, "table_id", req.TableID)
	c.JSON(http.StatusOK, a)
}

// DELETE /api/projects/:id/assignments/:guestID
func (h *SeatingHandler) RemoveGuest(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	guestID, ok := pathID(c, "guestID")
	if !ok {
		return
	}
	removed, err := h.seating.RemoveGuest(c.Request.Context(), projectID, guestID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// GET /api/projects/:id/assignments
func (h *SeatingHandler) ListAssignments(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	assignments, err := h.seating.ListAssignments(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	if assignments == nil {
		assignments = []model.SeatingAssignment{}
	}
	c.JSON(http.StatusOK, assignments)
}
