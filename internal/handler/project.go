package handler

import (
	"net/http"
	"time"

	"planhaus/internal/logger"
	"planhaus/internal/model"
	"planhaus/internal/service"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type projectRequest struct {
	Title       string  `json:"title" binding:"required"`
	WeddingDate *string `json:"wedding_date,omitempty"`
	Location    string  `json:"location"`
	GuestCount  int     `json:"guest_count"`
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p := model.Project{Title: req.Title, Location: req.Location, GuestCount: req.GuestCount}
	if req.WeddingDate != nil {
		d, err := time.Parse("2006-01-02", *req.WeddingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "wedding_date must be YYYY-MM-DD"})
			return
		}
		p.WeddingDate = &d
	}
	if err := h.projects.Create(c.Request.Context(), c.GetInt("user_id"), &p); err != nil {
		fail(c, err)
		return
	}
	logger.Info("project.created", "project_id", p.ID, "owner_id", p.OwnerID)
	c.JSON(http.StatusOK, p)
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.ListForUser(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	p, err := h.projects.Get(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PATCH /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	allowed := map[string]bool{"title": true, "wedding_date": true, "location": true, "guest_count": true}
	for k := range fields {
		if !allowed[k] {
			delete(fields, k)
		}
	}
	p, err := h.projects.Update(c.Request.Context(), projectID, fields)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), projectID); err != nil {
		fail(c, err)
		return
	}
	logger.Info("project.deleted", "project_id", projectID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/projects/:id/invites  body: {"user_id": 2, "role": "editor"}
func (h *ProjectHandler) Invite(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	var req struct {
		UserID int    `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	token, err := h.projects.Invite(c.Request.Context(), projectID, req.UserID, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	logger.Info("project.invited", "project_id", projectID, "invitee", req.UserID)
	c.JSON(http.StatusOK, gin.H{"invite_token": token})
}

// POST /api/invites/accept  body: {"token": "..."}
func (h *ProjectHandler) AcceptInvite(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	collab, err := h.projects.AcceptInvite(c.Request.Context(), c.GetInt("user_id"), req.Token)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, collab)
}
