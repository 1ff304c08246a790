package handler

import (
	"net/http"
	"time"

	"planhaus/internal/model"
	"planhaus/internal/service"

	"github.com/gin-gonic/gin"
)

// ResourceHandler serves the standard per-project CRUD resources: tasks,
// guests, vendors, and budget items.
type ResourceHandler struct {
	tasks    *service.TaskService
	guests   *service.GuestService
	vendors  *service.VendorService
	budget   *service.BudgetService
	exports  *service.ExportService
	projects *service.ProjectService
}

func NewResourceHandler(tasks *service.TaskService, guests *service.GuestService,
	vendors *service.VendorService, budget *service.BudgetService,
	exports *service.ExportService, projects *service.ProjectService) *ResourceHandler {
	return &ResourceHandler{
		tasks: tasks, guests: guests, vendors: vendors,
		budget: budget, exports: exports, projects: projects,
	}
}

// --- tasks ---

type taskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date,omitempty"`
}

func (h *ResourceHandler) CreateTask(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	t := model.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	}
	if req.DueDate != nil {
		d, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
			return
		}
		t.DueDate = &d
	}
	if err := h.tasks.Create(c.Request.Context(), &t); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *ResourceHandler) ListTasks(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	tasks, err := h.tasks.List(c.Request.Context(), projectID, c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *ResourceHandler) UpdateTask(c *gin.Context) {
	h.update(c, func(projectID, id int, fields map[string]any) (any, error) {
		return h.tasks.Update(c.Request.Context(), projectID, id, fields)
	}, []string{"title", "description", "category", "priority", "status", "due_date"})
}

func (h *ResourceHandler) DeleteTask(c *gin.Context) {
	h.delete(c, func(projectID, id int) error {
		return h.tasks.Delete(c.Request.Context(), projectID, id)
	})
}

// --- guests ---

type guestRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	PartySize int    `json:"party_size"`
	Dietary   string `json:"dietary"`
	Notes     string `json:"notes"`
}

func (h *ResourceHandler) CreateGuest(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	g := model.Guest{
		ProjectID: projectID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		PartySize: req.PartySize,
		Dietary:   req.Dietary,
		Notes:     req.Notes,
	}
	if err := h.guests.Create(c.Request.Context(), &g); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *ResourceHandler) ListGuests(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	guests, err := h.guests.List(c.Request.Context(), projectID, c.Query("rsvp"))
	if err != nil {
		fail(c, err)
		return
	}
	if guests == nil {
		guests = []model.Guest{}
	}
	c.JSON(http.StatusOK, guests)
}

func (h *ResourceHandler) UpdateGuest(c *gin.Context) {
	h.update(c, func(projectID, id int, fields map[string]any) (any, error) {
		return h.guests.Update(c.Request.Context(), projectID, id, fields)
	}, []string{"name", "email", "phone", "rsvp_status", "party_size", "dietary", "notes"})
}

func (h *ResourceHandler) DeleteGuest(c *gin.Context) {
	h.delete(c, func(projectID, id int) error {
		return h.guests.Delete(c.Request.Context(), projectID, id)
	})
}

// POST /api/projects/:id/guests/export renders the guest list to XLSX and
// hands back a one-hour download name.
func (h *ResourceHandler) ExportGuests(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	name, err := h.exports.ExportGuests(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": name})
}

// GET /api/files/:name
func (h *ResourceHandler) DownloadFile(c *gin.Context) {
	path, err := h.exports.Path(c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.FileAttachment(path, "guests.xlsx")
}

// --- vendors ---

type vendorRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
	Notes    string `json:"notes"`
}

func (h *ResourceHandler) CreateVendor(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	v := model.Vendor{
		ProjectID: projectID,
		Name:      req.Name,
		Category:  req.Category,
		Email:     req.Email,
		Phone:     req.Phone,
		Website:   req.Website,
		Notes:     req.Notes,
	}
	if err := h.vendors.Create(c.Request.Context(), &v); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *ResourceHandler) ListVendors(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	vendors, err := h.vendors.List(c.Request.Context(), projectID, c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	if vendors == nil {
		vendors = []model.Vendor{}
	}
	c.JSON(http.StatusOK, vendors)
}

func (h *ResourceHandler) UpdateVendor(c *gin.Context) {
	h.update(c, func(projectID, id int, fields map[string]any) (any, error) {
		return h.vendors.Update(c.Request.Context(), projectID, id, fields)
	}, []string{"name", "category", "email", "phone", "website", "status", "notes"})
}

func (h *ResourceHandler) DeleteVendor(c *gin.Context) {
	h.delete(c, func(projectID, id int) error {
		return h.vendors.Delete(c.Request.Context(), projectID, id)
	})
}

// --- budget items ---

type budgetItemRequest struct {
	Category      string   `json:"category" binding:"required"`
	Percent       float64  `json:"percent"`
	HardCap       *float64 `json:"hard_cap,omitempty"`
	EstimatedCost float64  `json:"estimated_cost"`
	ActualCost    *float64 `json:"actual_cost,omitempty"`
}

func (h *ResourceHandler) CreateBudgetItem(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	var req budgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	item := model.BudgetItem{
		ProjectID:     projectID,
		Category:      req.Category,
		Percent:       req.Percent,
		HardCap:       req.HardCap,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
	}
	if err := h.budget.Create(c.Request.Context(), &item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler) ListBudgetItems(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	items, err := h.budget.List(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	if items == nil {
		items = []model.BudgetItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *ResourceHandler) UpdateBudgetItem(c *gin.Context) {
	h.update(c, func(projectID, id int, fields map[string]any) (any, error) {
		return h.budget.Update(c.Request.Context(), projectID, id, fields)
	}, []string{"category", "percent", "hard_cap", "estimated_cost", "actual_cost"})
}

func (h *ResourceHandler) DeleteBudgetItem(c *gin.Context) {
	h.delete(c, func(projectID, id int) error {
		return h.budget.Delete(c.Request.Context(), projectID, id)
	})
}

// --- shared plumbing ---

func (h *ResourceHandler) update(c *gin.Context, do func(projectID, id int, fields map[string]any) (any, error), allowed []string) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	id, ok := pathID(c, "itemID")
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	allowedSet := map[string]bool{}
	for _, k := range allowed {
		allowedSet[k] = true
	}
	for k := range fields {
		if !allowedSet[k] {
			delete(fields, k)
		}
	}
	out, err := do(projectID, id, fields)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ResourceHandler) delete(c *gin.Context, do func(projectID, id int) error) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	id, ok := pathID(c, "itemID")
	if !ok {
		return
	}
	if err := do(projectID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
