package handler

import (
	"errors"
	"net/http"
	"strconv"

	"planhaus/internal/logger"
	"planhaus/internal/service"

	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// requireProject checks the path project id against the caller's access and
// aborts with 403/404 when it fails.
func requireProject(c *gin.Context, projects *service.ProjectService) (int, bool) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return 0, false
	}
	userID := c.GetInt("user_id")
	allowed, err := projects.CanAccess(c.Request.Context(), projectID, userID)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return 0, false
	}
	if err != nil {
		logger.Error("project.access_check_failed", "project_id", projectID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return 0, false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access to this project"})
		return 0, false
	}
	return projectID, true
}

// fail translates service errors into HTTP responses.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrTableFull):
		c.JSON(http.StatusConflict, gin.H{"error": "table is at capacity"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
