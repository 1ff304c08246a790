package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"planhaus/internal/logger"
	"planhaus/internal/model"
	"planhaus/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	ai       *service.AIService
	projects *service.ProjectService
	tasks    *service.TaskService
	guests   *service.GuestService
}

func NewChatHandler(ai *service.AIService, projects *service.ProjectService,
	tasks *service.TaskService, guests *service.GuestService) *ChatHandler {
	return &ChatHandler{ai: ai, projects: projects, tasks: tasks, guests: guests}
}

type sseWriter struct {
	w http.Flusher
	f gin.ResponseWriter
}

func (s *sseWriter) event(name string, data interface{}) {
	j, _ := json.Marshal(data)
	fmt.Fprintf(s.f, "event: %s\ndata: %s\n\n", name, j)
	s.w.Flush()
}

func (s *sseWriter) token(t string) {
	s.event("token", map[string]string{"token": t})
}

func (s *sseWriter) done() {
	s.event("done", map[string]string{})
}

// ChatStream answers over SSE, token by token. When the request names a
// project the caller can access, a compact state summary is fed to the model
// as grounding context.
func (h *ChatHandler) ChatStream(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ctx := c.Request.Context()
	uid := c.GetInt("user_id")
	sse := &sseWriter{w: c.Writer, f: c.Writer}

	pctx := h.projectContext(ctx, uid, req.ProjectID)
	logger.Info("chat.stream", "uid", uid, "project_id", req.ProjectID, "text", req.Text)

	if _, err := h.ai.StreamAssistant(ctx, pctx, req.History, req.Text, sse.token); err != nil {
		logger.Error("chat stream failed", "err", err)
		sse.token("Sorry, the assistant is unavailable right now. Please try again later.")
	}
	sse.done()
}

// Suggestions returns the model's top next actions for a project.
func (h *ChatHandler) Suggestions(c *gin.Context) {
	projectID, ok := requireProject(c, h.projects)
	if !ok {
		return
	}
	uid := c.GetInt("user_id")
	summary := h.projectContext(c.Request.Context(), uid, projectID)
	if summary == "" {
		summary = "A new wedding project with no details yet."
	}
	out, err := h.ai.SuggestNextSteps(c.Request.Context(), summary)
	if err != nil {
		logger.Error("suggestions failed", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable"})
		return
	}
	c.JSON(http.StatusOK, model.ChatResponse{Content: out})
}

// projectContext builds a short plain-text summary of the project for the
// system prompt. Missing access or lookup errors just mean no context.
func (h *ChatHandler) projectContext(ctx context.Context, userID, projectID int) string {
	if projectID == 0 {
		return ""
	}
	if ok, err := h.projects.CanAccess(ctx, projectID, userID); err != nil || !ok {
		return ""
	}
	p, err := h.projects.Get(ctx, projectID)
	if err != nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", p.Title)
	if p.WeddingDate != nil {
		fmt.Fprintf(&b, "Wedding date: %s\n", p.WeddingDate.Format("2006-01-02"))
	}
	if p.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", p.Location)
	}
	if p.GuestCount > 0 {
		fmt.Fprintf(&b, "Expected guests: %d\n", p.GuestCount)
	}

	if tasks, err := h.tasks.List(ctx, projectID, "pending"); err == nil && len(tasks) > 0 {
		b.WriteString("Open tasks:\n")
		for i, t := range tasks {
			if i == 10 {
				fmt.Fprintf(&b, "- and %d more\n", len(tasks)-i)
				break
			}
			if t.DueDate != nil {
				fmt.Fprintf(&b, "- %s (due %s)\n", t.Title, t.DueDate.Format("2006-01-02"))
			} else {
				fmt.Fprintf(&b, "- %s\n", t.Title)
			}
		}
	}
	if guests, err := h.guests.List(ctx, projectID, ""); err == nil && len(guests) > 0 {
		accepted := 0
		for _, g := range guests {
			if g.RSVPStatus == model.RSVPAccepted {
				accepted++
			}
		}
		fmt.Fprintf(&b, "Guest list: %d invited, %d accepted\n", len(guests), accepted)
	}
	return b.String()
}
