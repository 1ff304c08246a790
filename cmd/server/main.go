package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"planhaus/internal/config"
	"planhaus/internal/handler"
	"planhaus/internal/logger"
	"planhaus/internal/middleware"
	"planhaus/internal/ratelimit"
	"planhaus/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	var limiter ratelimit.Store
	if cfg.Redis.Addr != "" {
		rs, err := ratelimit.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			slog.Error("redis connect failed", "err", err)
			os.Exit(1)
		}
		limiter = rs
		slog.Info("rate limiting via redis", "addr", cfg.Redis.Addr)
	} else {
		mem := ratelimit.NewMemoryStore()
		defer mem.Close()
		limiter = mem
	}

	authSvc := service.NewAuthService(db)
	projectSvc := service.NewProjectService(db)
	intakeSvc := service.NewIntakeService(db)
	prefillSvc := service.NewPrefillService(db, intakeSvc)
	taskSvc := service.NewTaskService(db)
	guestSvc := service.NewGuestService(db)
	vendorSvc := service.NewVendorService(db)
	budgetSvc := service.NewBudgetService(db)
	seatingSvc := service.NewSeatingService(db)
	aiSvc := service.NewAIService(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
	exportSvc, err := service.NewExportService("", guestSvc)
	if err != nil {
		slog.Error("export dir init failed", "err", err)
		os.Exit(1)
	}

	secret := []byte(cfg.Server.JWTSecret)
	authH := handler.NewAuthHandler(authSvc, secret)
	projectH := handler.NewProjectHandler(projectSvc)
	intakeH := handler.NewIntakeHandler(intakeSvc)
	prefillH := handler.NewPrefillHandler(prefillSvc, projectSvc)
	resourceH := handler.NewResourceHandler(taskSvc, guestSvc, vendorSvc, budgetSvc, exportSvc, projectSvc)
	seatingH := handler.NewSeatingHandler(seatingSvc, projectSvc)
	chatH := handler.NewChatHandler(aiSvc, projectSvc, taskSvc, guestSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	loginLimit := middleware.RateLimit(limiter, "login", cfg.RateLimit.LoginPerMinute, time.Minute)
	chatLimit := middleware.RateLimit(limiter, "chat", cfg.RateLimit.ChatPerMinute, time.Minute)

	r.POST("/api/register", loginLimit, authH.Register)
	r.POST("/api/login", loginLimit, authH.Login)

	api := r.Group("/api", middleware.JWTAuth(secret))

	api.POST("/projects", projectH.Create)
	api.GET("/projects", projectH.List)
	api.GET("/projects/:id", projectH.Get)
	api.PATCH("/projects/:id", projectH.Update)
	api.DELETE("/projects/:id", projectH.Delete)
	api.POST("/projects/:id/invites", projectH.Invite)
	api.POST("/invites/accept", projectH.AcceptInvite)

	api.GET("/intake", intakeH.Get)
	api.PUT("/intake/steps/:step", intakeH.SaveStep)
	api.POST("/intake/submit", intakeH.Submit)
	api.GET("/intake/status", intakeH.Status)

	api.GET("/projects/:id/prefill", prefillH.Preview)
	api.POST("/projects/:id/prefill/apply", prefillH.Apply)

	api.POST("/projects/:id/tasks", resourceH.CreateTask)
	api.GET("/projects/:id/tasks", resourceH.ListTasks)
	api.PATCH("/projects/:id/tasks/:itemID", resourceH.UpdateTask)
	api.DELETE("/projects/:id/tasks/:itemID", resourceH.DeleteTask)

	api.POST("/projects/:id/guests", resourceH.CreateGuest)
	api.GET("/projects/:id/guests", resourceH.ListGuests)
	api.PATCH("/projects/:id/guests/:itemID", resourceH.UpdateGuest)
	api.DELETE("/projects/:id/guests/:itemID", resourceH.DeleteGuest)
	api.POST("/projects/:id/guests/export", resourceH.ExportGuests)

	api.POST("/projects/:id/vendors", resourceH.CreateVendor)
	api.GET("/projects/:id/vendors", resourceH.ListVendors)
	api.PATCH("/projects/:id/vendors/:itemID", resourceH.UpdateVendor)
	api.DELETE("/projects/:id/vendors/:itemID", resourceH.DeleteVendor)

	api.POST("/projects/:id/budget-items", resourceH.CreateBudgetItem)
	api.GET("/projects/:id/budget-items", resourceH.ListBudgetItems)
	api.PATCH("/projects/:id/budget-items/:itemID", resourceH.UpdateBudgetItem)
	api.DELETE("/projects/:id/budget-items/:itemID", resourceH.DeleteBudgetItem)

	api.POST("/projects/:id/tables", seatingH.CreateTable)
	api.GET("/projects/:id/tables", seatingH.ListTables)
	api.PATCH("/projects/:id/tables/:tableID", seatingH.UpdateTable)
	api.DELETE("/projects/:id/tables/:tableID", seatingH.DeleteTable)
	api.POST("/projects/:id/assignments", seatingH.AssignGuest)
	api.GET("/projects/:id/assignments", seatingH.ListAssignments)
	api.DELETE("/projects/:id/assignments/:guestID", seatingH.RemoveGuest)

	api.POST("/chat/stream", chatLimit, chatH.ChatStream)
	api.GET("/projects/:id/suggestions", chatH.Suggestions)
	api.GET("/files/:name", resourceH.DownloadFile)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
