package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/levy-pm/co-moge-zjesc/chat"
	"github.com/levy-pm/co-moge-zjesc/config"
	"github.com/levy-pm/co-moge-zjesc/controllers"
	"github.com/levy-pm/co-moge-zjesc/database"
	"github.com/levy-pm/co-moge-zjesc/jobs"
	"github.com/levy-pm/co-moge-zjesc/llm"
	"github.com/levy-pm/co-moge-zjesc/logger"
	"github.com/levy-pm/co-moge-zjesc/repository"
	"github.com/levy-pm/co-moge-zjesc/routes"
	"github.com/levy-pm/co-moge-zjesc/session"
	"github.com/levy-pm/co-moge-zjesc/templates"
	"github.com/levy-pm/co-moge-zjesc/websearch"
)

func main() {
	logger.Init()
	defer logger.Close()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system env vars")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := database.InitDB(cfg.Postgres)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	recipes := repository.NewRecipeRepository(db)
	feedback := repository.NewFeedbackRepository(db)
	worker := jobs.NewFeedbackWorker(feedback)

	llmClient := llm.NewClient(cfg.LLM)
	if !llmClient.IsConfigured() {
		logger.Warn("LLM_API_KEY not set; AI features will show a configuration error")
	}

	orch := chat.NewOrchestrator(recipes, llmClient, websearch.NewClient())
	machine := chat.NewMachine(orch)

	tmpl, err := templates.Load()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	checker := controllers.NewCredentialChecker(cfg.Admin)
	home := controllers.NewHomeController(recipes, machine, worker, checker, tmpl)
	generate := controllers.NewGenerateController(llmClient)

	sessions := session.NewManager()
	router := routes.SetupRouter(cfg, sessions, home, generate)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	worker.Stop()
}
