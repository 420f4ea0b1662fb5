package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/username/nestegg/backend/src/config"
	"github.com/username/nestegg/backend/src/database"
	"github.com/username/nestegg/backend/src/handlers"
	"github.com/username/nestegg/backend/src/logger"
	"github.com/username/nestegg/backend/src/scheduler"
	"github.com/username/nestegg/backend/src/services"
	"github.com/username/nestegg/backend/src/storage"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Nestegg backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	snapshotStore := storage.NewSnapshotStore(config.Cfg.SnapshotPath)
	historyStore := storage.NewHistoryStore(config.Cfg.HistoryPath)

	quoteService := services.NewQuoteService(
		database.DB,
		config.Cfg.PriceCacheTTL,
		config.Cfg.FxCacheTTL,
		config.Cfg.DefaultFxRate,
	)
	portfolioService := services.NewPortfolioService(quoteService)
	ladderService := services.NewLadderService()
	netWorthService := services.NewNetWorthService(portfolioService)
	analysisService := services.NewAnalysisService(quoteService)

	stateService := services.NewStateService(snapshotStore, historyStore, config.Cfg.TargetNetWorth)
	if err := stateService.LoadSnapshot(); err != nil {
		// A bad snapshot file is not fatal; the dashboard starts from
		// defaults and the user gets fresh forms.
		logger.L.Warn("Could not load snapshot, starting from defaults", "error", err)
	}

	dashboardHandler := handlers.NewDashboardHandler(stateService, netWorthService, quoteService, config.Cfg.FxPair)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, stateService)
	ladderHandler := handlers.NewLadderHandler(ladderService, stateService, quoteService, config.Cfg.FxPair)
	netWorthHandler := handlers.NewNetWorthHandler(netWorthService, stateService, quoteService, config.Cfg.FxPair)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, stateService, quoteService, config.Cfg.FxPair)
	stateHandler := handlers.NewStateHandler(stateService)

	refreshScheduler := scheduler.New(stateService, netWorthService, quoteService, config.Cfg.FxPair)
	if err := refreshScheduler.Start(config.Cfg.RefreshInterval); err != nil {
		logger.L.Error("Failed to start refresh scheduler", "error", err)
	}
	defer refreshScheduler.Stop()

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.Cfg.FrontendBaseURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Nestegg Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard/goal", dashboardHandler.HandleGetGoal)
		r.Post("/analysis", analysisHandler.HandleAnalyze)
		r.Post("/ladder/simulate", ladderHandler.HandleSimulate)
		r.Post("/networth/evaluate", netWorthHandler.HandleEvaluate)
		r.Get("/fx", netWorthHandler.HandleGetFx)
		r.Post("/portfolio/evaluate", portfolioHandler.HandleEvaluate)
		r.Get("/state", stateHandler.HandleGetState)
		r.Put("/state", stateHandler.HandleUpdateState)
		r.Post("/save", stateHandler.HandleSave)
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
