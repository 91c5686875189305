package main

import (
	"flag"
	stdlog "log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/username/bankstress/src/config"
	"github.com/username/bankstress/src/handlers"
	"github.com/username/bankstress/src/logger"
	"github.com/username/bankstress/src/models"
	"github.com/username/bankstress/src/parsers/balancesheet"
	"github.com/username/bankstress/src/processors"
	"github.com/username/bankstress/src/services"
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

func enableCORS(next http.Handler) http.Handler {
	allowedOrigins := make(map[string]bool, len(config.Cfg.AllowedOrigins))
	for _, o := range config.Cfg.AllowedOrigins {
		allowedOrigins[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runFile is the one-shot mode: stress a balance-sheet CSV from disk with the
// default parameter set and print a console report per shock.
func runFile(path string, stressService services.StressService) {
	f, err := os.Open(path)
	if err != nil {
		stdlog.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	result, err := stressService.RunStress(f, models.DefaultStressParams())
	if err != nil {
		stdlog.Fatalf("Stress run failed: %v", err)
	}
	services.WriteConsoleReport(os.Stdout, result)
}

func main() {
	inputPath := flag.String("input", "", "run a one-shot stress report on a balance-sheet CSV and exit")
	flag.Parse()

	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Bank stress test backend starting...")

	parser := balancesheet.NewParser()
	normalizer := processors.NewNormalizer()

	if *inputPath != "" {
		// File mode has no reason to cache.
		runFile(*inputPath, services.NewStressService(parser, normalizer, nil))
		return
	}

	reportCache := cache.New(config.Cfg.CacheExpiration, config.Cfg.CacheCleanupInterval)
	stressService := services.NewStressService(parser, normalizer, reportCache)
	stressHandler := handlers.NewStressHandler(stressService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", handlers.HandleRoot)
	r.Get("/health", handlers.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/stress", stressHandler.HandleStress)
		r.Post("/stress/upload", stressHandler.HandleStressUpload)
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
