package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunwatch/landing-api/internal/infra/database"
	"github.com/sunwatch/landing-api/internal/infra/http/handlers"
	"github.com/sunwatch/landing-api/internal/infra/http/middleware"
	"github.com/sunwatch/landing-api/internal/infra/integration/meta"
	"github.com/sunwatch/landing-api/internal/infra/mail"
	"github.com/sunwatch/landing-api/internal/usecase"
)

func main() {
	godotenv.Load()

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./waitlist.db"
	}

	db, err := database.NewDBConnection(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Connected to the SQLite database.")

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)

	// 2. Integrations
	metaClient := meta.NewClient(
		os.Getenv("META_GRAPH_URL"),
		os.Getenv("META_DATASET_ID"),
		os.Getenv("META_ACCESS_TOKEN"),
	)

	var forwarder usecase.ConversionForwarder
	if metaClient.Configured() {
		forwarder = metaClient
	} else {
		log.Println("meta: conversion forwarding disabled (META_DATASET_ID / META_ACCESS_TOKEN not set)")
	}

	var notifier usecase.SignupNotifier
	if host := os.Getenv("MAIL_HOST"); host != "" {
		port := 587
		if p, err := strconv.Atoi(os.Getenv("MAIL_PORT")); err == nil {
			port = p
		}
		notifier = mail.NewEmailSender(
			host, port,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"), os.Getenv("MAIL_TO"),
		)
	}

	// 3. UseCases
	submitLeadUC := usecase.NewSubmitLeadUseCase(leadRepo, forwarder, notifier)
	statsUC := usecase.NewGetStatsUseCase(leadRepo)

	// 4. Handlers
	waitlistHandler := handlers.NewWaitlistHandler(submitLeadUC)
	statsHandler := handlers.NewStatsHandler(statsUC)
	qualityHandler := handlers.NewQualityHandler(metaClient)
	healthHandler := handlers.NewHealthHandler(db, metaClient.Configured())

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))
	r.Use(middleware.Metrics)

	r.Post("/api/waitlist", waitlistHandler.Handle)
	r.Get("/api/stats", statsHandler.Handle)
	r.Get("/api/fb-quality", qualityHandler.Handle)
	r.Get("/api/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/dashboard", servePage("dashboard.html"))
	r.Get("/", servePage("index.html"))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web"))))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Server running on http://localhost:%s", port)
		log.Printf("Dashboard available at http://localhost:%s/dashboard", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	if err := db.Close(); err != nil {
		log.Printf("closing database: %v", err)
	}
	log.Println("Database connection closed.")
}

func servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join("web", name))
	}
}
