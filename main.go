package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/zoec98/imageedit/config"
	"github.com/zoec98/imageedit/database"
	"github.com/zoec98/imageedit/handlers"
	"github.com/zoec98/imageedit/imagegen"
	"github.com/zoec98/imageedit/media"
	"github.com/zoec98/imageedit/repository"
	"github.com/zoec98/imageedit/services"
	"github.com/zoec98/imageedit/workers"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.AssetsDir, cfg.PromptsDir, cfg.StylesDir, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database schema: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to get sql.DB handle: %v", err)
	}
	defer sqlDB.Close()

	uploadRepo := repository.NewUploadRepository(db)
	generationRepo := repository.NewGenerationRepository(db)

	cleanDir := ""
	if cfg.SaveCleanCopy {
		cleanDir = cfg.CleanCopyDir
	}
	archiver, err := media.NewArchiver(cfg.AssetsDir, cleanDir)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize asset archiver: %v", err)
	}

	promptStore, err := services.NewTextStore(cfg.PromptsDir)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize prompt store: %v", err)
	}
	styleStore, err := services.NewTextStore(cfg.StylesDir)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize style store: %v", err)
	}

	provider := imagegen.NewFalClient(cfg.FalKey, cfg.FalBaseURL)
	generationService := services.NewGenerationService(uploadRepo, generationRepo, provider, archiver)

	prober := &http.Client{Timeout: cfg.ProbeTimeout}
	pruner := workers.NewPruner(sqlDB, prober, cfg.PruneWorkers, cfg.PruneInterval)
	pruner.Start()
	defer pruner.Stop()

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Startup model: %s", cfg.StartupModel)
	log.Printf("Prune sweep: %d worker(s), %s probe timeout", cfg.PruneWorkers, cfg.ProbeTimeout)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Minute))
	r.Use(corsHandler.Handler)

	uploadHandler := &handlers.UploadHandler{Uploads: uploadRepo}
	generationHandler := &handlers.GenerationHandler{Service: generationService}
	historyHandler := &handlers.HistoryHandler{Generations: generationRepo}
	promptHandler := &handlers.TextStoreHandler{Store: promptStore}
	styleHandler := &handlers.TextStoreHandler{Store: styleStore}
	assetHandler := &handlers.AssetHandler{AssetsDir: cfg.AssetsDir}

	r.Route("/api", func(r chi.Router) {
		r.Route("/uploads", func(r chi.Router) {
			r.Post("/", uploadHandler.RecordUpload)
			r.Get("/", uploadHandler.ListUploads)
			r.Post("/resolve", uploadHandler.ResolveUploads)
		})

		r.Post("/generate", generationHandler.Generate)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", historyHandler.ListRequests)
			r.Route("/{request_id}", func(r chi.Router) {
				r.Get("/", historyHandler.GetRequest)
				r.Delete("/", historyHandler.DeleteRequest)
				r.Get("/images", historyHandler.ListRequestImages)
			})
		})

		textStoreRoutes := func(h *handlers.TextStoreHandler) func(chi.Router) {
			return func(r chi.Router) {
				r.Get("/", h.List)
				r.Post("/", h.Create)
				r.Route("/{name}", func(r chi.Router) {
					r.Get("/", h.Get)
					r.Put("/", h.Update)
					r.Delete("/", h.Delete)
				})
			}
		}
		r.Route("/prompts", textStoreRoutes(promptHandler))
		r.Route("/styles", textStoreRoutes(styleHandler))

		r.Get("/assets", assetHandler.ListAssets)
	})

	log.Printf("Listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatalf("FATAL: Server error: %v", err)
	}
}
