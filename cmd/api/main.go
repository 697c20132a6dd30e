//	@title			SiteKit Assets API
//	@version		1.0
//	@description	Versioned site asset configuration: logo, background, ambient audio, showcase gallery, and reviews.
//
//	@host		localhost:8080
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/sitekit/service/internal/assets"
	"github.com/sitekit/service/internal/config"
	"github.com/sitekit/service/internal/db"
	appMiddleware "github.com/sitekit/service/internal/middleware"
	"github.com/sitekit/service/internal/response"
	"github.com/sitekit/service/internal/reviews"
	"github.com/sitekit/service/internal/storage"
	"github.com/sitekit/service/internal/uploads"

	_ "github.com/sitekit/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, verifier, err := buildStorage(cfg)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}
	codec := storage.NewPathCodec(cfg.StorageBucket, cfg.StoragePublicBase)

	// Wire dependencies: repository → service → handler
	configRepo := assets.NewRepository(pool)
	assetsSvc := assets.NewService(configRepo, store, codec)
	assetsHandler := assets.NewHandler(assetsSvc)

	reviewRepo := reviews.NewRepository(pool)
	reviewSvc := reviews.NewService(reviewRepo, configRepo, configRepo)
	reviewHandler := reviews.NewHandler(reviewSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/assets", func(r chi.Router) {
			// Public read surface: clients poll these for version changes.
			r.Get("/logo", assetsHandler.GetLogo)
			r.Get("/audio", assetsHandler.GetAudio)
			r.Get("/background", assetsHandler.GetBackground)
			r.Get("/showcase", assetsHandler.ListShowcase)
			r.Get("/reviews", reviewHandler.List)

			// Mutations require an admin bearer token.
			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.RequireAdmin(cfg.JWTSecret))
				r.Post("/logo", assetsHandler.CommitLogo)
				r.Post("/logo/upload", assetsHandler.SignLogoUpload)
				r.Post("/audio", assetsHandler.CommitAudio)
				r.Post("/audio/upload", assetsHandler.SignAudioUpload)
				r.Post("/background", assetsHandler.CommitBackground)
				r.Post("/background/upload", assetsHandler.SignBackgroundUpload)
				r.Post("/showcase", assetsHandler.UploadShowcase)
				r.Delete("/showcase", assetsHandler.DeleteShowcase)
				r.Post("/reviews", reviewHandler.Add)
				r.Delete("/reviews", reviewHandler.Delete)
			})
		})

		// Direct-upload door for the local backend; the S3 backend presigns
		// URLs instead and never routes bytes through here.
		if verifier != nil {
			uploadHandler := uploads.NewHandler(store, verifier)
			r.Put("/uploads", uploadHandler.Put)
		} else {
			r.Put("/uploads", func(w http.ResponseWriter, _ *http.Request) {
				response.BadRequest(w, "direct uploads go to the presigned URL from the grant")
			})
		}
	})

	// Local backend serves its objects itself; S3 serves them from the bucket.
	if cfg.StorageBackend == "local" {
		fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.StorageLocalRoot)))
		r.Get("/media/*", fileServer.ServeHTTP)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s, storage=%s)", cfg.Port, cfg.AppEnv, cfg.StorageBackend)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}

// buildStorage constructs the configured object storage backend. The
// returned verifier is non-nil only for backends that redeem grants against
// this service's own upload endpoint.
func buildStorage(cfg *config.Config) (storage.Storage, uploads.GrantVerifier, error) {
	switch cfg.StorageBackend {
	case "local":
		local, err := storage.NewLocalStorage(cfg.StorageLocalRoot, cfg.StoragePublicBase, cfg.JWTSecret, cfg.UploadGrantTTL)
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil
	default:
		s3, err := storage.NewMinioStorage(
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.StoragePublicBase,
			cfg.StorageUseSSL,
			cfg.UploadGrantTTL,
		)
		if err != nil {
			return nil, nil, err
		}
		return s3, nil, nil
	}
}
