package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/okamel/cvbank/config"
	"github.com/okamel/cvbank/internal/api/handlers"
	"github.com/okamel/cvbank/internal/api/middleware"
	"github.com/okamel/cvbank/internal/api/routes"
	"github.com/okamel/cvbank/internal/cache"
	"github.com/okamel/cvbank/internal/logger"
	"github.com/okamel/cvbank/internal/repositories"
	"github.com/okamel/cvbank/internal/repositories/memory"
	mongorepo "github.com/okamel/cvbank/internal/repositories/mongo"
	pgrepo "github.com/okamel/cvbank/internal/repositories/postgres"
	"github.com/okamel/cvbank/internal/services"
	"github.com/okamel/cvbank/internal/storage"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()
	l := logger.New()

	// Record store backend, chosen once; call sites never branch on it.
	var cvRepo repositories.CVRepository
	var userRepo repositories.UserRepository

	backend := envOr("STORAGE_BACKEND", "memory")
	switch backend {
	case "postgres":
		if err := config.InitPostgres(); err != nil {
			log.Fatalf("PostgreSQL init error: %v", err)
		}
		cvRepo = pgrepo.NewCVRepo(config.PostgresDB)
		userRepo = pgrepo.NewUserRepo(config.PostgresDB)
	case "mongo":
		if err := config.InitMongo(); err != nil {
			log.Fatalf("MongoDB init error: %v", err)
		}
		if err := config.EnsureMongoIndexes(); err != nil {
			log.Fatalf("MongoDB index error: %v", err)
		}
		db := config.MongoDatabase()
		cvRepo = mongorepo.NewCVRepo(db)
		userRepo = mongorepo.NewUserRepo(db)
	case "memory":
		cvRepo = memory.NewCVStore()
		userRepo = memory.NewUserStore()
	default:
		log.Fatalf("unknown STORAGE_BACKEND %q", backend)
	}

	// File strategy: blob store (local disk or GCS) or inline base64.
	strategy := services.StrategyBlob
	var blobs storage.Store
	switch fs := envOr("FILE_STRATEGY", "local"); fs {
	case "inline":
		strategy = services.StrategyInline
	case "gcs":
		bucket := os.Getenv("GCS_BUCKET")
		if bucket == "" {
			log.Fatal("GCS_BUCKET is required when FILE_STRATEGY=gcs")
		}
		st, err := storage.NewGCSStore(context.Background(), bucket)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		blobs = st
	case "local":
		st, err := storage.NewLocalStore(envOr("UPLOAD_DIR", "uploads"))
		if err != nil {
			log.Fatalf("upload dir init error: %v", err)
		}
		blobs = st
	default:
		log.Fatalf("unknown FILE_STRATEGY %q", fs)
	}

	// Optional Redis-backed list cache.
	var listCache cache.Cache
	if os.Getenv("REDIS_ADDR") != "" || os.Getenv("REDIS_URL") != "" {
		if err := config.InitRedis(); err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		listCache = cache.NewRedisCache(config.RedisClient)
	}
	cacheTTL := 30 * time.Second
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cacheTTL = time.Duration(n) * time.Second
		}
	}

	listLimit := 50
	if v := os.Getenv("CV_LIST_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			listLimit = n
		}
	}

	cvSvc := services.NewCVService(cvRepo, blobs, strategy, listCache, cacheTTL, listLimit)
	adminSvc := services.NewAdminService(userRepo, envOr("ADMIN_USERNAME", "admin"), os.Getenv("ADMIN_PASSWORD_HASH"))

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		CV:    handlers.NewCVHandler(cvSvc),
		File:  handlers.NewFileHandler(cvSvc),
		Admin: handlers.NewAdminHandler(adminSvc),
	})

	port := envOr("PORT", "8080")
	l.WithField("port", port).WithField("backend", backend).Info("cvbank listening")
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
