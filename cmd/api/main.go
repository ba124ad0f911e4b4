package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	middleware "github.com/osintkit/phone-intel/internal/platform/http/middleware"

	"github.com/osintkit/phone-intel/internal/platform/cache"
	httpHandler "github.com/osintkit/phone-intel/internal/platform/http"
	"github.com/osintkit/phone-intel/internal/platform/logger"
	"github.com/osintkit/phone-intel/internal/platform/metrics"
	"github.com/osintkit/phone-intel/internal/platform/storage/scylla"
	"github.com/osintkit/phone-intel/internal/provider"
	"github.com/osintkit/phone-intel/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	apiKey := os.Getenv("API_MASTER_KEY")
	if apiKey == "" {
		log.Fatal("❌ API_MASTER_KEY is required in .env")
	}

	scyllaHost := os.Getenv("SCYLLA_HOST")
	keyspace := os.Getenv("SCYLLA_KEYSPACE")
	saltSecret := os.Getenv("APP_SALT_SECRET")
	port := os.Getenv("HTTP_PORT")

	if scyllaHost == "" {
		scyllaHost = "localhost"
	}
	if port == "" {
		port = ":8080"
	}

	zlog := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	defer zlog.Sync()

	log.Println("🛡️  Starting Phone Intel API...")

	store := buildCache(zlog)

	session, err := scylla.Connect(keyspace, scyllaHost)
	if err != nil {
		log.Fatalf("❌ Error connecting to ScyllaDB: %v", err)
	}
	defer session.Close()

	repo := scylla.NewScyllaRepository(session)
	m := metrics.New()

	clients := []provider.Client{
		provider.NewNumverify(os.Getenv("NUMVERIFY_API_KEY"), store, zlog, m),
		provider.NewFraudScore(os.Getenv("FRAUDSCORE_API_KEY"), store, zlog, m),
		provider.NewTellows(os.Getenv("TELLOWS_API_KEY"), store, zlog, m),
		provider.NewTwilio(),
	}

	geocoder := provider.NewGeocoder(os.Getenv("OPENCAGE_API_KEY"), zlog)

	svc := service.NewService(repo, store, clients, geocoder, saltSecret, zlog, m)

	handler := httpHandler.NewHandler(svc, zlog)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(apiKey))
		handler.RegisterRoutes(r)
	})

	log.Printf("🚀 Server listening on http://localhost%s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		log.Fatalf("❌ HTTP server error: %v", err)
	}
}

func buildCache(zlog *zap.Logger) cache.Store {
	ttl := cache.DefaultTTL * time.Second
	if hours, err := strconv.Atoi(os.Getenv("CACHE_TTL_HOURS")); err == nil && hours > 0 {
		ttl = time.Duration(hours) * time.Hour
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		log.Printf("✅ Using Redis cache at %s", addr)
		return cache.NewRedisStore(addr, ttl, zlog)
	}

	log.Println("⚠️  REDIS_ADDR not set, falling back to in-memory cache")
	return cache.NewMemoryStore(ttl)
}
