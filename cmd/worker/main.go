package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/osintkit/phone-intel/internal/platform/cache"
	"github.com/osintkit/phone-intel/internal/platform/logger"
	"github.com/osintkit/phone-intel/internal/platform/storage/scylla"
	"github.com/osintkit/phone-intel/internal/provider"
	"github.com/osintkit/phone-intel/internal/service"
)

// One-shot resolver for operators: runs the full lookup pipeline for a
// single number and prints the aggregated result.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	phonePtr := flag.String("phone", "", "The phone number to resolve (E.164 format)")
	flag.Parse()

	if *phonePtr == "" {
		log.Fatal("❌ Error: You must provide a phone number.\nUsage: go run cmd/worker/main.go -phone=+56912345678")
	}

	log.Printf("🐝 Phone Intel Worker starting for target: %s", *phonePtr)

	scyllaHost := os.Getenv("SCYLLA_HOST")
	keyspace := os.Getenv("SCYLLA_KEYSPACE")
	if scyllaHost == "" {
		scyllaHost = "localhost"
	}

	session, err := scylla.Connect(keyspace, scyllaHost)
	if err != nil {
		log.Fatalf("❌ DB Connection Failed: %v", err)
	}
	defer session.Close()

	zlog := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	defer zlog.Sync()

	repo := scylla.NewScyllaRepository(session)

	// A one-shot run has no cache to warm; the in-memory store only
	// deduplicates provider calls within this process.
	store := cache.NewMemoryStore(cache.DefaultTTL * time.Second)

	clients := []provider.Client{
		provider.NewNumverify(os.Getenv("NUMVERIFY_API_KEY"), store, zlog, nil),
		provider.NewFraudScore(os.Getenv("FRAUDSCORE_API_KEY"), store, zlog, nil),
		provider.NewTellows(os.Getenv("TELLOWS_API_KEY"), store, zlog, nil),
		provider.NewTwilio(),
	}

	geocoder := provider.NewGeocoder(os.Getenv("OPENCAGE_API_KEY"), zlog)

	svc := service.NewService(repo, store, clients, geocoder, os.Getenv("APP_SALT_SECRET"), zlog, nil)

	res, err := svc.Lookup(context.Background(), *phonePtr)
	if err != nil {
		log.Fatalf("❌ Lookup Failed: %v", err)
	}

	out, _ := json.MarshalIndent(res, "", "  ")
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))

	log.Println("✅ Success! Result stored in ScyllaDB and printed above.")
}
