package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

// Stub ad platform reporting API for local development. It answers the same
// GET /v1/campaigns?account_id=&date= endpoint every real platform exposes,
// with hardcoded campaign numbers, so the server can run full sync cycles
// without real credentials.
//
// Point the sync at it with e.g.:
//
//	GOOGLE_ADS_BASE_URL=http://localhost:9100
//	FACEBOOK_ADS_BASE_URL=http://localhost:9100

func main() {
	log.Println("╔════════════════════════════════════════════════════════════╗")
	log.Println("║  WARNING: This is a STUB reporting API for local use ONLY. ║")
	log.Println("║  All campaign numbers are HARDCODED placeholders.          ║")
	log.Println("╚════════════════════════════════════════════════════════════╝")

	// Accounts listed here answer with STUB_FAIL_STATUS instead of data,
	// for exercising degraded sync runs end to end.
	failAccounts := map[string]bool{}
	for _, a := range strings.Split(os.Getenv("STUB_FAIL_ACCOUNTS"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			failAccounts[a] = true
		}
	}
	failStatus := http.StatusServiceUnavailable
	if v := os.Getenv("STUB_FAIL_STATUS"); v != "" {
		fmt.Sscanf(v, "%d", &failStatus)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"admetrics-stub-api","warning":"THIS IS A STUB - responses are hardcoded"}`))
	})

	mux.HandleFunc("GET /v1/campaigns", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "missing bearer token"}`))
			return
		}

		account := r.URL.Query().Get("account_id")
		date := r.URL.Query().Get("date")
		if account == "" || date == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "account_id and date are required"}`))
			return
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "date must be YYYY-MM-DD"}`))
			return
		}

		if failAccounts[account] {
			w.WriteHeader(failStatus)
			w.Write([]byte(`{"error": "stub configured to fail this account"}`))
			return
		}

		// Two campaigns per day: one fully reported, one without conversion
		// or revenue data (plenty of platforms omit those).
		fmt.Fprintf(w, `{
	"campaigns": [
		{
			"id": "campaign_1_%[1]s_%[2]s",
			"name": "Summer Sale - Search",
			"spend": "1000.00",
			"impressions": 50000,
			"clicks": 1000,
			"conversions": 25,
			"revenue": "2500.00",
			"currency": "USD"
		},
		{
			"id": "campaign_2_%[1]s_%[2]s",
			"name": "Summer Sale - Display",
			"spend": "2000.00",
			"impressions": 100000,
			"clicks": 2500,
			"conversions": 50
		}
	]
}`, account, date)
	})

	port := os.Getenv("STUB_PORT")
	if port == "" {
		port = "9100"
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      stubHeaders(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Stub reporting API listening on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func stubHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Server-Identity", "admetrics-stub-api")
		w.Header().Set("X-Server-Warning", "STUB - hardcoded responses only")
		next.ServeHTTP(w, r)
	})
}
