package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/admetrics/internal/adsource"
	"github.com/ignite/admetrics/internal/analytics"
	"github.com/ignite/admetrics/internal/api"
	"github.com/ignite/admetrics/internal/config"
	"github.com/ignite/admetrics/internal/domain"
	"github.com/ignite/admetrics/internal/pkg/logger"
	"github.com/ignite/admetrics/internal/pkg/retry"
	"github.com/ignite/admetrics/internal/pkg/telemetry"
	"github.com/ignite/admetrics/internal/service/datasync"
	"github.com/ignite/admetrics/internal/store"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale/stub processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	// Load configuration
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	// Refuse to start with unusable credentials rather than failing on the
	// first scheduled sync.
	built, err := cfg.BuildSources()
	if err != nil {
		log.Fatalf("Source configuration invalid: %v", err)
	}
	sources := make([]*domain.Source, len(built))
	for i := range built {
		sources[i] = &built[i]
	}
	log.Printf("Loaded %d data sources from %s", len(sources), configPath)

	baseURLs, err := cfg.PlatformBaseURLs()
	if err != nil {
		log.Fatalf("Platform configuration invalid: %v", err)
	}

	met := telemetry.New()

	policy := retry.New(cfg.Sync.MaxRetries, cfg.Sync.BackoffBase())
	policy.Observer = met

	client := adsource.NewClient(adsource.Config{
		Timeout:  cfg.Sync.RequestTimeout(),
		BaseURLs: baseURLs,
	}, policy)
	client.SetRecorder(met)

	campaigns := store.New()

	coordinator := datasync.NewCoordinator(sources, client, campaigns, datasync.Config{
		Concurrency: cfg.Sync.Concurrency,
	})
	coordinator.SetTelemetry(met)

	server := api.NewServer(cfg.Server, coordinator, analytics.NewService(campaigns), campaigns, met.Handler())

	ctx, cancel := context.WithCancel(context.Background())

	// Scheduled syncs keep the snapshot fresh without operator action
	if cfg.Sync.IntervalSeconds > 0 {
		go coordinator.Start(ctx, cfg.Sync.Interval(), cfg.Sync.LookbackDays)
		log.Printf("Scheduled sync started (every %s, lookback %dd)", cfg.Sync.Interval(), cfg.Sync.LookbackDays)
	}

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", host, port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	// Cancel background tasks
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
