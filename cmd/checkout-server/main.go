package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/harshivkrishna/automated-billing-system/internal/aggregate"
	"github.com/harshivkrishna/automated-billing-system/internal/catalog"
	"github.com/harshivkrishna/automated-billing-system/internal/dashboard"
	"github.com/harshivkrishna/automated-billing-system/internal/detect"
	"github.com/harshivkrishna/automated-billing-system/internal/logger"
	"github.com/harshivkrishna/automated-billing-system/internal/metrics"
	"github.com/harshivkrishna/automated-billing-system/internal/pipeline"
	"github.com/harshivkrishna/automated-billing-system/internal/session"
	"github.com/harshivkrishna/automated-billing-system/internal/stream"
)

var (
	// Command-line flags
	httpAddr      = flag.String("http", ":5000", "HTTP server address")
	metricsAddr   = flag.String("metrics", ":9090", "Metrics server address")
	labelsPath    = flag.String("labels", "assets/labels.txt", "Path to labels file")
	productsPath  = flag.String("products", "products.json", "Path to product details JSON")
	threshold     = flag.Float64("threshold", 0.2, "Detection confidence threshold")
	fps           = flag.Int("fps", 15, "Frames per second")
	countInterval = flag.Duration("count-interval", session.DefaultCountInterval, "Minimum time between counted re-observations of a product")
	testMode      = flag.Bool("test-mode", false, "Run with synthetic detections (no camera)")
	logLevel      = flag.String("log-level", "info", "Log level (debug, info, warn, error, silent)")
	logColor      = flag.Bool("log-color", true, "Enable colored log output")
)

func main() {
	flag.Parse()

	level, err := logger.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	logger.Init(level, os.Stderr, *logColor)

	logger.Info("Main", "Checkout server starting...")

	labels, err := catalog.LoadLabels(*labelsPath)
	if err != nil {
		log.Fatalf("Failed to load labels: %v", err)
	}
	products, err := catalog.LoadProducts(*productsPath)
	if err != nil {
		log.Fatalf("Failed to load products: %v", err)
	}
	logger.Info("Main", "Loaded %d labels from %s", labels.Len(), *labelsPath)
	logger.Info("Main", "Loaded %d products from %s", products.Len(), *productsPath)

	m := metrics.New()
	clk := clock.New()

	store := detect.NewSnapshotStore()
	buffer := stream.NewFrameBuffer(stream.DefaultBufferCapacity)
	sess := session.New(*countInterval)

	frames := stream.NewBroadcaster()
	encoder := stream.NewEncoder(buffer, frames, m)
	engine := aggregate.New(store, sess, labels, m, clk, aggregate.DefaultInterval)

	cfg := dashboard.DefaultConfig()
	cfg.Addr = *httpAddr
	broadcaster := dashboard.NewBroadcaster(sess, products, m, clk, cfg.BroadcastInterval)
	server := dashboard.NewServer(cfg, sess, buffer, frames, broadcaster, m)

	ingest := pipeline.New(store, buffer, labels, m)

	encoder.Start()
	engine.Start()
	broadcaster.Start()

	var source *syntheticSource
	if *testMode {
		source = newSyntheticSource(ingest, labels, *fps, *threshold)
		source.Start()
		logger.Info("Main", "Running in test mode with synthetic detections")
	}

	go func() {
		logger.Info("Main", "Metrics server listening on %s", *metricsAddr)
		if err := m.StartServer(*metricsAddr); err != nil {
			logger.Error("Main", "Metrics server error: %v", err)
		}
	}()

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Handler(),
	}
	go func() {
		logger.Info("Main", "HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Main", "Shutting down...")

	if source != nil {
		source.Stop()
	}
	broadcaster.Stop()
	engine.Stop()
	encoder.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Main", "Error during shutdown: %v", err)
	}

	logger.Info("Main", "Server stopped")
}
