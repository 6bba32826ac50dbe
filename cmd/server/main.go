package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"lan-collab/internal"
	"lan-collab/observability"
	"lan-collab/relay"
	"lan-collab/repositories"
	"lan-collab/runtime"
	"lan-collab/runtime/workers"
	"lan-collab/services"
	"lan-collab/transfer"
)

// Exit codes to provide meaningful status to the operating system or
// service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so every defer executes before exit.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Catalog storage (BadgerDB, in-memory: the catalog dies with the
	// process, exactly like the uploaded files' reachability).
	db, err := badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		return exitRuntime, fmt.Errorf("catalog storage failed: %w", err)
	}
	defer func() {
		logger.Info("Closing catalog storage...")
		_ = db.Close()
	}()

	// 3. Shared state and leaf services
	monitor := observability.NewMonitor()
	registry := runtime.NewRegistry()
	history := runtime.NewHistory(config.MaxChatHistory)
	catalog := repositories.NewFileCatalog(db, logger)

	videoRelay := relay.NewMediaRelay(logger, relay.KindVideo, config.Host, config.VideoPort, monitor)
	audioRelay := relay.NewMediaRelay(logger, relay.KindAudio, config.Host, config.AudioPort, monitor)
	screenRelay := relay.NewScreenRelay(logger, config.Host, config.ScreenPort, monitor)

	fileService := transfer.NewService(
		logger, config.Host, config.UploadPort, config.DownloadPort,
		config.MaxFileSize, config.UploadDir, catalog, monitor)

	controlService := services.NewControlService(
		logger, config.Host, config.TCPPort,
		registry, history, screenRelay, fileService, monitor)

	// The file service announces completed uploads through the control
	// plane; injected after construction to avoid a dependency cycle.
	fileService.SetNotifier(controlService)

	// 4. Bind everything up front so a port conflict fails fast.
	if err := controlService.Listen(); err != nil {
		return exitRuntime, err
	}
	if err := videoRelay.Listen(); err != nil {
		return exitRuntime, err
	}
	if err := audioRelay.Listen(); err != nil {
		return exitRuntime, err
	}
	if err := screenRelay.Listen(); err != nil {
		return exitRuntime, err
	}
	if err := fileService.Listen(); err != nil {
		return exitRuntime, err
	}

	printBanner(config, controlService.Port())

	// 5. Supervised workers
	supervisor := workers.NewSupervisor(logger)
	supervisor.Add(
		controlService,
		videoRelay,
		audioRelay,
		screenRelay,
		transfer.UploadWorker{Service: fileService},
		transfer.DownloadWorker{Service: fileService},
		workers.NewHeartbeatWorker(logger, registry, controlService, config.HeartbeatInterval),
	)
	if config.StatsInterval > 0 {
		supervisor.Add(workers.NewStatsWorker(logger, registry, monitor, config.StatsInterval))
	}

	logger.Info("Server ready for connections")
	supervisor.Run(ctx)

	logger.Info("Server exited gracefully")
	return exitOK, nil
}

// printBanner shows the connection info clients need, the way operators
// expect to see it on the console.
func printBanner(config internal.Config, controlPort int) {
	localIP := outboundIP()

	color.Cyan.Println("============================================================")
	color.Cyan.Println("  LAN COLLABORATION SERVER - CONNECTION INFO")
	color.Cyan.Println("============================================================")
	color.Green.Printf("  Control:      %s:%d\n", localIP, controlPort)
	color.Green.Printf("  Video (UDP):  %s:%d\n", localIP, config.VideoPort)
	color.Green.Printf("  Audio (UDP):  %s:%d\n", localIP, config.AudioPort)
	color.Green.Printf("  Screen share: %s:%d\n", localIP, config.ScreenPort)
	color.Green.Printf("  File upload:  %s:%d\n", localIP, config.UploadPort)
	color.Green.Printf("  File download:%s:%d\n", localIP, config.DownloadPort)
	color.Cyan.Println("============================================================")
}

// outboundIP guesses the LAN address clients should dial. Falls back to
// localhost when the host has no route.
func outboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
