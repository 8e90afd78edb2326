// Command thermoprintd is the receipt printing daemon. It watches for
// printers, renders documents posted over HTTP or WebSocket, and
// delivers the resulting ESC/POS streams.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/printcore/thermoprint/internal/api"
	"github.com/printcore/thermoprint/internal/config"
	"github.com/printcore/thermoprint/internal/logging"
	"github.com/printcore/thermoprint/internal/printer"
)

// Version is set during build via ldflags.
var Version = "dev"

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (optional)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("thermoprintd", Version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting thermoprintd", zap.String("version", Version))

	manager, err := printer.NewManager(cfg.Printing.RegistryPath, log)
	if err != nil {
		log.Fatal("create device manager", zap.Error(err))
	}

	devices, err := manager.Detect()
	if err != nil {
		log.Warn("initial device scan failed", zap.Error(err))
	} else {
		log.Info("initial device scan", zap.Int("devices", len(devices)))
	}

	pool := printer.NewPool()
	defer pool.DisconnectAll()

	queue := printer.NewQueue(pool, manager, cfg.Printing.MaxRetries, log)
	defer queue.Stop()

	server := api.NewServer(manager, pool, queue, cfg.Server.AllowedOrigins, log)
	queue.OnUpdate(server.BroadcastJobUpdate)

	monitor := printer.NewMonitor(manager, cfg.Printing.MonitorInterval, log)
	monitor.OnAdded(server.BroadcastDeviceAdded)
	monitor.OnRemoved(server.BroadcastDeviceRemoved)
	monitor.Start()
	defer monitor.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(cfg.Server.Address())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal("API server stopped", zap.Error(err))
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}
}
