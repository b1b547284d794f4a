package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/mstfugurlu/inventory/internal/app"
	"github.com/mstfugurlu/inventory/internal/config"
	"github.com/mstfugurlu/inventory/internal/server"
	"github.com/mstfugurlu/inventory/internal/service"
)

func main() {
	install := flag.Bool("install", false, "Install Windows service")
	uninstall := flag.Bool("uninstall", false, "Uninstall Windows service")
	start := flag.Bool("start", false, "Start the service")
	stop := flag.Bool("stop", false, "Stop the service")
	configPath := flag.String("config", "", "Config file path")
	listen := flag.String("listen", "", "Listen address, overrides the config file")
	flag.Parse()

	path := config.Path(*configPath, service.ConfigPath())

	if *install {
		if err := service.InstallService("-config", path); err != nil {
			log.Fatalf("Failed to install service: %v", err)
		}
		fmt.Println("Service installed successfully")
		return
	}

	if *uninstall {
		if err := service.UninstallService(); err != nil {
			log.Fatalf("Failed to uninstall service: %v", err)
		}
		fmt.Println("Service uninstalled successfully")
		return
	}

	if *start {
		if err := service.StartService(); err != nil {
			log.Fatalf("Failed to start service: %v", err)
		}
		fmt.Println("Service started")
		return
	}

	if *stop {
		if err := service.StopService(); err != nil {
			log.Fatalf("Failed to stop service: %v", err)
		}
		fmt.Println("Service stopped")
		return
	}

	err := service.RunAsService(func(ctx context.Context) error {
		return run(ctx, path, *listen)
	})
	if err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, configPath, listen string) error {
	a, err := app.Open(configPath)
	if err != nil {
		return fmt.Errorf("failed to open inventory: %w", err)
	}
	defer a.Close()

	addr := a.Config.HTTPListen
	if listen != "" {
		addr = listen
	}

	webServer := server.NewWebServer(a.View(), a.Store, addr, a.Log)
	return webServer.Start(ctx)
}
