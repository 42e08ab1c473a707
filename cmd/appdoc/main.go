package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/strogmv/appdoc/internal/app"
	"github.com/strogmv/appdoc/internal/config"
	"github.com/strogmv/appdoc/internal/pkg/logger"
)

// Version is overridden at link time.
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	var err error
	switch cmd := os.Args[1]; cmd {
	case "serve":
		err = runServe(os.Args[2:])
	case "generate":
		err = runGenerate(os.Args[2:])
	case "notify":
		err = runNotify(os.Args[2:])
	case "version":
		runVersion()
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "appdoc %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("appdoc: application documents and notifications %s\n", Version)
	fmt.Println("\nUsage:")
	fmt.Println("  appdoc serve     Run the HTTP API and the notification consumer")
	fmt.Println("  appdoc generate  Render the PDF document of one application")
	fmt.Println("  appdoc notify    Send a notification through one or more channels")
	fmt.Println("  appdoc version   Print the version")
}

func runVersion() {
	fmt.Printf("appdoc version %s\n", Version)
}

// bootstrap loads configuration and builds the container shared by every command.
func bootstrap(ctx context.Context) (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.Init(cfg.LogLevel)
	slog.SetDefault(log)

	return app.NewContainer(ctx, cfg, log)
}
