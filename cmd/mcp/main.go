package main

import (
	"fmt"
	"os"

	"github.com/elC0mpa/snapshot-doctor/cmd/mcp/tools"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := LoadConfig()

	// stdout carries the MCP protocol
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	s := server.NewMCPServer(
		"snapshot-doctor-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterSnapshotTools(s, cfg.ProviderFactory(logger), logger, tools.ScanOptions{
		DefaultProvider:     cfg.Provider,
		DefaultSubscription: cfg.DefaultSubscription,
		LookupRetries:       cfg.LookupRetries,
		Concurrency:         cfg.Concurrency,
		SnapshotConcurrency: cfg.SnapshotConcurrency,
	})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
