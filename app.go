package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/elC0mpa/snapshot-doctor/service/actuator"
	"github.com/elC0mpa/snapshot-doctor/service/classifier"
	"github.com/elC0mpa/snapshot-doctor/service/exporter"
	"github.com/elC0mpa/snapshot-doctor/service/flag"
	"github.com/elC0mpa/snapshot-doctor/service/logger"
	"github.com/elC0mpa/snapshot-doctor/service/orchestrator"
	"github.com/elC0mpa/snapshot-doctor/service/provider"
	"github.com/elC0mpa/snapshot-doctor/service/resolver"
	"github.com/elC0mpa/snapshot-doctor/utils"
)

const (
	exitOK              = 0
	exitFailure         = 1
	exitDeletionFailure = 2
)

// loggedError has already been written to the run log
type loggedError struct {
	error
}

func (e loggedError) Unwrap() error {
	return e.error
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flagService := flag.NewService()
	cmd := flagService.Command(execute)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var logged loggedError
	if !errors.As(err, &logged) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Run 'snapshot-doctor --help' for usage.")
		}
	}

	if errors.Is(err, model.ErrDeletionFailures) {
		return exitDeletionFailure
	}
	return exitFailure
}

func execute(ctx context.Context, flags model.Flags) error {
	log, closeLog, err := logger.New(logger.Config{
		Level:   flags.LogLevel,
		Verbose: flags.Verbose,
		File:    flags.LogFile,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	utils.DrawBanner(os.Stdout, flags.Provider)

	cloud, err := provider.New(ctx, provider.SettingsFromFlags(flags), log)
	if err != nil {
		log.Errorf("Error: %v", err)
		return loggedError{err}
	}

	diskResolver, err := resolver.NewService(cloud.Disks, log, resolver.Options{
		Retries: uint64(flags.LookupRetries),
	})
	if err != nil {
		return err
	}

	classifierService := classifier.NewService(cloud.Snapshots, diskResolver, log, classifier.Options{
		Concurrency:         flags.Concurrency,
		SnapshotConcurrency: flags.SnapshotConcurrency,
	})
	actuatorService := actuator.NewService(cloud.Snapshots, log, flags.SnapshotConcurrency)
	exporterService := exporter.NewService(log)

	orchestratorService := orchestrator.NewService(cloud.Subscriptions, classifierService, actuatorService, exporterService, log, orchestrator.Options{})

	if err := orchestratorService.Orchestrate(ctx, flags); err != nil {
		log.Errorf("Error: %v", err)
		return loggedError{err}
	}
	return nil
}
