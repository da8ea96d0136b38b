package orchestrator

import (
	"context"
	"fmt"
	"os"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/elC0mpa/snapshot-doctor/service"
	"github.com/elC0mpa/snapshot-doctor/service/actuator"
	"github.com/elC0mpa/snapshot-doctor/service/classifier"
	"github.com/elC0mpa/snapshot-doctor/service/exporter"
	"github.com/elC0mpa/snapshot-doctor/utils"
	"github.com/sirupsen/logrus"
)

func NewService(subscriptionService service.SubscriptionService, classifierService classifier.ClassifierService, actuatorService actuator.ActuatorService, exporterService exporter.ExporterService, logger *logrus.Logger, opts Options) *orchestratorService {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Confirm == nil {
		opts.Confirm = utils.Confirm
	}

	return &orchestratorService{
		subscriptionService: subscriptionService,
		classifierService:   classifierService,
		actuatorService:     actuatorService,
		exporterService:     exporterService,
		logger:              logger,
		out:                 opts.Out,
		confirm:             opts.Confirm,
	}
}

// Orchestrate runs enumerate, classify, report, export and the optional
// deletion pass. Only enumeration errors, cancellation and, when
// --fail-on-delete-error is set, deletion failures end the run with an error.
func (s *orchestratorService) Orchestrate(ctx context.Context, flags model.Flags) error {
	result, err := s.scanWorkflow(ctx, flags)
	if err != nil {
		return err
	}

	s.reportWorkflow(result, flags)

	if flags.Export != "" {
		if err := s.exporterService.Export(result.Orphans, flags.Export); err != nil {
			s.logger.Errorf("Failed to export orphaned snapshots: %v", err)
		}
	}

	if !flags.Delete {
		return nil
	}
	return s.deletionWorkflow(ctx, result.Orphans, flags)
}

// logsToConsole reports whether progress lines are logged to the terminal
// the spinner would draw on.
func (s *orchestratorService) logsToConsole() bool {
	return s.logger.IsLevelEnabled(logrus.InfoLevel)
}

func (s *orchestratorService) scanWorkflow(ctx context.Context, flags model.Flags) (model.ScanResult, error) {
	utils.StartSpinner(os.Stderr, "Scanning snapshots...", s.logsToConsole())
	defer utils.StopSpinner()

	subscriptions, err := s.subscriptionService.ListSubscriptions(ctx, flags.SubscriptionID)
	if err != nil {
		return model.ScanResult{}, err
	}
	if len(subscriptions) == 0 {
		s.logger.Warn("No accessible subscriptions found")
	}

	result := s.classifierService.Classify(ctx, subscriptions)
	if err := ctx.Err(); err != nil {
		return model.ScanResult{}, fmt.Errorf("scan interrupted: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"subscriptions": result.SubscriptionsScanned,
		"snapshots":     result.SnapshotsScanned,
		"orphans":       len(result.Orphans),
		"orphanedGB":    result.TotalSizeGB(),
		"failures":      len(result.Failures),
	}).Info("Scan complete")

	return result, nil
}

func (s *orchestratorService) reportWorkflow(result model.ScanResult, flags model.Flags) {
	utils.DrawScanFailures(s.out, result.Failures)

	if len(result.Orphans) == 0 {
		s.logger.Info("No orphaned snapshots found")
		return
	}

	summary := utils.BuildSummary(result.Orphans)
	utils.PrintSummary(s.out, summary)
	utils.DrawOrphanTable(s.out, result.Orphans)

	if flags.Chart {
		utils.DrawSizeChart(s.out, summary)
	}
}

func (s *orchestratorService) deletionWorkflow(ctx context.Context, orphans []model.OrphanedSnapshot, flags model.Flags) error {
	dryRun := !flags.LiveDelete()

	if !dryRun && len(orphans) > 0 {
		confirmed, err := s.confirm(fmt.Sprintf("WARNING: This will delete %d orphaned snapshots. Continue", len(orphans)))
		if err != nil {
			s.logger.Warnf("Could not read confirmation: %v", err)
		}
		if !confirmed {
			s.logger.Info("Deletion cancelled")
			return nil
		}
	}

	outcome := s.actuatorService.Delete(ctx, orphans, dryRun)
	utils.DrawDeletionResults(s.out, outcome)

	if flags.FailOnDeleteError && outcome.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", model.ErrDeletionFailures, outcome.Failed, len(orphans))
	}
	return nil
}
