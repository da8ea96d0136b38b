package actuator

import (
	"context"
	"sync"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/elC0mpa/snapshot-doctor/service"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func NewService(snapshots service.SnapshotService, logger *logrus.Logger, concurrency int) *actuatorService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &actuatorService{
		snapshots:   snapshots,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Delete removes every orphan, or only logs what it would remove when dryRun
// is set. Each deletion is independent; Successful+Failed always equals
// len(orphans).
func (a *actuatorService) Delete(ctx context.Context, orphans []model.OrphanedSnapshot, dryRun bool) model.DeletionOutcome {
	var outcome model.DeletionOutcome

	if len(orphans) == 0 {
		a.logger.Info("No orphaned snapshots to delete")
		return outcome
	}

	if dryRun {
		for _, orphan := range orphans {
			a.logger.Infof("DRY RUN: Would delete snapshot %s in %s", orphan.Name, orphan.ResourceGroup)
			outcome.Successful++
		}
		return outcome
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(a.concurrency)

	for _, orphan := range orphans {
		g.Go(func() error {
			result := a.deleteOne(ctx, orphan)

			mu.Lock()
			outcome.Merge(result)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return outcome
}

func (a *actuatorService) deleteOne(ctx context.Context, orphan model.OrphanedSnapshot) model.DeletionOutcome {
	log := a.logger.WithFields(logrus.Fields{
		"subscription":  orphan.SubscriptionID,
		"resourceGroup": orphan.ResourceGroup,
		"snapshot":      orphan.Name,
	})

	log.Infof("Deleting snapshot %s in %s", orphan.Name, orphan.ResourceGroup)

	if err := a.snapshots.DeleteSnapshot(ctx, orphan); err != nil {
		log.Errorf("Error deleting snapshot %s: %v", orphan.Name, err)
		return model.DeletionOutcome{
			Failed:   1,
			Failures: []model.DeletionFailure{{SnapshotID: orphan.ID, Err: err}},
		}
	}

	log.Infof("Successfully deleted snapshot %s", orphan.Name)
	return model.DeletionOutcome{Successful: 1}
}
