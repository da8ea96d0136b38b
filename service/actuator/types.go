package actuator

import (
	"context"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/elC0mpa/snapshot-doctor/service"
	"github.com/sirupsen/logrus"
)

type actuatorService struct {
	snapshots   service.SnapshotService
	logger      *logrus.Logger
	concurrency int
}

type ActuatorService interface {
	Delete(ctx context.Context, orphans []model.OrphanedSnapshot, dryRun bool) model.DeletionOutcome
}
