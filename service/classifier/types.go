package classifier

import (
	"context"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/elC0mpa/snapshot-doctor/service"
	"github.com/elC0mpa/snapshot-doctor/service/resolver"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Concurrency         int
	SnapshotConcurrency int
}

type classifierService struct {
	snapshots           service.SnapshotService
	resolver            resolver.ResolverService
	logger              *logrus.Logger
	concurrency         int
	snapshotConcurrency int
}

type ClassifierService interface {
	Classify(ctx context.Context, subscriptions []model.Subscription) model.ScanResult
}
