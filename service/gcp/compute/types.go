package gcpcompute

import (
	"context"
	"time"

	"github.com/elC0mpa/snapshot-doctor/model"
	"google.golang.org/api/compute/v1"
)

type service struct {
	computeClient *compute.Service
	pollInterval  time.Duration
}

type ComputeService interface {
	ListSnapshots(ctx context.Context, subscription model.Subscription) ([]model.Snapshot, error)
	DeleteSnapshot(ctx context.Context, snapshot model.OrphanedSnapshot) error
	ParseDiskReference(sourceID string) (model.DiskReference, error)
	DiskExists(ctx context.Context, ref model.DiskReference) (bool, error)
}
