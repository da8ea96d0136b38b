package service

import (
	"context"

	"github.com/elC0mpa/snapshot-doctor/model"
)

// SubscriptionService enumerates the subscriptions (accounts, projects) to scan
type SubscriptionService interface {
	// ListSubscriptions returns the named subscription, or every visible one
	// when subscriptionID is empty.
	ListSubscriptions(ctx context.Context, subscriptionID string) ([]model.Subscription, error)
}

// SnapshotService lists and deletes disk snapshots
type SnapshotService interface {
	ListSnapshots(ctx context.Context, subscription model.Subscription) ([]model.Snapshot, error)
	DeleteSnapshot(ctx context.Context, snapshot model.OrphanedSnapshot) error
}

// DiskService parses source-disk references and checks disk existence
type DiskService interface {
	// ParseDiskReference returns an error when sourceID is not a disk reference
	ParseDiskReference(sourceID string) (model.DiskReference, error)
	// DiskExists returns (false, nil) when the disk is definitely gone
	DiskExists(ctx context.Context, ref model.DiskReference) (bool, error)
}

// Provider bundles the collaborators for one cloud
type Provider struct {
	Name          string
	Subscriptions SubscriptionService
	Snapshots     SnapshotService
	Disks         DiskService
}
