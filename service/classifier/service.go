package classifier

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/elC0mpa/snapshot-doctor/service"
	"github.com/elC0mpa/snapshot-doctor/service/resolver"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func NewService(snapshots service.SnapshotService, diskResolver resolver.ResolverService, logger *logrus.Logger, opts Options) *classifierService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.SnapshotConcurrency < 1 {
		opts.SnapshotConcurrency = 1
	}

	return &classifierService{
		snapshots:           snapshots,
		resolver:            diskResolver,
		logger:              logger,
		concurrency:         opts.Concurrency,
		snapshotConcurrency: opts.SnapshotConcurrency,
	}
}

// subscriptionScan is the contribution of one subscription worker
type subscriptionScan struct {
	orphans  []model.OrphanedSnapshot
	failures []model.ScanFailure
	scanned  int
}

// Classify scans every subscription and returns the orphaned snapshots sorted
// by subscription name, resource group and snapshot name. A subscription whose
// snapshots cannot be listed, or a snapshot that cannot be classified, is
// recorded as a failure and skipped.
func (c *classifierService) Classify(ctx context.Context, subscriptions []model.Subscription) model.ScanResult {
	var (
		mu     sync.Mutex
		result model.ScanResult
		g      errgroup.Group
	)
	g.SetLimit(c.concurrency)

	for _, subscription := range subscriptions {
		g.Go(func() error {
			scan := c.classifySubscription(ctx, subscription)

			mu.Lock()
			defer mu.Unlock()
			result.SubscriptionsScanned++
			result.SnapshotsScanned += scan.scanned
			result.Orphans = append(result.Orphans, scan.orphans...)
			result.Failures = append(result.Failures, scan.failures...)
			return nil
		})
	}
	_ = g.Wait()

	sortOrphans(result.Orphans)
	sort.Slice(result.Failures, func(i, j int) bool {
		a, b := result.Failures[i], result.Failures[j]
		if a.SubscriptionID != b.SubscriptionID {
			return a.SubscriptionID < b.SubscriptionID
		}
		return a.SnapshotID < b.SnapshotID
	})

	return result
}

func (c *classifierService) classifySubscription(ctx context.Context, subscription model.Subscription) subscriptionScan {
	log := c.logger.WithFields(logrus.Fields{
		"subscription":     subscription.ID,
		"subscriptionName": subscription.Name,
	})
	log.Infof("Processing subscription: %s (%s)", subscription.Name, subscription.ID)

	var scan subscriptionScan

	snapshots, err := c.snapshots.ListSnapshots(ctx, subscription)
	if err != nil {
		log.Errorf("Error processing subscription %s: %v", subscription.ID, err)
		scan.failures = append(scan.failures, model.ScanFailure{SubscriptionID: subscription.ID, Err: err})
		return scan
	}
	scan.scanned = len(snapshots)
	log.Debugf("Found %d snapshot(s)", len(snapshots))

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(c.snapshotConcurrency)

	for _, snapshot := range snapshots {
		g.Go(func() error {
			orphan, err := c.classifySnapshot(ctx, subscription, snapshot)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.WithField("snapshot", snapshot.ID).Errorf("Skipping snapshot %s: %v", snapshot.Name, err)
				scan.failures = append(scan.failures, model.ScanFailure{
					SubscriptionID: subscription.ID,
					SnapshotID:     snapshot.ID,
					Err:            err,
				})
				return nil
			}
			if orphan != nil {
				scan.orphans = append(scan.orphans, *orphan)
			}
			return nil
		})
	}
	_ = g.Wait()

	return scan
}

func (c *classifierService) classifySnapshot(ctx context.Context, subscription model.Subscription, snapshot model.Snapshot) (orphan *model.OrphanedSnapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			orphan = nil
			err = fmt.Errorf("panic while classifying snapshot: %v", r)
		}
	}()

	if !snapshot.HasSource() {
		return nil, nil
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("malformed snapshot record: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status := c.resolver.Resolve(ctx, subscription.ID, snapshot.SourceDiskID)
	if !status.Orphaned() {
		return nil, nil
	}
	// a cancelled run must not report live disks as orphaned
	if status == model.DiskUnverified && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	c.logger.WithFields(logrus.Fields{
		"snapshot": snapshot.ID,
		"source":   snapshot.SourceDiskID,
		"status":   status,
	}).Infof("Found orphaned snapshot: %s", snapshot.Name)

	result := model.NewOrphanedSnapshot(subscription, snapshot, status)
	return &result, nil
}

func sortOrphans(orphans []model.OrphanedSnapshot) {
	sort.Slice(orphans, func(i, j int) bool {
		a, b := orphans[i], orphans[j]
		if a.SubscriptionName != b.SubscriptionName {
			return a.SubscriptionName < b.SubscriptionName
		}
		if a.SubscriptionID != b.SubscriptionID {
			return a.SubscriptionID < b.SubscriptionID
		}
		if a.ResourceGroup != b.ResourceGroup {
			return a.ResourceGroup < b.ResourceGroup
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}
