package resolver

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/elC0mpa/snapshot-doctor/service"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

func NewService(disks service.DiskService, logger *logrus.Logger, opts Options) (*resolverService, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.NewBackOff == nil {
		opts.NewBackOff = func() backoff.BackOff { return backoff.NewExponentialBackOff() }
	}

	cache, err := lru.New[string, model.DiskStatus](opts.CacheSize)
	if err != nil {
		return nil, err
	}

	return &resolverService{
		disks:      disks,
		cache:      cache,
		retries:    opts.Retries,
		newBackOff: opts.NewBackOff,
		logger:     logger,
	}, nil
}

// Resolve classifies the source disk of a snapshot in subscriptionID.
// It never fails: malformed references and exhausted lookups are reported
// through the returned status and both count as orphaned.
func (s *resolverService) Resolve(ctx context.Context, subscriptionID, sourceID string) model.DiskStatus {
	key := subscriptionID + ":" + sourceID
	if status, ok := s.cache.Get(key); ok {
		return status
	}

	ref, err := s.disks.ParseDiskReference(sourceID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"subscription": subscriptionID,
			"source":       sourceID,
		}).Warnf("Invalid disk resource ID format: %v", err)
		s.cache.Add(key, model.DiskMalformed)
		return model.DiskMalformed
	}
	if ref.SubscriptionID == "" {
		ref.SubscriptionID = subscriptionID
	}

	// Snapshots of the same disk are classified concurrently; share one lookup.
	result, _, _ := s.lookups.Do(key, func() (interface{}, error) {
		return s.lookup(ctx, ref), nil
	})
	status := result.(model.DiskStatus)

	if status != model.DiskUnverified {
		s.cache.Add(key, status)
	}
	return status
}

func (s *resolverService) lookup(ctx context.Context, ref model.DiskReference) model.DiskStatus {
	var exists bool

	operation := func() error {
		var err error
		exists, err = s.disks.DiskExists(ctx, ref)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		s.logger.WithFields(logrus.Fields{
			"disk":  ref.Raw,
			"retry": wait.String(),
		}).Debugf("Disk lookup failed, retrying: %v", err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.retries), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		s.logger.WithField("disk", ref.Raw).Warnf("Could not verify source disk, treating snapshot as orphaned: %v", err)
		return model.DiskUnverified
	}

	if exists {
		return model.DiskExists
	}
	return model.DiskMissing
}
