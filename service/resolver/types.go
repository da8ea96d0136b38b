package resolver

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/elC0mpa/snapshot-doctor/service"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const DefaultCacheSize = 4096

type Options struct {
	Retries   uint64
	CacheSize int
	// NewBackOff overrides the retry schedule; nil means exponential
	NewBackOff func() backoff.BackOff
}

type resolverService struct {
	disks      service.DiskService
	cache      *lru.Cache[string, model.DiskStatus]
	lookups    singleflight.Group
	retries    uint64
	newBackOff func() backoff.BackOff
	logger     *logrus.Logger
}

type ResolverService interface {
	Resolve(ctx context.Context, subscriptionID, sourceID string) model.DiskStatus
}
