package azurecompute

import (
	"context"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/elC0mpa/snapshot-doctor/model"
)

type snapshotsClient interface {
	NewListPager(options *armcompute.SnapshotsClientListOptions) *runtime.Pager[armcompute.SnapshotsClientListResponse]
	BeginDelete(ctx context.Context, resourceGroupName string, snapshotName string, options *armcompute.SnapshotsClientBeginDeleteOptions) (*runtime.Poller[armcompute.SnapshotsClientDeleteResponse], error)
}

type disksClient interface {
	Get(ctx context.Context, resourceGroupName string, diskName string, options *armcompute.DisksClientGetOptions) (armcompute.DisksClientGetResponse, error)
}

// clients holds the per-subscription compute clients
type clients struct {
	snapshots snapshotsClient
	disks     disksClient
}

type clientFactory func(subscriptionID string) (*clients, error)

// service spans every subscription; compute clients are created lazily and
// reused for the remainder of the run.
type service struct {
	credential azcore.TokenCredential
	newClients clientFactory

	mu    sync.Mutex
	cache map[string]*clients
}

type ComputeService interface {
	ListSnapshots(ctx context.Context, subscription model.Subscription) ([]model.Snapshot, error)
	DeleteSnapshot(ctx context.Context, snapshot model.OrphanedSnapshot) error
	ParseDiskReference(sourceID string) (model.DiskReference, error)
	DiskExists(ctx context.Context, ref model.DiskReference) (bool, error)
}
