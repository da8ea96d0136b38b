package azurecompute

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/elC0mpa/snapshot-doctor/model"
)

const diskResourceType = "Microsoft.Compute/disks"

func NewService(credential azcore.TokenCredential) *service {
	s := &service{
		credential: credential,
		cache:      make(map[string]*clients),
	}
	s.newClients = s.createClients
	return s
}

func (s *service) createClients(subscriptionID string) (*clients, error) {
	snapshotsClient, err := armcompute.NewSnapshotsClient(subscriptionID, s.credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshots client: %w", err)
	}

	disksClient, err := armcompute.NewDisksClient(subscriptionID, s.credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create disks client: %w", err)
	}

	return &clients{snapshots: snapshotsClient, disks: disksClient}, nil
}

func (s *service) clientsFor(subscriptionID string) (*clients, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cache[subscriptionID]; ok {
		return c, nil
	}

	c, err := s.newClients(subscriptionID)
	if err != nil {
		return nil, err
	}
	s.cache[subscriptionID] = c
	return c, nil
}

// ListSnapshots implements service.SnapshotService
func (s *service) ListSnapshots(ctx context.Context, subscription model.Subscription) ([]model.Snapshot, error) {
	c, err := s.clientsFor(subscription.ID)
	if err != nil {
		return nil, err
	}

	var snapshots []model.Snapshot

	pager := c.snapshots.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, &model.ConnectivityError{Op: "list snapshots in subscription " + subscription.ID, Err: err}
		}

		for _, snapshot := range page.Value {
			if snapshot == nil {
				continue
			}
			snapshots = append(snapshots, toSnapshot(snapshot))
		}
	}

	return snapshots, nil
}

func toSnapshot(snapshot *armcompute.Snapshot) model.Snapshot {
	result := model.Snapshot{
		Tags: make(map[string]string, len(snapshot.Tags)),
	}

	if snapshot.ID != nil {
		result.ID = *snapshot.ID
		if id, err := arm.ParseResourceID(result.ID); err == nil {
			result.ResourceGroup = id.ResourceGroupName
		}
	}
	if snapshot.Name != nil {
		result.Name = *snapshot.Name
	}
	if snapshot.Location != nil {
		result.Location = *snapshot.Location
	}

	for key, value := range snapshot.Tags {
		if value != nil {
			result.Tags[key] = *value
		} else {
			result.Tags[key] = ""
		}
	}

	if props := snapshot.Properties; props != nil {
		if props.DiskSizeGB != nil {
			result.SizeGB = *props.DiskSizeGB
		}
		if props.TimeCreated != nil {
			created := props.TimeCreated.UTC()
			result.TimeCreated = &created
		}
		if props.CreationData != nil && props.CreationData.SourceResourceID != nil {
			result.SourceDiskID = *props.CreationData.SourceResourceID
		}
	}

	return result
}

// DeleteSnapshot implements service.SnapshotService and blocks until the
// long-running delete completes.
func (s *service) DeleteSnapshot(ctx context.Context, snapshot model.OrphanedSnapshot) error {
	c, err := s.clientsFor(snapshot.SubscriptionID)
	if err != nil {
		return err
	}

	poller, err := c.snapshots.BeginDelete(ctx, snapshot.ResourceGroup, snapshot.Name, nil)
	if err != nil {
		return fmt.Errorf("failed to start deletion of snapshot %s: %w", snapshot.Name, err)
	}

	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", snapshot.Name, err)
	}

	return nil
}

// ParseDiskReference accepts only
// /subscriptions/{sub}/resourceGroups/{rg}/providers/Microsoft.Compute/disks/{name}
func (s *service) ParseDiskReference(sourceID string) (model.DiskReference, error) {
	return ParseDiskReference(sourceID)
}

func ParseDiskReference(sourceID string) (model.DiskReference, error) {
	segments := strings.Split(strings.Trim(sourceID, "/"), "/")
	if len(segments) != 8 ||
		!strings.EqualFold(segments[0], "subscriptions") ||
		!strings.EqualFold(segments[2], "resourceGroups") ||
		!strings.EqualFold(segments[4], "providers") {
		return model.DiskReference{}, fmt.Errorf("invalid disk resource id: %s", sourceID)
	}

	id, err := arm.ParseResourceID(sourceID)
	if err != nil {
		return model.DiskReference{}, fmt.Errorf("invalid disk resource id: %w", err)
	}

	if !strings.EqualFold(id.ResourceType.String(), diskResourceType) {
		return model.DiskReference{}, fmt.Errorf("resource %s is a %s, not a managed disk", sourceID, id.ResourceType.String())
	}

	return model.DiskReference{
		Raw:            sourceID,
		SubscriptionID: id.SubscriptionID,
		ResourceGroup:  id.ResourceGroupName,
		Name:           id.Name,
	}, nil
}

// DiskExists implements service.DiskService
func (s *service) DiskExists(ctx context.Context, ref model.DiskReference) (bool, error) {
	c, err := s.clientsFor(ref.SubscriptionID)
	if err != nil {
		return false, err
	}

	_, err = c.disks.Get(ctx, ref.ResourceGroup, ref.Name, nil)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to get disk %s: %w", ref.Name, err)
}

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
