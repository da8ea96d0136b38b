package gcpcompute

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elC0mpa/snapshot-doctor/model"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Snapshots are global resources in GCP
const globalLocation = "global"

func NewService(ctx context.Context, opts ...option.ClientOption) (*service, error) {
	computeClient, err := compute.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Compute client: %w", err)
	}

	return &service{
		computeClient: computeClient,
		pollInterval:  2 * time.Second,
	}, nil
}

// ListSnapshots implements service.SnapshotService
func (s *service) ListSnapshots(ctx context.Context, subscription model.Subscription) ([]model.Snapshot, error) {
	var snapshots []model.Snapshot

	err := s.computeClient.Snapshots.List(subscription.ID).Pages(ctx, func(page *compute.SnapshotList) error {
		for _, snapshot := range page.Items {
			snapshots = append(snapshots, toSnapshot(snapshot))
		}
		return nil
	})
	if err != nil {
		return nil, &model.ConnectivityError{Op: "list snapshots in project " + subscription.ID, Err: err}
	}

	return snapshots, nil
}

func toSnapshot(snapshot *compute.Snapshot) model.Snapshot {
	result := model.Snapshot{
		ID:            snapshot.SelfLink,
		Name:          snapshot.Name,
		ResourceGroup: globalLocation,
		Location:      strings.Join(snapshot.StorageLocations, ","),
		SizeGB:        int32(snapshot.DiskSizeGb),
		SourceDiskID:  snapshot.SourceDisk,
		Tags:          make(map[string]string, len(snapshot.Labels)),
	}
	if result.ID == "" {
		result.ID = snapshot.Name
	}

	for key, value := range snapshot.Labels {
		result.Tags[key] = value
	}

	if created, err := time.Parse(time.RFC3339, snapshot.CreationTimestamp); err == nil {
		created = created.UTC()
		result.TimeCreated = &created
	}

	return result
}

// DeleteSnapshot implements service.SnapshotService and waits for the global
// operation to finish.
func (s *service) DeleteSnapshot(ctx context.Context, snapshot model.OrphanedSnapshot) error {
	op, err := s.computeClient.Snapshots.Delete(snapshot.SubscriptionID, snapshot.Name).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", snapshot.Name, err)
	}

	for op.Status != "DONE" {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.pollInterval):
		}

		op, err = s.computeClient.GlobalOperations.Wait(snapshot.SubscriptionID, op.Name).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to wait for deletion of snapshot %s: %w", snapshot.Name, err)
		}
	}

	if op.Error != nil && len(op.Error.Errors) > 0 {
		return fmt.Errorf("failed to delete snapshot %s: %s", snapshot.Name, op.Error.Errors[0].Message)
	}
	return nil
}

// ParseDiskReference implements service.DiskService. Accepts full URLs and
// partial paths of the form projects/{p}/zones/{z}/disks/{d} or
// projects/{p}/regions/{r}/disks/{d}.
func (s *service) ParseDiskReference(sourceID string) (model.DiskReference, error) {
	return ParseDiskReference(sourceID)
}

func ParseDiskReference(sourceID string) (model.DiskReference, error) {
	index := strings.Index(sourceID, "projects/")
	if index < 0 {
		return model.DiskReference{}, fmt.Errorf("invalid disk url: %s", sourceID)
	}

	segments := strings.Split(strings.Trim(sourceID[index:], "/"), "/")
	if len(segments) != 6 || segments[4] != "disks" {
		return model.DiskReference{}, fmt.Errorf("invalid disk url: %s", sourceID)
	}

	ref := model.DiskReference{
		Raw:            sourceID,
		SubscriptionID: segments[1],
		ResourceGroup:  segments[3],
		Name:           segments[5],
	}
	switch segments[2] {
	case "zones":
	case "regions":
		ref.Regional = true
	default:
		return model.DiskReference{}, fmt.Errorf("invalid disk url: %s", sourceID)
	}

	if ref.SubscriptionID == "" || ref.ResourceGroup == "" || ref.Name == "" {
		return model.DiskReference{}, fmt.Errorf("invalid disk url: %s", sourceID)
	}
	return ref, nil
}

// DiskExists implements service.DiskService
func (s *service) DiskExists(ctx context.Context, ref model.DiskReference) (bool, error) {
	var err error
	if ref.Regional {
		_, err = s.computeClient.RegionDisks.Get(ref.SubscriptionID, ref.ResourceGroup, ref.Name).Context(ctx).Do()
	} else {
		_, err = s.computeClient.Disks.Get(ref.SubscriptionID, ref.ResourceGroup, ref.Name).Context(ctx).Do()
	}

	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to get disk %s: %w", ref.Name, err)
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
