package awsec2

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
	"github.com/elC0mpa/snapshot-doctor/model"
)

// EBS reports this placeholder volume for snapshots copied from another
// snapshot or registered from an AMI.
const placeholderVolumeID = "vol-ffffffff"

var volumeIDRegex = regexp.MustCompile(`^vol-([0-9a-f]{8}|[0-9a-f]{17})$`)

func NewService(awsconfig aws.Config) *service {
	client := ec2.NewFromConfig(awsconfig)
	return &service{
		client: client,
		region: awsconfig.Region,
	}
}

// ListSnapshots implements service.SnapshotService for snapshots owned by the
// caller account in the configured region.
func (s *service) ListSnapshots(ctx context.Context, subscription model.Subscription) ([]model.Snapshot, error) {
	var snapshots []model.Snapshot

	paginator := ec2.NewDescribeSnapshotsPaginator(s.client, &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &model.ConnectivityError{Op: "describe snapshots in account " + subscription.ID, Err: err}
		}

		for _, snapshot := range page.Snapshots {
			record := model.Snapshot{
				ID:            aws.ToString(snapshot.SnapshotId),
				Name:          aws.ToString(snapshot.SnapshotId),
				ResourceGroup: s.region,
				Location:      s.region,
				SizeGB:        aws.ToInt32(snapshot.VolumeSize),
				Tags:          make(map[string]string, len(snapshot.Tags)),
			}
			if snapshot.StartTime != nil {
				created := snapshot.StartTime.UTC()
				record.TimeCreated = &created
			}

			for _, tag := range snapshot.Tags {
				key := aws.ToString(tag.Key)
				record.Tags[key] = aws.ToString(tag.Value)
				if key == "Name" && aws.ToString(tag.Value) != "" {
					record.Name = aws.ToString(tag.Value)
				}
			}

			if volumeID := aws.ToString(snapshot.VolumeId); volumeID != placeholderVolumeID {
				record.SourceDiskID = volumeID
			}

			snapshots = append(snapshots, record)
		}
	}

	return snapshots, nil
}

// DeleteSnapshot implements service.SnapshotService
func (s *service) DeleteSnapshot(ctx context.Context, snapshot model.OrphanedSnapshot) error {
	_, err := s.client.DeleteSnapshot(ctx, &ec2.DeleteSnapshotInput{
		SnapshotId: aws.String(snapshot.ID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", snapshot.ID, err)
	}
	return nil
}

// ParseDiskReference implements service.DiskService. Volume ids carry no
// account or region, so the reference inherits the service's region.
func (s *service) ParseDiskReference(sourceID string) (model.DiskReference, error) {
	if !volumeIDRegex.MatchString(sourceID) {
		return model.DiskReference{}, fmt.Errorf("invalid volume id: %s", sourceID)
	}

	return model.DiskReference{
		Raw:           sourceID,
		ResourceGroup: s.region,
		Name:          sourceID,
	}, nil
}

// DiskExists implements service.DiskService
func (s *service) DiskExists(ctx context.Context, ref model.DiskReference) (bool, error) {
	output, err := s.client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
		VolumeIds: []string{ref.Name},
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to describe volume %s: %w", ref.Name, err)
	}

	return len(output.Volumes) > 0, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "InvalidVolume.NotFound"
}
