package awsec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/elC0mpa/snapshot-doctor/model"
)

// ec2Client is the subset of *ec2.Client used for snapshot cleanup
type ec2Client interface {
	ec2.DescribeSnapshotsAPIClient
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DeleteSnapshot(ctx context.Context, params *ec2.DeleteSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error)
}

type service struct {
	client ec2Client
	region string
}

type EC2Service interface {
	ListSnapshots(ctx context.Context, subscription model.Subscription) ([]model.Snapshot, error)
	DeleteSnapshot(ctx context.Context, snapshot model.OrphanedSnapshot) error
	ParseDiskReference(sourceID string) (model.DiskReference, error)
	DiskExists(ctx context.Context, ref model.DiskReference) (bool, error)
}
