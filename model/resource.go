package model

import (
	"errors"
	"fmt"
	"time"
)

const createdTimeLayout = "2006-01-02 15:04:05 UTC"

// Subscription is the unit snapshots are listed in.
// On AWS this is the caller account, on GCP a project.
type Subscription struct {
	ID    string
	Name  string
	State string
}

// Snapshot is a read-only view of a remote disk snapshot
type Snapshot struct {
	ID            string
	Name          string
	ResourceGroup string
	Location      string
	SizeGB        int32
	TimeCreated   *time.Time
	Tags          map[string]string
	SourceDiskID  string // empty when the snapshot carries no source reference
}

// HasSource reports whether the snapshot records the disk it was taken from.
func (s Snapshot) HasSource() bool {
	return s.SourceDiskID != ""
}

// Validate checks the fields needed to report and delete the snapshot.
func (s Snapshot) Validate() error {
	switch {
	case s.ID == "":
		return errors.New("snapshot has no id")
	case s.Name == "":
		return errors.New("snapshot has no name")
	case s.ResourceGroup == "":
		return errors.New("cannot determine resource group from snapshot id")
	}
	return nil
}

// DiskReference is a parsed source-disk reference.
// ResourceGroup holds the Azure resource group, AWS region or GCP zone/region.
type DiskReference struct {
	Raw            string
	SubscriptionID string
	ResourceGroup  string
	Name           string
	Regional       bool
}

// DiskStatus is the outcome of resolving a source-disk reference
type DiskStatus string

const (
	DiskExists     DiskStatus = "exists"
	DiskMissing    DiskStatus = "missing"
	DiskMalformed  DiskStatus = "malformed_reference"
	DiskUnverified DiskStatus = "lookup_failed"
)

// Orphaned reports whether a snapshot with this source status counts as orphaned.
func (s DiskStatus) Orphaned() bool {
	return s != DiskExists
}

// OrphanedSnapshot is a snapshot whose source disk could not be found
type OrphanedSnapshot struct {
	SubscriptionID   string
	SubscriptionName string
	ResourceGroup    string
	Name             string
	ID               string
	SourceDiskID     string
	SizeGB           int32
	CreatedAt        *time.Time
	Tags             map[string]string
	Status           DiskStatus
}

// CreatedTime formats the creation time the way reports and exports show it.
func (o OrphanedSnapshot) CreatedTime() string {
	if o.CreatedAt == nil || o.CreatedAt.IsZero() {
		return "Unknown"
	}
	return o.CreatedAt.UTC().Format(createdTimeLayout)
}

// NewOrphanedSnapshot builds the orphan record for a snapshot of subscription.
func NewOrphanedSnapshot(subscription Subscription, snapshot Snapshot, status DiskStatus) OrphanedSnapshot {
	tags := make(map[string]string, len(snapshot.Tags))
	for k, v := range snapshot.Tags {
		tags[k] = v
	}

	return OrphanedSnapshot{
		SubscriptionID:   subscription.ID,
		SubscriptionName: subscription.Name,
		ResourceGroup:    snapshot.ResourceGroup,
		Name:             snapshot.Name,
		ID:               snapshot.ID,
		SourceDiskID:     snapshot.SourceDiskID,
		SizeGB:           snapshot.SizeGB,
		CreatedAt:        snapshot.TimeCreated,
		Tags:             tags,
		Status:           status,
	}
}

// ScanFailure records a subscription or snapshot the classifier had to skip.
// SnapshotID is empty when the whole subscription failed.
type ScanFailure struct {
	SubscriptionID string
	SnapshotID     string
	Err            error
}

// ScanResult is the classifier output
type ScanResult struct {
	Orphans              []OrphanedSnapshot
	Failures             []ScanFailure
	SubscriptionsScanned int
	SnapshotsScanned     int
}

// TotalSizeGB sums the size of all orphans.
func (r ScanResult) TotalSizeGB() int64 {
	var total int64
	for _, o := range r.Orphans {
		total += int64(o.SizeGB)
	}
	return total
}

// DeletionFailure records a snapshot that could not be deleted
type DeletionFailure struct {
	SnapshotID string
	Err        error
}

// DeletionOutcome summarises one deletion pass
type DeletionOutcome struct {
	Successful int
	Failed     int
	Failures   []DeletionFailure
}

// Merge adds other's counts to o.
func (o *DeletionOutcome) Merge(other DeletionOutcome) {
	o.Successful += other.Successful
	o.Failed += other.Failed
	o.Failures = append(o.Failures, other.Failures...)
}

// SubscriptionBreakdown is one line of the per-subscription summary
type SubscriptionBreakdown struct {
	SubscriptionID string
	Label          string
	Count          int
	SizeGB         int64
}

func (b SubscriptionBreakdown) String() string {
	return fmt.Sprintf("%s: %d snapshots, %d GB", b.Label, b.Count, b.SizeGB)
}

// OrphanSummary aggregates orphans for reporting
type OrphanSummary struct {
	Count         int
	TotalSizeGB   int64
	Subscriptions []SubscriptionBreakdown
}
