package response

// Subscription represents a subscription, AWS account or GCP project
type Subscription struct {
	Provider       string `json:"provider"`
	SubscriptionID string `json:"subscription_id"`
	DisplayName    string `json:"display_name"`
	State          string `json:"state"`
}

// OrphanedSnapshot represents a snapshot whose source disk is gone
type OrphanedSnapshot struct {
	SubscriptionID   string            `json:"subscription_id"`
	SubscriptionName string            `json:"subscription_name"`
	ResourceGroup    string            `json:"resource_group"`
	Name             string            `json:"name"`
	ID               string            `json:"id"`
	SourceDiskID     string            `json:"source_disk_id"`
	SizeGB           int32             `json:"size_gb"`
	CreatedTime      string            `json:"created_time"`
	Tags             map[string]string `json:"tags"`
	Status           string            `json:"status"`
}

// SubscriptionBreakdown is the orphan count and size for one subscription
type SubscriptionBreakdown struct {
	SubscriptionID string `json:"subscription_id"`
	Label          string `json:"label"`
	Count          int    `json:"count"`
	SizeGB         int64  `json:"size_gb"`
}

// Summary aggregates the orphaned snapshots of a scan
type Summary struct {
	TotalOrphaned        int                     `json:"total_orphaned"`
	TotalSizeGB          int64                   `json:"total_size_gb"`
	SubscriptionsScanned int                     `json:"subscriptions_scanned"`
	SnapshotsScanned     int                     `json:"snapshots_scanned"`
	BySubscription       []SubscriptionBreakdown `json:"by_subscription"`
}

// ScanFailure represents a subscription or snapshot that could not be scanned
type ScanFailure struct {
	SubscriptionID string `json:"subscription_id"`
	SnapshotID     string `json:"snapshot_id,omitempty"`
	Error          string `json:"error"`
}

// OrphanReport is the result of find_orphaned_snapshots
type OrphanReport struct {
	Provider          string             `json:"provider"`
	GeneratedAt       string             `json:"generated_at"`
	Summary           Summary            `json:"summary"`
	OrphanedSnapshots []OrphanedSnapshot `json:"orphaned_snapshots"`
	Failures          []ScanFailure      `json:"failures"`
}
