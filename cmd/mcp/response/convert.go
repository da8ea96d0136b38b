package response

import (
	"time"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/elC0mpa/snapshot-doctor/utils"
)

// ConvertSubscriptions converts model.Subscription values for provider
func ConvertSubscriptions(provider string, subscriptions []model.Subscription) []Subscription {
	result := make([]Subscription, 0, len(subscriptions))
	for _, sub := range subscriptions {
		result = append(result, Subscription{
			Provider:       provider,
			SubscriptionID: sub.ID,
			DisplayName:    sub.Name,
			State:          sub.State,
		})
	}
	return result
}

// ConvertOrphanedSnapshot converts model.OrphanedSnapshot to response.OrphanedSnapshot
func ConvertOrphanedSnapshot(o model.OrphanedSnapshot) OrphanedSnapshot {
	tags := o.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	return OrphanedSnapshot{
		SubscriptionID:   o.SubscriptionID,
		SubscriptionName: o.SubscriptionName,
		ResourceGroup:    o.ResourceGroup,
		Name:             o.Name,
		ID:               o.ID,
		SourceDiskID:     o.SourceDiskID,
		SizeGB:           o.SizeGB,
		CreatedTime:      o.CreatedTime(),
		Tags:             tags,
		Status:           string(o.Status),
	}
}

// ConvertScanResult builds the report for a finished scan
func ConvertScanResult(provider string, result model.ScanResult, generatedAt time.Time) OrphanReport {
	summary := utils.BuildSummary(result.Orphans)

	report := OrphanReport{
		Provider:    provider,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Summary: Summary{
			TotalOrphaned:        summary.Count,
			TotalSizeGB:          summary.TotalSizeGB,
			SubscriptionsScanned: result.SubscriptionsScanned,
			SnapshotsScanned:     result.SnapshotsScanned,
			BySubscription:       make([]SubscriptionBreakdown, 0, len(summary.Subscriptions)),
		},
		OrphanedSnapshots: make([]OrphanedSnapshot, 0, len(result.Orphans)),
		Failures:          make([]ScanFailure, 0, len(result.Failures)),
	}

	for _, b := range summary.Subscriptions {
		report.Summary.BySubscription = append(report.Summary.BySubscription, SubscriptionBreakdown{
			SubscriptionID: b.SubscriptionID,
			Label:          b.Label,
			Count:          b.Count,
			SizeGB:         b.SizeGB,
		})
	}
	for _, o := range result.Orphans {
		report.OrphanedSnapshots = append(report.OrphanedSnapshots, ConvertOrphanedSnapshot(o))
	}
	for _, f := range result.Failures {
		report.Failures = append(report.Failures, ScanFailure{
			SubscriptionID: f.SubscriptionID,
			SnapshotID:     f.SnapshotID,
			Error:          f.Err.Error(),
		})
	}

	return report
}
