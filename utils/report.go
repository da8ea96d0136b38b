package utils

import (
	"fmt"
	"io"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// BuildSummary groups orphans by subscription ID in order of first
// appearance. Display names are used as labels unless two subscriptions
// share one, in which case the ID is appended.
func BuildSummary(orphans []model.OrphanedSnapshot) model.OrphanSummary {
	summary := model.OrphanSummary{Count: len(orphans)}

	index := map[string]int{}
	for _, o := range orphans {
		summary.TotalSizeGB += int64(o.SizeGB)

		i, ok := index[o.SubscriptionID]
		if !ok {
			i = len(summary.Subscriptions)
			index[o.SubscriptionID] = i
			summary.Subscriptions = append(summary.Subscriptions, model.SubscriptionBreakdown{
				SubscriptionID: o.SubscriptionID,
				Label:          o.SubscriptionName,
			})
		}
		summary.Subscriptions[i].Count++
		summary.Subscriptions[i].SizeGB += int64(o.SizeGB)
	}

	names := map[string]int{}
	for _, b := range summary.Subscriptions {
		names[b.Label]++
	}
	for i, b := range summary.Subscriptions {
		switch {
		case b.Label == "":
			summary.Subscriptions[i].Label = b.SubscriptionID
		case names[b.Label] > 1:
			summary.Subscriptions[i].Label = fmt.Sprintf("%s (%s)", b.Label, b.SubscriptionID)
		}
	}

	return summary
}

// PrintSummary writes the plain-text summary block.
func PrintSummary(w io.Writer, summary model.OrphanSummary) {
	fmt.Fprintln(w, "\n=== Orphaned Snapshots Summary ===")
	fmt.Fprintf(w, "Total orphaned snapshots: %d\n", summary.Count)
	fmt.Fprintf(w, "Total size: %d GB\n", summary.TotalSizeGB)

	fmt.Fprintln(w, "\nBreakdown by subscription:")
	for _, b := range summary.Subscriptions {
		fmt.Fprintf(w, "  - %s\n", b)
	}
}

// DrawOrphanTable renders one row per orphaned snapshot.
func DrawOrphanTable(w io.Writer, orphans []model.OrphanedSnapshot) {
	fmt.Fprintln(w, "\nOrphaned Snapshots:")

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Subscription", "Resource Group", "Snapshot Name", "Size (GB)", "Created Time", "Status"})
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})

	for _, o := range orphans {
		tw.AppendRow(table.Row{
			o.SubscriptionName,
			o.ResourceGroup,
			o.Name,
			o.SizeGB,
			o.CreatedTime(),
			formatStatus(w, o.Status),
		})
	}

	tw.Render()
}

func formatStatus(w io.Writer, status model.DiskStatus) string {
	switch status {
	case model.DiskMissing:
		return paint(w, text.FgHiRed, string(status))
	case model.DiskMalformed, model.DiskUnverified:
		return paint(w, text.FgHiYellow, string(status))
	default:
		return string(status)
	}
}

// paint colours s only when w is a terminal; redirected reports stay plain.
func paint(w io.Writer, color text.Color, s string) string {
	if !writerIsTTY(w) {
		return s
	}
	return color.Sprint(s)
}

// DrawScanFailures lists subscriptions and snapshots the scan had to skip.
func DrawScanFailures(w io.Writer, failures []model.ScanFailure) {
	if len(failures) == 0 {
		return
	}

	fmt.Fprintf(w, "\n %s\n", paint(w, text.FgHiYellow, fmt.Sprintf("⚠ %d item(s) could not be scanned", len(failures))))

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Subscription", "Snapshot", "Error"})
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	for _, f := range failures {
		snapshot := f.SnapshotID
		if snapshot == "" {
			snapshot = "-"
		}
		tw.AppendRow(table.Row{f.SubscriptionID, snapshot, paint(w, text.FgRed, f.Err.Error())})
	}

	tw.Render()
}

// DrawDeletionResults prints the outcome of a deletion pass.
func DrawDeletionResults(w io.Writer, outcome model.DeletionOutcome) {
	fmt.Fprintln(w, "\n=== Deletion Results ===")
	fmt.Fprintf(w, "Successful: %d\n", outcome.Successful)
	fmt.Fprintf(w, "Failed: %d\n", outcome.Failed)
}
