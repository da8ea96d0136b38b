package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var generatedAt = time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

func newTestService() *service {
	logger, _ := test.NewNullLogger()
	s := NewService(logger)
	s.now = func() time.Time { return generatedAt }
	return s
}

func sampleOrphans() []model.OrphanedSnapshot {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return []model.OrphanedSnapshot{
		{
			SubscriptionID:   "sub-1",
			SubscriptionName: "Prod",
			ResourceGroup:    "rg-a",
			Name:             "nightly",
			ID:               "/subscriptions/sub-1/resourceGroups/rg-a/providers/Microsoft.Compute/snapshots/nightly",
			SourceDiskID:     "/subscriptions/sub-1/resourceGroups/rg-a/providers/Microsoft.Compute/disks/data",
			SizeGB:           128,
			CreatedAt:        &created,
			Tags:             map[string]string{"env": "prod"},
			Status:           model.DiskMissing,
		},
		{
			SubscriptionID:   "sub-1",
			SubscriptionName: "Prod",
			ResourceGroup:    "rg-b",
			Name:             "weird",
			ID:               "/subscriptions/sub-1/resourceGroups/rg-b/providers/Microsoft.Compute/snapshots/weird",
			SourceDiskID:     "/subscriptions/x/bogus/path",
			SizeGB:           4,
			Status:           model.DiskMalformed,
		},
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orphans.json")

	require.NoError(t, newTestService().Export(sampleOrphans(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "2025-02-03T04:05:06Z", doc["generated_at"])

	records := doc["orphaned_snapshots"].([]any)
	require.Len(t, records, 2)

	first := records[0].(map[string]any)
	assert.Equal(t, "sub-1", first["subscription_id"])
	assert.Equal(t, "Prod", first["subscription_name"])
	assert.Equal(t, "rg-a", first["resource_group"])
	assert.Equal(t, "nightly", first["name"])
	assert.Equal(t, float64(128), first["size_gb"])
	assert.Equal(t, "2024-01-02 03:04:05 UTC", first["created_time"])
	assert.Equal(t, map[string]any{"env": "prod"}, first["tags"])
	assert.Equal(t, "missing", first["status"])

	second := records[1].(map[string]any)
	assert.Equal(t, "Unknown", second["created_time"])
	assert.Equal(t, map[string]any{}, second["tags"])
	assert.Equal(t, "malformed_reference", second["status"])

	assert.Contains(t, string(data), "\n  \"generated_at\"")
}

func TestExportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orphans.yaml")

	require.NoError(t, newTestService().Export(sampleOrphans(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "2025-02-03T04:05:06Z", doc.GeneratedAt)
	require.Len(t, doc.OrphanedSnapshots, 2)
	assert.Equal(t, "nightly", doc.OrphanedSnapshots[0].Name)
	assert.Contains(t, string(data), "source_disk_id:")
}

func TestExportEmptyWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orphans.json")

	require.NoError(t, newTestService().Export(nil, path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestExportUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "orphans.json")

	assert.Error(t, newTestService().Export(sampleOrphans(), path))
}
