package exporter

import (
	"time"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/sirupsen/logrus"
)

type service struct {
	logger *logrus.Logger
	now    func() time.Time
}

type ExporterService interface {
	Export(orphans []model.OrphanedSnapshot, path string) error
}

// Document is the top-level export file
type Document struct {
	GeneratedAt       string   `json:"generated_at" yaml:"generated_at"`
	OrphanedSnapshots []Record `json:"orphaned_snapshots" yaml:"orphaned_snapshots"`
}

// Record is one orphaned snapshot in an export file
type Record struct {
	SubscriptionID   string            `json:"subscription_id" yaml:"subscription_id"`
	SubscriptionName string            `json:"subscription_name" yaml:"subscription_name"`
	ResourceGroup    string            `json:"resource_group" yaml:"resource_group"`
	Name             string            `json:"name" yaml:"name"`
	ID               string            `json:"id" yaml:"id"`
	SourceDiskID     string            `json:"source_disk_id" yaml:"source_disk_id"`
	SizeGB           int32             `json:"size_gb" yaml:"size_gb"`
	CreatedTime      string            `json:"created_time" yaml:"created_time"`
	Tags             map[string]string `json:"tags" yaml:"tags"`
	Status           string            `json:"status" yaml:"status"`
}
