package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

func NewService(logger *logrus.Logger) *service {
	return &service{
		logger: logger,
		now:    time.Now,
	}
}

// NewDocument converts orphans into the export representation.
func NewDocument(orphans []model.OrphanedSnapshot, generatedAt time.Time) Document {
	records := make([]Record, 0, len(orphans))
	for _, o := range orphans {
		tags := o.Tags
		if tags == nil {
			tags = map[string]string{}
		}
		records = append(records, Record{
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
		})
	}

	return Document{
		GeneratedAt:       generatedAt.UTC().Format(time.RFC3339),
		OrphanedSnapshots: records,
	}
}

// Export writes orphans to path as YAML when the extension is .yaml/.yml and
// as indented JSON otherwise. Nothing is written for an empty set.
func (s *service) Export(orphans []model.OrphanedSnapshot, path string) error {
	if len(orphans) == 0 {
		s.logger.Info("No orphaned snapshots to export")
		return nil
	}

	data, err := Marshal(NewDocument(orphans, s.now()), path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}

	s.logger.Infof("Exported %d orphaned snapshots to %s", len(orphans), path)
	return nil
}

// Marshal encodes doc in the format implied by path.
func Marshal(doc Document, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode export as yaml: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode export as json: %w", err)
		}
		return append(data, '\n'), nil
	}
}
