package database

import (
	"fmt"
	"log/slog"

	"github.com/sonit/feedbacksite/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by list queries
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   any
		table   string
		name    string
		columns string
	}{
		// Newest-first listings within a sub-tab
		{&models.Feedback{}, "feedback", "idx_feedback_sub_tab_created_at", "sub_tab_id, created_at"},
		// Public listings by category and priority
		{&models.Feedback{}, "feedback", "idx_feedback_category_created_at", "category, created_at"},
		{&models.Feedback{}, "feedback", "idx_feedback_priority_created_at", "priority, created_at"},
		// Default sub-tab lookup
		{&models.SubTab{}, "sub_tabs", "idx_sub_tabs_tab_default", "tab_id, is_default"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			slog.Debug("index already exists, skipping", slog.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index",
			slog.String("index", idx.name),
			slog.String("table", idx.table),
			slog.String("columns", idx.columns),
		)
	}

	return nil
}
