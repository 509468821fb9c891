// Package cleanup physically purges properties that have stayed soft-deleted past the retention period.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
)

// BlobDeleter removes stored image bytes. Deleting a missing blob is not an error.
type BlobDeleter interface {
	Delete(ctx context.Context, url string) error
}

// Service handles physical deletion of soft-deleted properties
type Service struct {
	db     *gorm.DB
	blobs  BlobDeleter
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new cleanup service. blobs may be nil.
func NewService(db *gorm.DB, blobs BlobDeleter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:     db,
		blobs:  blobs,
		logger: logger.With("component", "cleanup"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CleanupConfig holds configuration for cleanup operations
type CleanupConfig struct {
	RetentionDays    int  // Days a property stays soft-deleted before it is purged
	MaxDeletionCount int  // Safety limit on properties purged in one run
	DryRun           bool // Only report what would be purged
	DeleteBlobs      bool // Also remove stored image files
}

// DefaultCleanupConfig returns default configuration
func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		RetentionDays:    90,
		MaxDeletionCount: 10000,
		DeleteBlobs:      true,
	}
}

// CleanupResult holds the result of a cleanup operation
type CleanupResult struct {
	TargetCount       int       `json:"target_count"`
	DeletedCount      int       `json:"deleted_count"`
	ErrorCount        int       `json:"error_count"`
	BlobErrors        int       `json:"blob_errors"`
	DryRun            bool      `json:"dry_run"`
	ExecutedAt        time.Time `json:"executed_at"`
	DeletedProperties []string  `json:"deleted_properties"`
	Errors            []string  `json:"errors,omitempty"`
}

// FindExpiredProperties finds soft-deleted properties whose deletion is older than retentionDays
func (s *Service) FindExpiredProperties(ctx context.Context, retentionDays int) ([]models.Property, error) {
	var properties []models.Property
	cutoff := s.now().AddDate(0, 0, -retentionDays)

	err := s.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Order("deleted_at ASC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find expired properties: %w", err)
	}

	s.logger.Info("Found expired properties", "count", len(properties), "cutoff", cutoff.Format("2006-01-02"))
	return properties, nil
}

// PhysicallyDelete purges every expired property with its units, images and tags.
// Each property is removed in its own transaction and leaves a DeleteLog entry.
func (s *Service) PhysicallyDelete(ctx context.Context, config CleanupConfig) (*CleanupResult, error) {
	result := &CleanupResult{
		DryRun:            config.DryRun,
		ExecutedAt:        s.now(),
		DeletedProperties: []string{},
	}

	expired, err := s.FindExpiredProperties(ctx, config.RetentionDays)
	if err != nil {
		return nil, err
	}
	result.TargetCount = len(expired)
	if result.TargetCount == 0 {
		return result, nil
	}

	// Safety check: abort if too many properties would be deleted
	if config.MaxDeletionCount > 0 && result.TargetCount > config.MaxDeletionCount {
		return nil, fmt.Errorf("safety check failed: %d properties exceed max deletion limit of %d",
			result.TargetCount, config.MaxDeletionCount)
	}

	s.logger.Info("Starting cleanup",
		"targets", result.TargetCount, "retention_days", config.RetentionDays, "dry_run", config.DryRun)

	for i := range expired {
		prop := &expired[i]
		if config.DryRun {
			s.logger.Info("Would purge property", "property_id", prop.ID, "name", prop.Name)
			result.DeletedProperties = append(result.DeletedProperties, prop.ID)
			result.DeletedCount++
			continue
		}

		urls, err := s.purge(ctx, prop)
		if err != nil {
			msg := fmt.Sprintf("failed to purge property %s: %v", prop.ID, err)
			s.logger.Error("Purge failed", "property_id", prop.ID, "error", err)
			result.Errors = append(result.Errors, msg)
			result.ErrorCount++
			continue
		}
		if config.DeleteBlobs && s.blobs != nil {
			for _, u := range urls {
				if err := s.blobs.Delete(ctx, u); err != nil {
					s.logger.Warn("Failed to delete image blob", "property_id", prop.ID, "url", u, "error", err)
					result.BlobErrors++
				}
			}
		}

		s.logger.Info("Purged property", "property_id", prop.ID, "name", prop.Name)
		result.DeletedProperties = append(result.DeletedProperties, prop.ID)
		result.DeletedCount++
	}

	s.logger.Info("Cleanup completed",
		"deleted", result.DeletedCount, "targets", result.TargetCount, "errors", result.ErrorCount, "dry_run", config.DryRun)
	return result, nil
}

// purge removes one property and returns the blob URLs its images referenced.
func (s *Service) purge(ctx context.Context, prop *models.Property) ([]string, error) {
	var urls []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		unitIDs := tx.Unscoped().Model(&models.PropertyUnit{}).Select("id").Where("property_id = ?", prop.ID)

		var images []models.PropertyImage
		if err := tx.Unscoped().
			Where("property_id = ? OR unit_id IN (?)", prop.ID, unitIDs).
			Find(&images).Error; err != nil {
			return err
		}
		var unitCount int64
		if err := tx.Unscoped().Model(&models.PropertyUnit{}).
			Where("property_id = ?", prop.ID).
			Count(&unitCount).Error; err != nil {
			return err
		}

		deleteLog := models.DeleteLog{
			PropertyID: prop.ID,
			OwnerID:    prop.OwnerID,
			Name:       prop.Name,
			UnitCount:  int(unitCount),
			ImageCount: len(images),
			Reason:     models.DeleteReasonRetentionExpired,
		}
		if at := prop.GetDeletedAt(); at != nil {
			deleteLog.RemovedAt = *at
		}
		if err := tx.Create(&deleteLog).Error; err != nil {
			return err
		}

		if len(images) > 0 {
			ids := make([]string, len(images))
			for i, img := range images {
				ids[i] = img.ID
			}
			if err := tx.Unscoped().Where("id IN ?", ids).Delete(&models.PropertyImage{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("property_id = ?", prop.ID).Delete(&models.PropertyUnit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", prop.ID).Delete(&models.PropertyTag{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(prop).Error; err != nil {
			return err
		}

		for _, img := range images {
			if img.URL != "" {
				urls = append(urls, img.URL)
			}
			if img.ThumbnailURL != "" {
				urls = append(urls, img.ThumbnailURL)
			}
		}
		return nil
	})
	return urls, err
}

// DeleteStats summarizes purge history and what is waiting to be purged
type DeleteStats struct {
	TotalPurged       int64            `json:"total_purged"`
	ByReason          map[string]int64 `json:"by_reason"`
	PurgedLast30Days  int64            `json:"purged_last_30_days"`
	PendingSoftDelete int64            `json:"pending_soft_deleted"`
	ReadyForPurge     int64            `json:"ready_for_purge"`
}

// GetDeleteStats returns statistics about purged properties
func (s *Service) GetDeleteStats(ctx context.Context, retentionDays int) (*DeleteStats, error) {
	db := s.db.WithContext(ctx)
	stats := &DeleteStats{ByReason: make(map[string]int64)}

	if err := db.Model(&models.DeleteLog{}).Count(&stats.TotalPurged).Error; err != nil {
		return nil, err
	}

	var reasonCounts []struct {
		Reason string
		Count  int64
	}
	if err := db.Model(&models.DeleteLog{}).
		Select("reason, count(*) as count").
		Group("reason").
		Scan(&reasonCounts).Error; err != nil {
		return nil, err
	}
	for _, rc := range reasonCounts {
		stats.ByReason[rc.Reason] = rc.Count
	}

	if err := db.Model(&models.DeleteLog{}).
		Where("purged_at >= ?", s.now().AddDate(0, 0, -30)).
		Count(&stats.PurgedLast30Days).Error; err != nil {
		return nil, err
	}

	if err := db.Unscoped().Model(&models.Property{}).
		Where("deleted_at IS NOT NULL").
		Count(&stats.PendingSoftDelete).Error; err != nil {
		return nil, err
	}
	if err := db.Unscoped().Model(&models.Property{}).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", s.now().AddDate(0, 0, -retentionDays)).
		Count(&stats.ReadyForPurge).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// GetRecentDeleteLogs returns recent delete log entries
func (s *Service) GetRecentDeleteLogs(ctx context.Context, limit int) ([]models.DeleteLog, error) {
	var logs []models.DeleteLog
	err := s.db.WithContext(ctx).Order("purged_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
