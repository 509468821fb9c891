package models

import "time"

// DeleteLog represents a record of physically purged properties
type DeleteLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID string    `gorm:"type:varchar(36);not null;index" json:"propertyId"`
	OwnerID    string    `gorm:"type:varchar(64);not null" json:"ownerId"`
	Name       string    `gorm:"type:varchar(255)" json:"name"`
	UnitCount  int       `gorm:"not null" json:"unitCount"`
	ImageCount int       `gorm:"not null" json:"imageCount"`
	RemovedAt  time.Time `json:"removedAt"`
	PurgedAt   time.Time `gorm:"not null;autoCreateTime;index" json:"purgedAt"`
	Reason     string    `gorm:"type:varchar(50);not null" json:"reason"`
}

// TableName specifies the table name
func (DeleteLog) TableName() string {
	return "delete_logs"
}

// DeleteReason constants
const (
	DeleteReasonRetentionExpired = "retention_expired"
	DeleteReasonManual           = "manual_purge"
)
