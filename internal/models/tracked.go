package models

import (
	"time"

	"gorm.io/gorm"
)

// Tracked carries the audit and soft-delete columns shared by every catalog entity.
// Rows with a non-null deleted_at are hidden from default gorm queries.
type Tracked struct {
	CreatedAt time.Time      `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TrackedEntity is implemented by every model embedding Tracked.
type TrackedEntity interface {
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
	GetUpdatedAt() time.Time
	SetUpdatedAt(t time.Time)
	GetDeletedAt() *time.Time
	SetDeletedAt(t *time.Time)
	IsDeleted() bool
}

func (t *Tracked) GetCreatedAt() time.Time  { return t.CreatedAt }
func (t *Tracked) SetCreatedAt(v time.Time) { t.CreatedAt = v }
func (t *Tracked) GetUpdatedAt() time.Time  { return t.UpdatedAt }
func (t *Tracked) SetUpdatedAt(v time.Time) { t.UpdatedAt = v }

// GetDeletedAt returns nil for live rows.
func (t *Tracked) GetDeletedAt() *time.Time {
	if !t.DeletedAt.Valid {
		return nil
	}
	v := t.DeletedAt.Time
	return &v
}

func (t *Tracked) SetDeletedAt(v *time.Time) {
	if v == nil {
		t.DeletedAt = gorm.DeletedAt{}
		return
	}
	t.DeletedAt = gorm.DeletedAt{Time: *v, Valid: true}
}

func (t *Tracked) IsDeleted() bool {
	return t.DeletedAt.Valid
}
