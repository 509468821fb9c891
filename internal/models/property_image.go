package models

// PropertyImage is a media asset attached to either a property or one of its units.
// Exactly one of PropertyID and UnitID is set.
type PropertyImage struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID   *string   `gorm:"type:varchar(36);index" json:"propertyId,omitempty"`
	UnitID       *string   `gorm:"type:varchar(36);index" json:"unitId,omitempty"`
	URL          string    `gorm:"column:url;type:varchar(1024);not null" json:"url"`
	ThumbnailURL string    `gorm:"column:thumbnail_url;type:varchar(1024)" json:"thumbnailUrl,omitempty"`
	Type         ImageType `gorm:"column:image_type;type:varchar(20);not null" json:"imageType"`
	Title        string    `gorm:"type:varchar(255)" json:"title,omitempty"`
	Caption      string    `gorm:"type:text" json:"caption,omitempty"`
	AltText      string    `gorm:"type:varchar(255)" json:"altText,omitempty"`
	DisplayOrder int       `gorm:"not null;default:0;index" json:"displayOrder"`
	IsPrimary    bool      `gorm:"not null" json:"isPrimary"`
	IsFeatured   bool      `gorm:"not null" json:"isFeatured"`
	Is360View    bool      `gorm:"column:is_360_view;not null" json:"is360View"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	FileSize     *int64    `json:"fileSize,omitempty"`
	Format       string    `gorm:"type:varchar(20)" json:"format,omitempty"`
	MimeType     string    `gorm:"type:varchar(100)" json:"mimeType,omitempty"`

	Tracked
}

// TableName specifies the table name for PropertyImage
func (PropertyImage) TableName() string {
	return "property_images"
}

// BelongsTo reports whether the image is attached to the property directly
// or through one of the given unit ids.
func (i *PropertyImage) BelongsTo(propertyID string, unitIDs ...string) bool {
	if i.PropertyID != nil {
		return *i.PropertyID == propertyID
	}
	if i.UnitID != nil {
		for _, id := range unitIDs {
			if *i.UnitID == id {
				return true
			}
		}
	}
	return false
}
