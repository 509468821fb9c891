package database

import (
	"context"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"gorm.io/gorm"
)

func (gdb *GormDB) CreateImage(ctx context.Context, img *models.PropertyImage) error {
	return gdb.with(ctx).Create(img).Error
}

func (gdb *GormDB) GetImage(ctx context.Context, id string) (*models.PropertyImage, error) {
	var img models.PropertyImage
	if err := gdb.with(ctx).Where("id = ?", id).First(&img).Error; err != nil {
		return nil, lookupErr(err, "image", id)
	}
	return &img, nil
}

// ListImages returns live images of the given properties and units in display order.
func (gdb *GormDB) ListImages(ctx context.Context, propertyIDs, unitIDs []string) ([]models.PropertyImage, error) {
	var images []models.PropertyImage
	switch {
	case len(propertyIDs) == 0 && len(unitIDs) == 0:
		return nil, nil
	case len(unitIDs) == 0:
		err := gdb.with(ctx).Where("property_id IN ?", propertyIDs).
			Order("display_order ASC, created_at ASC").Find(&images).Error
		return images, err
	case len(propertyIDs) == 0:
		err := gdb.with(ctx).Where("unit_id IN ?", unitIDs).
			Order("display_order ASC, created_at ASC").Find(&images).Error
		return images, err
	}
	err := gdb.with(ctx).
		Where("property_id IN ? OR unit_id IN ?", propertyIDs, unitIDs).
		Order("display_order ASC, created_at ASC").
		Find(&images).Error
	return images, err
}

// siblings scopes images to the same owner (property or unit) as the arguments.
func siblings(propertyID, unitID *string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if unitID != nil {
			return tx.Where("unit_id = ?", *unitID)
		}
		if propertyID != nil {
			return tx.Where("property_id = ?", *propertyID)
		}
		return tx.Where("1 = 0")
	}
}

// NextDisplayOrder returns max(display_order)+1 among live siblings, or 0 for the first image.
func (gdb *GormDB) NextDisplayOrder(ctx context.Context, propertyID, unitID *string) (int, error) {
	var result struct {
		MaxOrder *int
	}
	err := gdb.with(ctx).Model(&models.PropertyImage{}).
		Scopes(siblings(propertyID, unitID)).
		Select("MAX(display_order) AS max_order").
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	if result.MaxOrder == nil {
		return 0, nil
	}
	return *result.MaxOrder + 1, nil
}

func (gdb *GormDB) UnsetOtherPrimaries(ctx context.Context, img *models.PropertyImage) error {
	return gdb.with(ctx).Model(&models.PropertyImage{}).
		Scopes(siblings(img.PropertyID, img.UnitID)).
		Where("id <> ? AND is_primary = ?", img.ID, true).
		UpdateColumn("is_primary", false).Error
}

func (gdb *GormDB) MarkPrimary(ctx context.Context, imageID string) error {
	return gdb.with(ctx).Model(&models.PropertyImage{}).
		Where("id = ?", imageID).
		UpdateColumn("is_primary", true).Error
}

func (gdb *GormDB) SoftDeleteImage(ctx context.Context, id string) (int64, error) {
	res := gdb.with(ctx).Where("id = ?", id).Delete(&models.PropertyImage{})
	return res.RowsAffected, res.Error
}

// SoftDeleteImagesOfProperty must run before the property's units are deleted.
func (gdb *GormDB) SoftDeleteImagesOfProperty(ctx context.Context, propertyID string) (int64, error) {
	res := gdb.with(ctx).
		Where("property_id = ? OR unit_id IN (SELECT id FROM property_units WHERE property_id = ? AND deleted_at IS NULL)",
			propertyID, propertyID).
		Delete(&models.PropertyImage{})
	return res.RowsAffected, res.Error
}

func (gdb *GormDB) SoftDeleteImagesOfUnit(ctx context.Context, unitID string) (int64, error) {
	res := gdb.with(ctx).Where("unit_id = ?", unitID).Delete(&models.PropertyImage{})
	return res.RowsAffected, res.Error
}
