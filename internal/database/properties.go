package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/counter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (gdb *GormDB) CreateProperty(ctx context.Context, p *models.Property) error {
	return gdb.with(ctx).Create(p).Error
}

// UpdatePropertyColumns writes only the listed columns, leaving counters untouched.
func (gdb *GormDB) UpdatePropertyColumns(ctx context.Context, p *models.Property, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	return gdb.with(ctx).Model(p).Select(columns).Updates(p).Error
}

// GetProperty retrieves a live property by ID
func (gdb *GormDB) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := gdb.with(ctx).Where("id = ?", id).First(&property).Error
	if err != nil {
		return nil, lookupErr(err, "property", id)
	}
	return &property, nil
}

func (gdb *GormDB) GetPropertiesByIDs(ctx context.Context, ids []string) ([]models.Property, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var properties []models.Property
	err := gdb.with(ctx).Where("id IN ?", ids).Find(&properties).Error
	return properties, err
}

// FindProperties returns one page of live properties matching pred plus the total match count.
func (gdb *GormDB) FindProperties(ctx context.Context, pred filter.Predicate, q pagination.Query) ([]models.Property, int64, error) {
	where, args, err := renderWhere(pred, propertyColumns, true)
	if err != nil {
		return nil, 0, err
	}
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Model(&models.Property{})
		if where != "" {
			tx = tx.Where(where, args...)
		}
		return tx
	}

	var total int64
	if err := gdb.with(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var properties []models.Property
	err = gdb.with(ctx).Scopes(scope).
		Order(orderClause(propertySorts, q.SortField, q.Ascending, "properties")).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&properties).Error
	return properties, total, err
}

// ListOwnerProperties returns every live property of the owner, newest first.
func (gdb *GormDB) ListOwnerProperties(ctx context.Context, ownerID string) ([]models.Property, error) {
	var properties []models.Property
	err := gdb.with(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&properties).Error
	return properties, err
}

func (gdb *GormDB) CountPropertiesByStatus(ctx context.Context, ownerID string) (map[models.PropertyStatus]int64, error) {
	var rows []struct {
		Status models.PropertyStatus
		Total  int64
	}
	err := gdb.with(ctx).Model(&models.Property{}).
		Select("status, COUNT(*) AS total").
		Where("owner_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.PropertyStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// SoftDeleteProperty marks the property deleted. Already deleted rows are not counted.
func (gdb *GormDB) SoftDeleteProperty(ctx context.Context, id string) (int64, error) {
	res := gdb.with(ctx).Where("id = ?", id).Delete(&models.Property{})
	return res.RowsAffected, res.Error
}

// AdjustCounters applies each step as a single UPDATE so concurrent requests never lose counts.
// Decrements stop at zero.
func (gdb *GormDB) AdjustCounters(ctx context.Context, propertyID string, plan []counter.Adjustment) error {
	for _, adj := range plan {
		col := adj.Kind.Column()
		if col == "" {
			return fmt.Errorf("unknown counter %q", adj.Kind)
		}
		var expr clause.Expr
		if adj.Increment() {
			expr = gorm.Expr(col + " + 1")
		} else {
			expr = gorm.Expr("CASE WHEN " + col + " > 0 THEN " + col + " - 1 ELSE 0 END")
		}
		res := gdb.with(ctx).Model(&models.Property{}).
			Where("id = ?", propertyID).
			UpdateColumn(col, expr)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 && adj.Increment() {
			return fmt.Errorf("%w: property %s", catalog.ErrNotFound, propertyID)
		}
	}
	return nil
}

// ReplaceTags swaps the complete tag set of a property.
func (gdb *GormDB) ReplaceTags(ctx context.Context, propertyID string, tags []string) error {
	return gdb.with(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", propertyID).Delete(&models.PropertyTag{}).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		rows := make([]models.PropertyTag, 0, len(tags))
		for _, t := range tags {
			rows = append(rows, models.PropertyTag{PropertyID: propertyID, Tag: t})
		}
		return tx.Create(&rows).Error
	})
}

func (gdb *GormDB) TagsFor(ctx context.Context, propertyIDs []string) (map[string][]string, error) {
	out := make(map[string][]string)
	if len(propertyIDs) == 0 {
		return out, nil
	}
	var rows []models.PropertyTag
	err := gdb.with(ctx).
		Where("property_id IN ?", propertyIDs).
		Order("tag ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.PropertyID] = append(out[r.PropertyID], r.Tag)
	}
	return out, nil
}

// ExpireFeatured clears the featured flag of properties whose featured window ended before now.
func (gdb *GormDB) ExpireFeatured(ctx context.Context, now time.Time) (int64, error) {
	res := gdb.with(ctx).Model(&models.Property{}).
		Where("is_featured = ? AND featured_until IS NOT NULL AND featured_until < ?", true, now).
		Updates(map[string]interface{}{
			"is_featured": false,
			"updated_at":  now,
		})
	return res.RowsAffected, res.Error
}
