package database

import (
	"context"
	"strconv"
	"strings"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/pagination"
	"gorm.io/gorm"
)

func (gdb *GormDB) CreateUnit(ctx context.Context, u *models.PropertyUnit) error {
	return gdb.with(ctx).Create(u).Error
}

func (gdb *GormDB) UpdateUnitColumns(ctx context.Context, u *models.PropertyUnit, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	return gdb.with(ctx).Model(u).Select(columns).Updates(u).Error
}

// GetUnit finds a live unit of the given property.
func (gdb *GormDB) GetUnit(ctx context.Context, propertyID, unitID string) (*models.PropertyUnit, error) {
	var unit models.PropertyUnit
	err := gdb.with(ctx).
		Where("id = ? AND property_id = ?", unitID, propertyID).
		First(&unit).Error
	if err != nil {
		return nil, lookupErr(err, "unit", unitID)
	}
	return &unit, nil
}

func (gdb *GormDB) ListUnits(ctx context.Context, propertyIDs []string) ([]models.PropertyUnit, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}
	var units []models.PropertyUnit
	err := gdb.with(ctx).
		Where("property_id IN ?", propertyIDs).
		Order("created_at ASC, id ASC").
		Find(&units).Error
	return units, err
}

func (gdb *GormDB) FindUnits(ctx context.Context, pred filter.Predicate, q pagination.Query) ([]models.PropertyUnit, int64, error) {
	where, args, err := renderWhere(pred, unitColumns, false)
	if err != nil {
		return nil, 0, err
	}
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Model(&models.PropertyUnit{})
		if where != "" {
			tx = tx.Where(where, args...)
		}
		return tx
	}

	var total int64
	if err := gdb.with(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var units []models.PropertyUnit
	err = gdb.with(ctx).Scopes(scope).
		Order(orderClause(unitSorts, q.SortField, q.Ascending, "property_units")).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&units).Error
	return units, total, err
}

// NextUnitNumber returns one past the highest numeric unit number among live units.
// Non-numeric numbers such as "2B" are ignored.
func (gdb *GormDB) NextUnitNumber(ctx context.Context, propertyID string) (string, error) {
	var numbers []string
	err := gdb.with(ctx).Model(&models.PropertyUnit{}).
		Where("property_id = ?", propertyID).
		Pluck("unit_number", &numbers).Error
	if err != nil {
		return "", err
	}
	max := 0
	for _, n := range numbers {
		if v, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && v > max {
			max = v
		}
	}
	return strconv.Itoa(max + 1), nil
}

func (gdb *GormDB) SoftDeleteUnit(ctx context.Context, unitID string) (int64, error) {
	res := gdb.with(ctx).Where("id = ?", unitID).Delete(&models.PropertyUnit{})
	return res.RowsAffected, res.Error
}

func (gdb *GormDB) SoftDeleteUnitsOfProperty(ctx context.Context, propertyID string) (int64, error) {
	res := gdb.with(ctx).Where("property_id = ?", propertyID).Delete(&models.PropertyUnit{})
	return res.RowsAffected, res.Error
}
