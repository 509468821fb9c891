package database

import (
	"testing"
	"time"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWhereEmpty(t *testing.T) {
	sql, args, err := renderWhere(filter.And{}, propertyColumns, true)
	require.NoError(t, err)
	assert.Empty(t, sql)
	assert.Empty(t, args)
}

func TestRenderWhereNested(t *testing.T) {
	min, max := 1000.0, 2000.0
	city := "Austin"
	pred := filter.ForProperties(filter.PropertyCriteria{
		City:    city,
		MinRent: &min,
		MaxRent: &max,
	}, testNow)

	sql, args, err := renderWhere(pred, propertyColumns, true)
	require.NoError(t, err)
	assert.Equal(t, "(LOWER(properties.city) LIKE ? AND (properties.monthly_rent >= ? AND properties.monthly_rent <= ?))", sql)
	assert.Equal(t, []any{"%austin%", min, max}, args)
}

func TestRenderWhereDayBoundsCoverWholeDay(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	pred := filter.ForProperties(filter.PropertyCriteria{CreatedFrom: &day, CreatedTo: &day}, testNow)

	sql, args, err := renderWhere(pred, propertyColumns, true)
	require.NoError(t, err)
	assert.Equal(t, "((properties.created_at >= ? AND properties.created_at < ?))", sql)
	assert.Equal(t, []any{day, day.AddDate(0, 0, 1)}, args)
}

func TestRenderWhereParkingUsesGarage(t *testing.T) {
	yes := true
	pred := filter.ForProperties(filter.PropertyCriteria{ParkingAvailable: &yes}, testNow)

	sql, args, err := renderWhere(pred, propertyColumns, true)
	require.NoError(t, err)
	assert.Equal(t, "((properties.parking_available = ? OR properties.garage_spaces > ?))", sql)
	assert.Equal(t, []any{true, 0}, args)
}

func TestRenderWhereKeywordAndTags(t *testing.T) {
	pred := filter.ForProperties(filter.PropertyCriteria{
		Keyword: " Loft ",
		Tags:    []string{"Garden, pool"},
	}, testNow)

	sql, args, err := renderWhere(pred, propertyColumns, true)
	require.NoError(t, err)
	assert.Contains(t, sql, "LOWER(properties.name) LIKE ?")
	assert.Contains(t, sql, "property_tags.tag IN ?")
	assert.Equal(t, []any{"%loft%", "%loft%", "%loft%", []string{"garden", "pool"}}, args)
}

func TestRenderWhereHas360Images(t *testing.T) {
	yes := true
	pred := filter.ForProperties(filter.PropertyCriteria{Has360Images: &yes}, testNow)

	sql, args, err := renderWhere(pred, propertyColumns, true)
	require.NoError(t, err)
	assert.Contains(t, sql, "EXISTS (SELECT 1 FROM property_images pi WHERE pi.deleted_at IS NULL")
	assert.Equal(t, []any{models.ImageType360View, true}, args)
}

func TestRenderWhereGeoBoundingBox(t *testing.T) {
	lat, lng, r := 0.0, 10.0, kmPerDegree
	pred := filter.ForProperties(filter.PropertyCriteria{Latitude: &lat, Longitude: &lng, RadiusKm: &r}, testNow)

	sql, args, err := renderWhere(pred, propertyColumns, true)
	require.NoError(t, err)
	assert.Contains(t, sql, "properties.latitude BETWEEN ? AND ?")
	require.Len(t, args, 4)
	assert.InDelta(t, -1.0, args[0], 1e-9)
	assert.InDelta(t, 1.0, args[1], 1e-9)
	assert.InDelta(t, 9.0, args[2], 1e-9)
	assert.InDelta(t, 11.0, args[3], 1e-9)
}

func TestRenderWhereRejectsPropertyOperatorsOnUnits(t *testing.T) {
	pred := filter.And{filter.Clause{Field: filter.FieldKeyword, Op: filter.OpMatch, Value: "x"}}
	_, _, err := renderWhere(pred, unitColumns, false)
	assert.ErrorIs(t, err, filter.ErrUnsupported)

	pred = filter.And{filter.Clause{Field: filter.FieldCity, Op: filter.OpEq, Value: "x"}}
	_, _, err = renderWhere(pred, unitColumns, false)
	assert.ErrorIs(t, err, filter.ErrUnsupported)
}

func TestOrderClauseFallsBackToCreatedAt(t *testing.T) {
	assert.Equal(t, "properties.monthly_rent ASC, properties.id ASC",
		orderClause(propertySorts, "monthlyRent", true, "properties"))
	assert.Equal(t, "properties.created_at DESC, properties.id DESC",
		orderClause(propertySorts, "id; DROP TABLE properties", false, "properties"))
}
