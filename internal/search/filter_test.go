package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/pagination"
)

var now = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func TestRenderFilterEmpty(t *testing.T) {
	expr, query, err := renderFilter(filter.ForProperties(filter.PropertyCriteria{}, now))
	require.NoError(t, err)
	assert.Empty(t, expr)
	assert.Empty(t, query)
}

func TestRenderFilterCombinesClauses(t *testing.T) {
	status := models.PropertyStatusPublished
	pred := filter.ForProperties(filter.PropertyCriteria{
		Status:      &status,
		State:       `O'Fallon`,
		MinRent:     ptr(1000.5),
		MaxRent:     ptr(2000.0),
		PetFriendly: ptr(true),
		Tags:        []string{"pool", "Garden"},
		Keyword:     "Sunny Loft",
	}, now)

	expr, query, err := renderFilter(pred)
	require.NoError(t, err)
	assert.Equal(t,
		`(status = "published" AND state = "O'Fallon" AND (monthly_rent >= 1000.5 AND monthly_rent <= 2000)`+
			` AND pet_friendly = true AND tags IN ["pool", "garden"])`,
		expr)
	assert.Equal(t, "sunny loft", query)
}

func TestRenderFilterFeaturedAndParking(t *testing.T) {
	pred := filter.ForProperties(filter.PropertyCriteria{
		IsFeatured:       ptr(true),
		ParkingAvailable: ptr(true),
	}, now)

	expr, _, err := renderFilter(pred)
	require.NoError(t, err)
	assert.Equal(t,
		"((parking_available = true OR garage_spaces > 0) AND"+
			" (is_featured = true AND (featured_until IS NULL OR featured_until >= 1772323200)))",
		expr)
}

func TestRenderFilterImagesAndGeo(t *testing.T) {
	pred := filter.ForProperties(filter.PropertyCriteria{
		HasImages:    ptr(true),
		Has360Images: ptr(true),
		Latitude:     ptr(30.25),
		Longitude:    ptr(-97.75),
		RadiusKm:     ptr(2.5),
	}, now)

	expr, _, err := renderFilter(pred)
	require.NoError(t, err)
	assert.Equal(t, "(image_count > 0 AND has_360_images = true AND _geoRadius(30.25, -97.75, 2500))", expr)
}

func TestRenderFilterRejectsUnknownField(t *testing.T) {
	_, _, err := renderFilter(filter.And{filter.Clause{Field: filter.FieldFloor, Op: filter.OpEq, Value: 1}})
	assert.ErrorIs(t, err, filter.ErrUnsupported)
}

func TestRenderFilterDayBoundsAndCity(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expr, _, err := renderFilter(filter.ForProperties(filter.PropertyCriteria{CreatedFrom: &day, CreatedTo: &day}, now))
	require.NoError(t, err)
	assert.Equal(t, "(created_at >= 1772323200 AND created_at < 1772409600)", expr)

	_, _, err = renderFilter(filter.ForProperties(filter.PropertyCriteria{City: "aus"}, now))
	assert.ErrorIs(t, err, filter.ErrUnsupported)
}

func TestBuildRequest(t *testing.T) {
	req, query, err := buildRequest(
		filter.ForProperties(filter.PropertyCriteria{State: "TX"}, now),
		pagination.Resolve(3, 10, "monthlyRent", "asc"),
	)
	require.NoError(t, err)
	assert.Empty(t, query)
	assert.EqualValues(t, 20, req.Offset)
	assert.EqualValues(t, 10, req.Limit)
	assert.Equal(t, []string{"monthly_rent:asc"}, req.Sort)
	assert.Equal(t, `state = "TX"`, req.Filter)

	req, _, err = buildRequest(filter.And{}, pagination.Resolve(1, 10, "bogus", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"created_at:desc"}, req.Sort)
	assert.Nil(t, req.Filter)
}

func TestNewDocument(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &models.Property{
		ID:        "p1",
		Name:      "Loft",
		Type:      models.PropertyTypeStudio,
		Status:    models.PropertyStatusPublished,
		Latitude:  ptr(1.5),
		Longitude: ptr(2.5),
	}
	p.CreatedAt = created
	images := []models.PropertyImage{
		{ID: "i1", Type: models.ImageTypeExterior},
		{ID: "i2", Type: models.ImageType360View},
		{ID: "i3", Type: models.ImageTypeExterior},
	}

	doc := NewDocument(p, []string{"quiet"}, images)
	assert.Equal(t, "studio", doc.PropertyType)
	assert.Equal(t, created.Unix(), doc.CreatedAt)
	assert.Equal(t, 3, doc.ImageCount)
	assert.True(t, doc.Has360Images)
	assert.Equal(t, []string{"exterior", "360-view"}, doc.ImageTypes)
	assert.Equal(t, &GeoPoint{Lat: 1.5, Lng: 2.5}, doc.Geo)
	assert.Nil(t, doc.FeaturedUntil)
}
