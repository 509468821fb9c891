package search

import (
	"time"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
)

// PropertyDocument is the flattened form of a property stored in the index.
// Times are unix seconds so they can be filtered and sorted.
type PropertyDocument struct {
	ID           string `json:"id"`
	OwnerID      string `json:"owner_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PropertyType string `json:"property_type"`
	Status       string `json:"status"`

	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	Neighborhood  string `json:"neighborhood,omitempty"`

	MonthlyRent     *float64 `json:"monthly_rent"`
	SecurityDeposit *float64 `json:"security_deposit"`
	Bedrooms        *int     `json:"bedrooms"`
	Bathrooms       *float64 `json:"bathrooms"`
	SquareFootage   *int     `json:"square_footage"`
	GarageSpaces    *int     `json:"garage_spaces"`

	UtilitiesIncluded bool `json:"utilities_included"`
	PetFriendly       bool `json:"pet_friendly"`
	Furnished         bool `json:"furnished"`
	ParkingAvailable  bool `json:"parking_available"`
	SmokeFree         bool `json:"smoke_free"`
	ElevatorBuilding  bool `json:"elevator_building"`
	AirConditioning   bool `json:"air_conditioning"`
	IsAvailable       bool `json:"is_available"`
	IsFeatured        bool `json:"is_featured"`

	FeaturedUntil *int64 `json:"featured_until"`
	AvailableFrom *int64 `json:"available_from"`
	CreatedAt     int64  `json:"created_at"`
	UpdatedAt     int64  `json:"updated_at"`

	MinCreditScore    *int     `json:"min_credit_score"`
	MinIncomeMultiple *float64 `json:"min_income_multiple"`
	LeaseMinMonths    *int     `json:"lease_min_months"`
	LeaseMaxMonths    *int     `json:"lease_max_months"`
	ViewCount         int64    `json:"view_count"`

	Tags         []string `json:"tags"`
	ImageCount   int      `json:"image_count"`
	ImageTypes   []string `json:"image_types"`
	Has360Images bool     `json:"has_360_images"`

	Geo *GeoPoint `json:"_geo,omitempty"`
}

// GeoPoint is the reserved _geo attribute.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewDocument flattens a property with its tags and every live image, including unit images.
func NewDocument(p *models.Property, tags []string, images []models.PropertyImage) PropertyDocument {
	doc := PropertyDocument{
		ID:                p.ID,
		OwnerID:           p.OwnerID,
		Name:              p.Name,
		Description:       p.Description,
		PropertyType:      string(p.Type),
		Status:            string(p.Status),
		StreetAddress:     p.Address.StreetAddress,
		City:              p.Address.City,
		State:             p.Address.State,
		ZipCode:           p.Address.ZipCode,
		Neighborhood:      p.Address.Neighborhood,
		MonthlyRent:       p.MonthlyRent,
		SecurityDeposit:   p.SecurityDeposit,
		Bedrooms:          p.Details.Bedrooms,
		Bathrooms:         p.Details.Bathrooms,
		SquareFootage:     p.Details.TotalSquareFootage,
		GarageSpaces:      p.Details.GarageSpaces,
		UtilitiesIncluded: p.UtilitiesIncluded,
		PetFriendly:       p.PetFriendly,
		Furnished:         p.Furnished,
		ParkingAvailable:  p.ParkingAvailable,
		SmokeFree:         p.SmokeFree,
		ElevatorBuilding:  p.Details.ElevatorBuilding,
		AirConditioning:   p.Details.AirConditioning,
		IsAvailable:       p.IsAvailable,
		IsFeatured:        p.IsFeatured,
		FeaturedUntil:     unixPtr(p.FeaturedUntil),
		AvailableFrom:     unixPtr(p.AvailableFrom),
		CreatedAt:         p.CreatedAt.Unix(),
		UpdatedAt:         p.UpdatedAt.Unix(),
		MinCreditScore:    p.MinCreditScore,
		MinIncomeMultiple: p.MinIncomeMultiple,
		LeaseMinMonths:    p.LeaseMinMonths,
		LeaseMaxMonths:    p.LeaseMaxMonths,
		ViewCount:         p.ViewCount,
		Tags:              append([]string{}, tags...),
		ImageTypes:        []string{},
	}
	if p.Latitude != nil && p.Longitude != nil {
		doc.Geo = &GeoPoint{Lat: *p.Latitude, Lng: *p.Longitude}
	}

	seen := make(map[models.ImageType]bool)
	for _, img := range images {
		if img.IsDeleted() {
			continue
		}
		doc.ImageCount++
		if img.Is360View || img.Type == models.ImageType360View {
			doc.Has360Images = true
		}
		if !seen[img.Type] {
			seen[img.Type] = true
			doc.ImageTypes = append(doc.ImageTypes, string(img.Type))
		}
	}
	return doc
}

func unixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.Unix()
	return &v
}
