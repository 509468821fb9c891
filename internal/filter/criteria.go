package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
)

// PropertyCriteria is the sparse search request for properties.
// A nil or empty field imposes no constraint.
type PropertyCriteria struct {
	OwnerID      string                 `form:"ownerId" json:"ownerId,omitempty"`
	Status       *models.PropertyStatus `form:"status" json:"status,omitempty"`
	PropertyType *models.PropertyType   `form:"propertyType" json:"propertyType,omitempty"`
	City         string                 `form:"city" json:"city,omitempty"`
	State        string                 `form:"state" json:"state,omitempty"`
	ZipCode      string                 `form:"zipCode" json:"zipCode,omitempty"`

	MinRent            *float64 `form:"minRent" json:"minRent,omitempty"`
	MaxRent            *float64 `form:"maxRent" json:"maxRent,omitempty"`
	MinSecurityDeposit *float64 `form:"minSecurityDeposit" json:"minSecurityDeposit,omitempty"`
	MaxSecurityDeposit *float64 `form:"maxSecurityDeposit" json:"maxSecurityDeposit,omitempty"`
	MinBedrooms        *int     `form:"minBedrooms" json:"minBedrooms,omitempty"`
	MaxBedrooms        *int     `form:"maxBedrooms" json:"maxBedrooms,omitempty"`
	MinBathrooms       *float64 `form:"minBathrooms" json:"minBathrooms,omitempty"`
	MaxBathrooms       *float64 `form:"maxBathrooms" json:"maxBathrooms,omitempty"`
	MinSquareFootage   *int     `form:"minSquareFootage" json:"minSquareFootage,omitempty"`
	MaxSquareFootage   *int     `form:"maxSquareFootage" json:"maxSquareFootage,omitempty"`

	UtilitiesIncluded *bool `form:"utilitiesIncluded" json:"utilitiesIncluded,omitempty"`
	PetFriendly       *bool `form:"petFriendly" json:"petFriendly,omitempty"`
	Furnished         *bool `form:"furnished" json:"furnished,omitempty"`
	ParkingAvailable  *bool `form:"parkingAvailable" json:"parkingAvailable,omitempty"`
	SmokeFree         *bool `form:"smokeFree" json:"smokeFree,omitempty"`
	ElevatorBuilding  *bool `form:"elevatorBuilding" json:"elevatorBuilding,omitempty"`
	AirConditioning   *bool `form:"airConditioning" json:"airConditioning,omitempty"`
	IsAvailable       *bool `form:"isAvailable" json:"isAvailable,omitempty"`
	IsFeatured        *bool `form:"isFeatured" json:"isFeatured,omitempty"`

	AvailableFrom *time.Time `form:"availableFrom" time_format:"2006-01-02" time_utc:"1" json:"availableFrom,omitempty"`
	AvailableTo   *time.Time `form:"availableTo" time_format:"2006-01-02" time_utc:"1" json:"availableTo,omitempty"`
	CreatedFrom   *time.Time `form:"createdFrom" time_format:"2006-01-02" time_utc:"1" json:"createdFrom,omitempty"`
	CreatedTo     *time.Time `form:"createdTo" time_format:"2006-01-02" time_utc:"1" json:"createdTo,omitempty"`
	UpdatedFrom   *time.Time `form:"updatedFrom" time_format:"2006-01-02" time_utc:"1" json:"updatedFrom,omitempty"`
	UpdatedTo     *time.Time `form:"updatedTo" time_format:"2006-01-02" time_utc:"1" json:"updatedTo,omitempty"`

	MinCreditScore    *int     `form:"minCreditScore" json:"minCreditScore,omitempty"`
	MinIncomeMultiple *float64 `form:"minIncomeMultiple" json:"minIncomeMultiple,omitempty"`
	MinLeaseMonths    *int     `form:"minLeaseMonths" json:"minLeaseMonths,omitempty"`
	MaxLeaseMonths    *int     `form:"maxLeaseMonths" json:"maxLeaseMonths,omitempty"`
	MinViewCount      *int64   `form:"minViewCount" json:"minViewCount,omitempty"`
	MaxViewCount      *int64   `form:"maxViewCount" json:"maxViewCount,omitempty"`

	Keyword      string   `form:"keyword" json:"keyword,omitempty"`
	Tags         []string `form:"tags" json:"tags,omitempty"`
	HasImages    *bool    `form:"hasImages" json:"hasImages,omitempty"`
	Has360Images *bool    `form:"has360Images" json:"has360Images,omitempty"`

	Latitude  *float64 `form:"latitude" json:"latitude,omitempty"`
	Longitude *float64 `form:"longitude" json:"longitude,omitempty"`
	RadiusKm  *float64 `form:"radiusKm" json:"radiusKm,omitempty"`
}

// Validate rejects values the builder cannot turn into a meaningful predicate.
func (c *PropertyCriteria) Validate() error {
	if c.Status != nil && !c.Status.Valid() {
		return fmt.Errorf("unknown status %q", *c.Status)
	}
	if c.PropertyType != nil && !c.PropertyType.Valid() {
		return fmt.Errorf("unknown property type %q", *c.PropertyType)
	}
	geo := 0
	for _, p := range []*float64{c.Latitude, c.Longitude, c.RadiusKm} {
		if p != nil {
			geo++
		}
	}
	if geo != 0 && geo != 3 {
		return fmt.Errorf("latitude, longitude and radiusKm must be given together")
	}
	if c.RadiusKm != nil && *c.RadiusKm <= 0 {
		return fmt.Errorf("radiusKm must be positive")
	}
	return nil
}

// ForProperties translates criteria into a predicate. now resolves featured expiry.
func ForProperties(c PropertyCriteria, now time.Time) And {
	b := NewBuilder().
		Add(Text(FieldOwnerID, c.OwnerID)).
		Add(Opt(FieldStatus, OpEq, c.Status)).
		Add(Opt(FieldType, OpEq, c.PropertyType)).
		Add(Contains(FieldCity, c.City)).
		Add(Text(FieldState, c.State)).
		Add(Text(FieldZipCode, c.ZipCode)).
		Add(Range(FieldMonthlyRent, c.MinRent, c.MaxRent)).
		Add(Range(FieldSecurityDeposit, c.MinSecurityDeposit, c.MaxSecurityDeposit)).
		Add(Range(FieldBedrooms, c.MinBedrooms, c.MaxBedrooms)).
		Add(Range(FieldBathrooms, c.MinBathrooms, c.MaxBathrooms)).
		Add(Range(FieldSquareFootage, c.MinSquareFootage, c.MaxSquareFootage)).
		Add(Opt(FieldUtilitiesIncluded, OpEq, c.UtilitiesIncluded)).
		Add(Opt(FieldPetFriendly, OpEq, c.PetFriendly)).
		Add(Opt(FieldFurnished, OpEq, c.Furnished)).
		Add(Opt(FieldSmokeFree, OpEq, c.SmokeFree)).
		Add(Opt(FieldElevatorBuilding, OpEq, c.ElevatorBuilding)).
		Add(Opt(FieldAirConditioning, OpEq, c.AirConditioning)).
		Add(Opt(FieldIsAvailable, OpEq, c.IsAvailable)).
		Add(Period(FieldAvailableFrom, c.AvailableFrom, c.AvailableTo)).
		Add(Period(FieldCreatedAt, c.CreatedFrom, c.CreatedTo)).
		Add(Period(FieldUpdatedAt, c.UpdatedFrom, c.UpdatedTo)).
		Add(Opt(FieldMinCreditScore, OpGte, c.MinCreditScore)).
		Add(Opt(FieldMinIncomeMultiple, OpGte, c.MinIncomeMultiple)).
		Add(Opt(FieldLeaseMinMonths, OpGte, c.MinLeaseMonths)).
		Add(Opt(FieldLeaseMaxMonths, OpLte, c.MaxLeaseMonths)).
		Add(Range(FieldViewCount, c.MinViewCount, c.MaxViewCount))

	if c.ParkingAvailable != nil {
		if *c.ParkingAvailable {
			b.Add(Or{
				Clause{Field: FieldParkingAvailable, Op: OpEq, Value: true},
				Clause{Field: FieldGarageSpaces, Op: OpGt, Value: 0},
			})
		} else {
			b.Add(Clause{Field: FieldParkingAvailable, Op: OpEq, Value: false})
		}
	}

	if c.IsFeatured != nil {
		if *c.IsFeatured {
			b.Add(And{
				Clause{Field: FieldIsFeatured, Op: OpEq, Value: true},
				Or{
					Clause{Field: FieldFeaturedUntil, Op: OpIsNull},
					Clause{Field: FieldFeaturedUntil, Op: OpGte, Value: now},
				},
			})
		} else {
			b.Add(Or{
				Clause{Field: FieldIsFeatured, Op: OpEq, Value: false},
				Clause{Field: FieldFeaturedUntil, Op: OpLt, Value: now},
			})
		}
	}

	if kw := strings.TrimSpace(c.Keyword); kw != "" {
		b.Add(Clause{Field: FieldKeyword, Op: OpMatch, Value: strings.ToLower(kw)})
	}
	if tags := NormalizeTags(c.Tags); len(tags) > 0 {
		b.Add(Clause{Field: FieldTags, Op: OpAnyTag, Value: tags})
	}
	if c.HasImages != nil && *c.HasImages {
		b.Add(Clause{Field: FieldImages, Op: OpHasImage, Value: models.ImageType("")})
	}
	if c.Has360Images != nil && *c.Has360Images {
		b.Add(Clause{Field: FieldImages, Op: OpHasImage, Value: models.ImageType360View})
	}
	if c.Latitude != nil && c.Longitude != nil && c.RadiusKm != nil {
		b.Add(Clause{Field: FieldLocation, Op: OpGeoRadius, Value: GeoRadius{
			Latitude:  *c.Latitude,
			Longitude: *c.Longitude,
			RadiusKm:  *c.RadiusKm,
		}})
	}
	return b.Build()
}

// UnitCriteria is the sparse search request for units.
type UnitCriteria struct {
	PropertyID       string             `form:"propertyId" json:"propertyId,omitempty"`
	Status           *models.UnitStatus `form:"status" json:"status,omitempty"`
	MinRent          *float64           `form:"minRent" json:"minRent,omitempty"`
	MaxRent          *float64           `form:"maxRent" json:"maxRent,omitempty"`
	MinBedrooms      *int               `form:"minBedrooms" json:"minBedrooms,omitempty"`
	MaxBedrooms      *int               `form:"maxBedrooms" json:"maxBedrooms,omitempty"`
	MinBathrooms     *float64           `form:"minBathrooms" json:"minBathrooms,omitempty"`
	MaxBathrooms     *float64           `form:"maxBathrooms" json:"maxBathrooms,omitempty"`
	MinSquareFootage *int               `form:"minSquareFootage" json:"minSquareFootage,omitempty"`
	MaxSquareFootage *int               `form:"maxSquareFootage" json:"maxSquareFootage,omitempty"`
	Floor            *int               `form:"floor" json:"floor,omitempty"`
	Furnished        *bool              `form:"furnished" json:"furnished,omitempty"`
	PetFriendly      *bool              `form:"petFriendly" json:"petFriendly,omitempty"`
	IsAvailable      *bool              `form:"isAvailable" json:"isAvailable,omitempty"`
	AvailableBy      *time.Time         `form:"availableBy" time_format:"2006-01-02" time_utc:"1" json:"availableBy,omitempty"`
}

func (c *UnitCriteria) Validate() error {
	if c.Status != nil && !c.Status.Valid() {
		return fmt.Errorf("unknown unit status %q", *c.Status)
	}
	return nil
}

// ForUnits translates unit criteria into a predicate.
func ForUnits(c UnitCriteria) And {
	return NewBuilder().
		Add(Text(FieldPropertyID, c.PropertyID)).
		Add(Opt(FieldStatus, OpEq, c.Status)).
		Add(Range(FieldMonthlyRent, c.MinRent, c.MaxRent)).
		Add(Range(FieldBedrooms, c.MinBedrooms, c.MaxBedrooms)).
		Add(Range(FieldBathrooms, c.MinBathrooms, c.MaxBathrooms)).
		Add(Range(FieldSquareFootage, c.MinSquareFootage, c.MaxSquareFootage)).
		Add(Opt(FieldFloor, OpEq, c.Floor)).
		Add(Opt(FieldFurnished, OpEq, c.Furnished)).
		Add(Opt(FieldPetFriendly, OpEq, c.PetFriendly)).
		Add(Opt(FieldIsAvailable, OpEq, c.IsAvailable)).
		Add(Until(FieldAvailableFrom, c.AvailableBy)).
		Build()
}

// NormalizeTags lower-cases, trims and de-duplicates tags, splitting comma lists.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, raw := range tags {
		for _, t := range strings.Split(raw, ",") {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
