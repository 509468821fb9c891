package models

import (
	"time"

	"gorm.io/datatypes"
)

// Property is a rental listing owned by a landlord.
type Property struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID     string         `gorm:"type:varchar(64);not null;index" json:"ownerId"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Type        PropertyType   `gorm:"column:property_type;type:varchar(20);not null;index" json:"propertyType"`
	Status      PropertyStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	Address Address `gorm:"embedded" json:"address"`
	Details Details `gorm:"embedded" json:"details"`

	// 金額
	ListingPrice    *float64 `gorm:"type:decimal(12,2)" json:"listingPrice,omitempty"`
	MonthlyRent     *float64 `gorm:"type:decimal(10,2);index" json:"monthlyRent,omitempty"`
	SecurityDeposit *float64 `gorm:"type:decimal(10,2)" json:"securityDeposit,omitempty"`
	PetDeposit      *float64 `gorm:"type:decimal(10,2)" json:"petDeposit,omitempty"`
	ApplicationFee  *float64 `gorm:"type:decimal(10,2)" json:"applicationFee,omitempty"`

	UtilitiesIncluded bool       `gorm:"not null" json:"utilitiesIncluded"`
	PetFriendly       bool       `gorm:"not null" json:"petFriendly"`
	Furnished         bool       `gorm:"not null" json:"furnished"`
	ParkingAvailable  bool       `gorm:"not null" json:"parkingAvailable"`
	SmokeFree         bool       `gorm:"not null" json:"smokeFree"`
	IsAvailable       bool       `gorm:"not null;index" json:"isAvailable"`
	AvailableFrom     *time.Time `json:"availableFrom,omitempty"`

	LeaseMinMonths    *int     `json:"leaseMinMonths,omitempty"`
	LeaseMaxMonths    *int     `json:"leaseMaxMonths,omitempty"`
	MinCreditScore    *int     `json:"minCreditScore,omitempty"`
	MinIncomeMultiple *float64 `gorm:"type:decimal(4,2)" json:"minIncomeMultiple,omitempty"`

	ViewCount     int64 `gorm:"not null;default:0" json:"viewCount"`
	InquiryCount  int64 `gorm:"not null;default:0" json:"inquiryCount"`
	FavoriteCount int64 `gorm:"not null;default:0" json:"favoriteCount"`

	IsFeatured    bool       `gorm:"not null;index" json:"isFeatured"`
	FeaturedUntil *time.Time `json:"featuredUntil,omitempty"`

	Latitude  *float64 `gorm:"type:decimal(10,7)" json:"latitude,omitempty"`
	Longitude *float64 `gorm:"type:decimal(10,7)" json:"longitude,omitempty"`

	Notes    string         `gorm:"type:text" json:"notes,omitempty"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	Tracked
}

// TableName はテーブル名を明示的に指定
func (Property) TableName() string {
	return "properties"
}

// FeaturedAt reports whether the featured flag is in effect at t.
func (p *Property) FeaturedAt(t time.Time) bool {
	return p.IsFeatured && (p.FeaturedUntil == nil || !p.FeaturedUntil.Before(t))
}

// Address is embedded into the properties table.
type Address struct {
	StreetAddress  string `gorm:"column:street_address;type:varchar(255)" json:"streetAddress"`
	StreetAddress2 string `gorm:"column:street_address2;type:varchar(255)" json:"streetAddress2,omitempty"`
	City           string `gorm:"column:city;type:varchar(100);index" json:"city"`
	State          string `gorm:"column:state;type:varchar(100);index" json:"state"`
	ZipCode        string `gorm:"column:zip_code;type:varchar(20);index" json:"zipCode"`
	Country        string `gorm:"column:country;type:varchar(100)" json:"country,omitempty"`
	County         string `gorm:"column:county;type:varchar(100)" json:"county,omitempty"`
	Neighborhood   string `gorm:"column:neighborhood;type:varchar(100)" json:"neighborhood,omitempty"`
}

// AddressColumns are the columns written when an address is replaced.
var AddressColumns = []string{
	"street_address", "street_address2", "city", "state", "zip_code", "country", "county", "neighborhood",
}

// Details holds structural attributes of the building.
type Details struct {
	TotalSquareFootage     *int     `gorm:"column:total_square_footage" json:"totalSquareFootage,omitempty"`
	Bedrooms               *int     `gorm:"column:bedrooms" json:"bedrooms,omitempty"`
	Bathrooms              *float64 `gorm:"column:bathrooms;type:decimal(4,1)" json:"bathrooms,omitempty"`
	Floors                 *int     `gorm:"column:floors" json:"floors,omitempty"`
	YearBuilt              *int     `gorm:"column:year_built" json:"yearBuilt,omitempty"`
	LastRenovationYear     *int     `gorm:"column:last_renovation_year" json:"lastRenovationYear,omitempty"`
	HeatingType            string   `gorm:"column:heating_type;type:varchar(50)" json:"heatingType,omitempty"`
	CoolingType            string   `gorm:"column:cooling_type;type:varchar(50)" json:"coolingType,omitempty"`
	AirConditioning        bool     `gorm:"column:air_conditioning;not null" json:"airConditioning"`
	ElevatorBuilding       bool     `gorm:"column:elevator_building;not null" json:"elevatorBuilding"`
	GarageSpaces           *int     `gorm:"column:garage_spaces" json:"garageSpaces,omitempty"`
	OutdoorSpace           string   `gorm:"column:outdoor_space;type:varchar(50)" json:"outdoorSpace,omitempty"`
	EnergyEfficiencyRating string   `gorm:"column:energy_efficiency_rating;type:varchar(10)" json:"energyEfficiencyRating,omitempty"`
	HOAFees                *float64 `gorm:"column:hoa_fees;type:decimal(10,2)" json:"hoaFees,omitempty"`
}

// DetailsColumns are the columns written when details are replaced.
var DetailsColumns = []string{
	"total_square_footage", "bedrooms", "bathrooms", "floors", "year_built", "last_renovation_year",
	"heating_type", "cooling_type", "air_conditioning", "elevator_building", "garage_spaces",
	"outdoor_space", "energy_efficiency_rating", "hoa_fees",
}

// PropertyTag is a free-form label attached to a property.
type PropertyTag struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	PropertyID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_property_tag" json:"propertyId"`
	Tag        string `gorm:"type:varchar(64);not null;uniqueIndex:idx_property_tag;index" json:"tag"`
}

func (PropertyTag) TableName() string {
	return "property_tags"
}
