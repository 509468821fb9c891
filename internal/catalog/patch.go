package catalog

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/counter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/opt"
)

// PropertyPatch is a partial update. Absent members are left untouched,
// members present as null clear nullable columns. Null on any other member
// is rejected. Tags set to null removes every tag.
type PropertyPatch struct {
	Name         opt.Field[string]                `json:"name"`
	Description  opt.Field[string]                `json:"description"`
	PropertyType opt.Field[models.PropertyType]   `json:"propertyType"`
	Status       opt.Field[models.PropertyStatus] `json:"status"`
	Address      opt.Field[models.Address]        `json:"address"`
	Details      opt.Field[models.Details]        `json:"details"`

	ListingPrice    opt.Field[float64] `json:"listingPrice"`
	MonthlyRent     opt.Field[float64] `json:"monthlyRent"`
	SecurityDeposit opt.Field[float64] `json:"securityDeposit"`
	PetDeposit      opt.Field[float64] `json:"petDeposit"`
	ApplicationFee  opt.Field[float64] `json:"applicationFee"`

	UtilitiesIncluded opt.Field[bool]      `json:"utilitiesIncluded"`
	PetFriendly       opt.Field[bool]      `json:"petFriendly"`
	Furnished         opt.Field[bool]      `json:"furnished"`
	ParkingAvailable  opt.Field[bool]      `json:"parkingAvailable"`
	SmokeFree         opt.Field[bool]      `json:"smokeFree"`
	IsAvailable       opt.Field[bool]      `json:"isAvailable"`
	AvailableFrom     opt.Field[time.Time] `json:"availableFrom"`

	LeaseMinMonths    opt.Field[int]     `json:"leaseMinMonths"`
	LeaseMaxMonths    opt.Field[int]     `json:"leaseMaxMonths"`
	MinCreditScore    opt.Field[int]     `json:"minCreditScore"`
	MinIncomeMultiple opt.Field[float64] `json:"minIncomeMultiple"`

	IsFeatured    opt.Field[bool]      `json:"isFeatured"`
	FeaturedUntil opt.Field[time.Time] `json:"featuredUntil"`

	Latitude  opt.Field[float64] `json:"latitude"`
	Longitude opt.Field[float64] `json:"longitude"`

	Notes    opt.Field[string]         `json:"notes"`
	Metadata opt.Field[datatypes.JSON] `json:"metadata"`
	Tags     opt.Field[[]string]       `json:"tags"`

	counter.Request
}

func (p *PropertyPatch) validate() error {
	var c checker
	c.notNull("name", p.Name.IsNull())
	c.notNull("description", p.Description.IsNull())
	c.notNull("propertyType", p.PropertyType.IsNull())
	c.notNull("status", p.Status.IsNull())
	c.notNull("address", p.Address.IsNull())
	c.notNull("details", p.Details.IsNull())
	c.notNull("utilitiesIncluded", p.UtilitiesIncluded.IsNull())
	c.notNull("petFriendly", p.PetFriendly.IsNull())
	c.notNull("furnished", p.Furnished.IsNull())
	c.notNull("parkingAvailable", p.ParkingAvailable.IsNull())
	c.notNull("smokeFree", p.SmokeFree.IsNull())
	c.notNull("isAvailable", p.IsAvailable.IsNull())
	c.notNull("isFeatured", p.IsFeatured.IsNull())
	c.notNull("notes", p.Notes.IsNull())
	c.notNull("metadata", p.Metadata.IsNull())
	if p.Name.Set {
		c.require("name", p.Name.Value)
		c.maxLen("name", p.Name.Value, 255)
	}
	if p.PropertyType.Set && !p.PropertyType.Value.Valid() {
		c.failf("unknown property type %q", p.PropertyType.Value)
	}
	if p.Status.Set && !p.Status.Value.Valid() {
		c.failf("unknown status %q", p.Status.Value)
	}
	c.money("listingPrice", present(p.ListingPrice))
	c.money("monthlyRent", present(p.MonthlyRent))
	c.money("securityDeposit", present(p.SecurityDeposit))
	c.money("petDeposit", present(p.PetDeposit))
	c.money("applicationFee", present(p.ApplicationFee))
	c.screening(present(p.LeaseMinMonths), present(p.LeaseMaxMonths), present(p.MinCreditScore), present(p.MinIncomeMultiple))
	c.coordinates(present(p.Latitude), present(p.Longitude))
	return c.err()
}

// apply writes present members into dst and returns the touched columns.
func (p *PropertyPatch) apply(dst *models.Property) []string {
	var cols []string
	if p.Name.HasValue() {
		dst.Name = strings.TrimSpace(p.Name.Value)
		cols = append(cols, "name")
	}
	setValue(p.Description, &dst.Description, "description", &cols)
	if p.PropertyType.HasValue() {
		dst.Type = p.PropertyType.Value
		cols = append(cols, "property_type")
	}
	if p.Status.HasValue() {
		dst.Status = p.Status.Value
		cols = append(cols, "status")
	}
	if p.Address.HasValue() {
		dst.Address = p.Address.Value
		cols = append(cols, models.AddressColumns...)
	}
	if p.Details.HasValue() {
		dst.Details = p.Details.Value
		cols = append(cols, models.DetailsColumns...)
	}

	setPtr(p.ListingPrice, &dst.ListingPrice, "listing_price", &cols)
	setPtr(p.MonthlyRent, &dst.MonthlyRent, "monthly_rent", &cols)
	setPtr(p.SecurityDeposit, &dst.SecurityDeposit, "security_deposit", &cols)
	setPtr(p.PetDeposit, &dst.PetDeposit, "pet_deposit", &cols)
	setPtr(p.ApplicationFee, &dst.ApplicationFee, "application_fee", &cols)

	setValue(p.UtilitiesIncluded, &dst.UtilitiesIncluded, "utilities_included", &cols)
	setValue(p.PetFriendly, &dst.PetFriendly, "pet_friendly", &cols)
	setValue(p.Furnished, &dst.Furnished, "furnished", &cols)
	setValue(p.ParkingAvailable, &dst.ParkingAvailable, "parking_available", &cols)
	setValue(p.SmokeFree, &dst.SmokeFree, "smoke_free", &cols)
	setValue(p.IsAvailable, &dst.IsAvailable, "is_available", &cols)
	setPtr(p.AvailableFrom, &dst.AvailableFrom, "available_from", &cols)

	setPtr(p.LeaseMinMonths, &dst.LeaseMinMonths, "lease_min_months", &cols)
	setPtr(p.LeaseMaxMonths, &dst.LeaseMaxMonths, "lease_max_months", &cols)
	setPtr(p.MinCreditScore, &dst.MinCreditScore, "min_credit_score", &cols)
	setPtr(p.MinIncomeMultiple, &dst.MinIncomeMultiple, "min_income_multiple", &cols)

	setValue(p.IsFeatured, &dst.IsFeatured, "is_featured", &cols)
	setPtr(p.FeaturedUntil, &dst.FeaturedUntil, "featured_until", &cols)

	setPtr(p.Latitude, &dst.Latitude, "latitude", &cols)
	setPtr(p.Longitude, &dst.Longitude, "longitude", &cols)

	setValue(p.Notes, &dst.Notes, "notes", &cols)
	setValue(p.Metadata, &dst.Metadata, "metadata", &cols)
	return cols
}

// UnitPatch is a partial update of a unit.
type UnitPatch struct {
	UnitNumber opt.Field[string]            `json:"unitNumber"`
	UnitName   opt.Field[string]            `json:"unitName"`
	Floor      opt.Field[int]               `json:"floor"`
	Section    opt.Field[string]            `json:"section"`
	Status     opt.Field[models.UnitStatus] `json:"status"`

	SquareFootage opt.Field[int]     `json:"squareFootage"`
	Bedrooms      opt.Field[int]     `json:"bedrooms"`
	Bathrooms     opt.Field[float64] `json:"bathrooms"`

	MonthlyRent     opt.Field[float64] `json:"monthlyRent"`
	SecurityDeposit opt.Field[float64] `json:"securityDeposit"`
	PetDeposit      opt.Field[float64] `json:"petDeposit"`
	ApplicationFee  opt.Field[float64] `json:"applicationFee"`

	UtilitiesIncluded opt.Field[bool]      `json:"utilitiesIncluded"`
	PetFriendly       opt.Field[bool]      `json:"petFriendly"`
	Furnished         opt.Field[bool]      `json:"furnished"`
	SmokeFree         opt.Field[bool]      `json:"smokeFree"`
	IsAvailable       opt.Field[bool]      `json:"isAvailable"`
	AvailableFrom     opt.Field[time.Time] `json:"availableFrom"`

	LeaseMinMonths    opt.Field[int]     `json:"leaseMinMonths"`
	LeaseMaxMonths    opt.Field[int]     `json:"leaseMaxMonths"`
	MinCreditScore    opt.Field[int]     `json:"minCreditScore"`
	MinIncomeMultiple opt.Field[float64] `json:"minIncomeMultiple"`

	Notes    opt.Field[string]         `json:"notes"`
	Metadata opt.Field[datatypes.JSON] `json:"metadata"`
}

func (p *UnitPatch) validate() error {
	var c checker
	c.notNull("unitNumber", p.UnitNumber.IsNull())
	c.notNull("unitName", p.UnitName.IsNull())
	c.notNull("section", p.Section.IsNull())
	c.notNull("status", p.Status.IsNull())
	c.notNull("utilitiesIncluded", p.UtilitiesIncluded.IsNull())
	c.notNull("petFriendly", p.PetFriendly.IsNull())
	c.notNull("furnished", p.Furnished.IsNull())
	c.notNull("smokeFree", p.SmokeFree.IsNull())
	c.notNull("isAvailable", p.IsAvailable.IsNull())
	c.notNull("notes", p.Notes.IsNull())
	c.notNull("metadata", p.Metadata.IsNull())
	if p.UnitNumber.Set {
		c.require("unitNumber", p.UnitNumber.Value)
		c.maxLen("unitNumber", p.UnitNumber.Value, 20)
	}
	if p.Status.Set && !p.Status.Value.Valid() {
		c.failf("unknown unit status %q", p.Status.Value)
	}
	c.count("squareFootage", present(p.SquareFootage))
	c.count("bedrooms", present(p.Bedrooms))
	c.money("bathrooms", present(p.Bathrooms))
	c.money("monthlyRent", present(p.MonthlyRent))
	c.money("securityDeposit", present(p.SecurityDeposit))
	c.money("petDeposit", present(p.PetDeposit))
	c.money("applicationFee", present(p.ApplicationFee))
	c.screening(present(p.LeaseMinMonths), present(p.LeaseMaxMonths), present(p.MinCreditScore), present(p.MinIncomeMultiple))
	return c.err()
}

func (p *UnitPatch) apply(dst *models.PropertyUnit) []string {
	var cols []string
	if p.UnitNumber.HasValue() {
		dst.UnitNumber = strings.TrimSpace(p.UnitNumber.Value)
		cols = append(cols, "unit_number")
	}
	setValue(p.UnitName, &dst.UnitName, "unit_name", &cols)
	setPtr(p.Floor, &dst.Floor, "floor", &cols)
	setValue(p.Section, &dst.Section, "section", &cols)
	if p.Status.HasValue() {
		dst.Status = p.Status.Value
		cols = append(cols, "status")
	}
	setPtr(p.SquareFootage, &dst.SquareFootage, "square_footage", &cols)
	setPtr(p.Bedrooms, &dst.Bedrooms, "bedrooms", &cols)
	setPtr(p.Bathrooms, &dst.Bathrooms, "bathrooms", &cols)
	setPtr(p.MonthlyRent, &dst.MonthlyRent, "monthly_rent", &cols)
	setPtr(p.SecurityDeposit, &dst.SecurityDeposit, "security_deposit", &cols)
	setPtr(p.PetDeposit, &dst.PetDeposit, "pet_deposit", &cols)
	setPtr(p.ApplicationFee, &dst.ApplicationFee, "application_fee", &cols)
	setValue(p.UtilitiesIncluded, &dst.UtilitiesIncluded, "utilities_included", &cols)
	setValue(p.PetFriendly, &dst.PetFriendly, "pet_friendly", &cols)
	setValue(p.Furnished, &dst.Furnished, "furnished", &cols)
	setValue(p.SmokeFree, &dst.SmokeFree, "smoke_free", &cols)
	setValue(p.IsAvailable, &dst.IsAvailable, "is_available", &cols)
	setPtr(p.AvailableFrom, &dst.AvailableFrom, "available_from", &cols)
	setPtr(p.LeaseMinMonths, &dst.LeaseMinMonths, "lease_min_months", &cols)
	setPtr(p.LeaseMaxMonths, &dst.LeaseMaxMonths, "lease_max_months", &cols)
	setPtr(p.MinCreditScore, &dst.MinCreditScore, "min_credit_score", &cols)
	setPtr(p.MinIncomeMultiple, &dst.MinIncomeMultiple, "min_income_multiple", &cols)
	setValue(p.Notes, &dst.Notes, "notes", &cols)
	setValue(p.Metadata, &dst.Metadata, "metadata", &cols)
	return cols
}

// setValue copies a present member into a non-nullable column. validate rejects null first.
func setValue[T any](f opt.Field[T], dst *T, col string, cols *[]string) {
	if !f.HasValue() {
		return
	}
	*dst = f.Value
	*cols = append(*cols, col)
}

// setPtr copies a present member into a nullable column; null clears it.
func setPtr[T any](f opt.Field[T], dst **T, col string, cols *[]string) {
	if !f.Set {
		return
	}
	*dst = f.Ptr()
	*cols = append(*cols, col)
}

func present[T any](f opt.Field[T]) *T {
	if !f.HasValue() {
		return nil
	}
	return f.Ptr()
}
