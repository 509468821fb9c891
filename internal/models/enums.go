package models

// PropertyType classifies a listing.
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeCondo      PropertyType = "condo"
	PropertyTypeTownhouse  PropertyType = "townhouse"
	PropertyTypeStudio     PropertyType = "studio"
	PropertyTypeDuplex     PropertyType = "duplex"
	PropertyTypeTriplex    PropertyType = "triplex"
	PropertyTypeFourplex   PropertyType = "fourplex"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeOffice     PropertyType = "office"
	PropertyTypeRetail     PropertyType = "retail"
	PropertyTypeWarehouse  PropertyType = "warehouse"
	PropertyTypeMixedUse   PropertyType = "mixed-use"
)

var propertyTypes = []PropertyType{
	PropertyTypeApartment, PropertyTypeHouse, PropertyTypeCondo, PropertyTypeTownhouse,
	PropertyTypeStudio, PropertyTypeDuplex, PropertyTypeTriplex, PropertyTypeFourplex,
	PropertyTypeCommercial, PropertyTypeOffice, PropertyTypeRetail, PropertyTypeWarehouse,
	PropertyTypeMixedUse,
}

func (t PropertyType) Valid() bool {
	for _, v := range propertyTypes {
		if v == t {
			return true
		}
	}
	return false
}

// PropertyStatus is the listing lifecycle state.
type PropertyStatus string

const (
	PropertyStatusDraft       PropertyStatus = "draft"
	PropertyStatusPublished   PropertyStatus = "published"
	PropertyStatusRented      PropertyStatus = "rented"
	PropertyStatusMaintenance PropertyStatus = "maintenance"
	PropertyStatusUnderReview PropertyStatus = "under-review"
	PropertyStatusArchived    PropertyStatus = "archived"
)

// PropertyStatuses lists every status in lifecycle order.
func PropertyStatuses() []PropertyStatus {
	return []PropertyStatus{
		PropertyStatusDraft, PropertyStatusPublished, PropertyStatusRented,
		PropertyStatusMaintenance, PropertyStatusUnderReview, PropertyStatusArchived,
	}
}

func (s PropertyStatus) Valid() bool {
	for _, v := range PropertyStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Archived is terminal and reachable from every other state.
func (s PropertyStatus) CanTransitionTo(next PropertyStatus) bool {
	if s == next {
		return true
	}
	if s == PropertyStatusArchived {
		return false
	}
	if next == PropertyStatusArchived {
		return true
	}
	switch s {
	case PropertyStatusDraft:
		return next == PropertyStatusPublished
	case PropertyStatusPublished:
		return next == PropertyStatusRented || next == PropertyStatusMaintenance || next == PropertyStatusUnderReview
	case PropertyStatusRented, PropertyStatusMaintenance, PropertyStatusUnderReview:
		return next == PropertyStatusPublished
	}
	return false
}

// UnitStatus is the leasing state of a unit.
type UnitStatus string

const (
	UnitStatusAvailable     UnitStatus = "available"
	UnitStatusRented        UnitStatus = "rented"
	UnitStatusUnderContract UnitStatus = "under-contract"
	UnitStatusMaintenance   UnitStatus = "maintenance"
	UnitStatusModelUnit     UnitStatus = "model-unit"
	UnitStatusReserved      UnitStatus = "reserved"
	UnitStatusInactive      UnitStatus = "inactive"
)

func (s UnitStatus) Valid() bool {
	switch s {
	case UnitStatusAvailable, UnitStatusRented, UnitStatusUnderContract, UnitStatusMaintenance,
		UnitStatusModelUnit, UnitStatusReserved, UnitStatusInactive:
		return true
	}
	return false
}

// ImageType describes what an image shows.
type ImageType string

const (
	ImageTypeExterior      ImageType = "exterior"
	ImageTypeInterior      ImageType = "interior"
	ImageTypeFloorPlan     ImageType = "floor-plan"
	ImageType360View       ImageType = "360-view"
	ImageTypeVideoSnapshot ImageType = "video-snapshot"
	ImageTypeMapScreenshot ImageType = "map-screenshot"
	ImageTypeThirdParty    ImageType = "third-party"
	ImageTypeOther         ImageType = "other"
)

func (t ImageType) Valid() bool {
	switch t {
	case ImageTypeExterior, ImageTypeInterior, ImageTypeFloorPlan, ImageType360View,
		ImageTypeVideoSnapshot, ImageTypeMapScreenshot, ImageTypeThirdParty, ImageTypeOther:
		return true
	}
	return false
}
