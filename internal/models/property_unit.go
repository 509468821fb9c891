package models

import (
	"time"

	"gorm.io/datatypes"
)

// PropertyUnit is a leasable sub-unit of a multi-unit property.
type PropertyUnit struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string     `gorm:"type:varchar(36);not null;index" json:"propertyId"`
	UnitNumber string     `gorm:"type:varchar(20);not null" json:"unitNumber"`
	UnitName   string     `gorm:"type:varchar(100)" json:"unitName,omitempty"`
	Floor      *int       `json:"floor,omitempty"`
	Section    string     `gorm:"type:varchar(50)" json:"section,omitempty"`
	Status     UnitStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	SquareFootage *int     `json:"squareFootage,omitempty"`
	Bedrooms      *int     `json:"bedrooms,omitempty"`
	Bathrooms     *float64 `gorm:"type:decimal(4,1)" json:"bathrooms,omitempty"`

	MonthlyRent     *float64 `gorm:"type:decimal(10,2);index" json:"monthlyRent,omitempty"`
	SecurityDeposit *float64 `gorm:"type:decimal(10,2)" json:"securityDeposit,omitempty"`
	PetDeposit      *float64 `gorm:"type:decimal(10,2)" json:"petDeposit,omitempty"`
	ApplicationFee  *float64 `gorm:"type:decimal(10,2)" json:"applicationFee,omitempty"`

	UtilitiesIncluded bool       `gorm:"not null" json:"utilitiesIncluded"`
	PetFriendly       bool       `gorm:"not null" json:"petFriendly"`
	Furnished         bool       `gorm:"not null" json:"furnished"`
	SmokeFree         bool       `gorm:"not null" json:"smokeFree"`
	IsAvailable       bool       `gorm:"not null" json:"isAvailable"`
	AvailableFrom     *time.Time `json:"availableFrom,omitempty"`

	LeaseMinMonths    *int     `json:"leaseMinMonths,omitempty"`
	LeaseMaxMonths    *int     `json:"leaseMaxMonths,omitempty"`
	MinCreditScore    *int     `json:"minCreditScore,omitempty"`
	MinIncomeMultiple *float64 `gorm:"type:decimal(4,2)" json:"minIncomeMultiple,omitempty"`

	Notes    string         `gorm:"type:text" json:"notes,omitempty"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	Tracked
}

func (PropertyUnit) TableName() string {
	return "property_units"
}

// RentedRent returns the monthly rent the unit currently brings in.
func (u *PropertyUnit) RentedRent() float64 {
	if u.Status != UnitStatusRented || u.MonthlyRent == nil {
		return 0
	}
	return *u.MonthlyRent
}
