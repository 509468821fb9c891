package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
)

// PropertyInput is the payload for creating a property with its initial units and images.
type PropertyInput struct {
	Name         string                `json:"name" binding:"required,max=255"`
	Description  string                `json:"description"`
	PropertyType models.PropertyType   `json:"propertyType" binding:"required"`
	Status       models.PropertyStatus `json:"status"`
	Address      models.Address        `json:"address"`
	Details      models.Details        `json:"details"`

	ListingPrice    *float64 `json:"listingPrice" binding:"omitempty,gte=0"`
	MonthlyRent     *float64 `json:"monthlyRent" binding:"omitempty,gte=0"`
	SecurityDeposit *float64 `json:"securityDeposit" binding:"omitempty,gte=0"`
	PetDeposit      *float64 `json:"petDeposit" binding:"omitempty,gte=0"`
	ApplicationFee  *float64 `json:"applicationFee" binding:"omitempty,gte=0"`

	UtilitiesIncluded bool       `json:"utilitiesIncluded"`
	PetFriendly       bool       `json:"petFriendly"`
	Furnished         bool       `json:"furnished"`
	ParkingAvailable  bool       `json:"parkingAvailable"`
	SmokeFree         bool       `json:"smokeFree"`
	IsAvailable       *bool      `json:"isAvailable"`
	AvailableFrom     *time.Time `json:"availableFrom"`

	LeaseMinMonths    *int     `json:"leaseMinMonths" binding:"omitempty,min=1,max=60"`
	LeaseMaxMonths    *int     `json:"leaseMaxMonths" binding:"omitempty,min=1,max=60"`
	MinCreditScore    *int     `json:"minCreditScore" binding:"omitempty,min=300,max=850"`
	MinIncomeMultiple *float64 `json:"minIncomeMultiple" binding:"omitempty,min=1,max=10"`

	IsFeatured    bool       `json:"isFeatured"`
	FeaturedUntil *time.Time `json:"featuredUntil"`

	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`

	Notes    string         `json:"notes"`
	Metadata datatypes.JSON `json:"metadata"`
	Tags     []string       `json:"tags"`

	Units  []UnitInput  `json:"units" binding:"dive"`
	Images []ImageInput `json:"images" binding:"dive"`
}

func (in *PropertyInput) validate() error {
	var c checker
	c.require("name", in.Name)
	c.maxLen("name", in.Name, 255)
	if !in.PropertyType.Valid() {
		c.failf("unknown property type %q", in.PropertyType)
	}
	if in.Status != "" && !in.Status.Valid() {
		c.failf("unknown status %q", in.Status)
	}
	c.money("listingPrice", in.ListingPrice)
	c.money("monthlyRent", in.MonthlyRent)
	c.money("securityDeposit", in.SecurityDeposit)
	c.money("petDeposit", in.PetDeposit)
	c.money("applicationFee", in.ApplicationFee)
	c.screening(in.LeaseMinMonths, in.LeaseMaxMonths, in.MinCreditScore, in.MinIncomeMultiple)
	c.coordinates(in.Latitude, in.Longitude)
	for i := range in.Units {
		in.Units[i].check(&c)
	}
	for i := range in.Images {
		in.Images[i].check(&c)
	}
	return c.err()
}

func (in *PropertyInput) toModel(ownerID string) *models.Property {
	status := in.Status
	if status == "" {
		status = models.PropertyStatusDraft
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	return &models.Property{
		ID:                uuid.NewString(),
		OwnerID:           ownerID,
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		Type:              in.PropertyType,
		Status:            status,
		Address:           in.Address,
		Details:           in.Details,
		ListingPrice:      in.ListingPrice,
		MonthlyRent:       in.MonthlyRent,
		SecurityDeposit:   in.SecurityDeposit,
		PetDeposit:        in.PetDeposit,
		ApplicationFee:    in.ApplicationFee,
		UtilitiesIncluded: in.UtilitiesIncluded,
		PetFriendly:       in.PetFriendly,
		Furnished:         in.Furnished,
		ParkingAvailable:  in.ParkingAvailable,
		SmokeFree:         in.SmokeFree,
		IsAvailable:       available,
		AvailableFrom:     in.AvailableFrom,
		LeaseMinMonths:    in.LeaseMinMonths,
		LeaseMaxMonths:    in.LeaseMaxMonths,
		MinCreditScore:    in.MinCreditScore,
		MinIncomeMultiple: in.MinIncomeMultiple,
		IsFeatured:        in.IsFeatured,
		FeaturedUntil:     in.FeaturedUntil,
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		Notes:             in.Notes,
		Metadata:          in.Metadata,
	}
}

// UnitInput is the payload for creating a unit. An empty UnitNumber is auto-assigned.
type UnitInput struct {
	UnitNumber string            `json:"unitNumber" binding:"max=20"`
	UnitName   string            `json:"unitName"`
	Floor      *int              `json:"floor"`
	Section    string            `json:"section"`
	Status     models.UnitStatus `json:"status"`

	SquareFootage *int     `json:"squareFootage" binding:"omitempty,gte=0"`
	Bedrooms      *int     `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms     *float64 `json:"bathrooms" binding:"omitempty,gte=0"`

	MonthlyRent     *float64 `json:"monthlyRent" binding:"omitempty,gte=0"`
	SecurityDeposit *float64 `json:"securityDeposit" binding:"omitempty,gte=0"`
	PetDeposit      *float64 `json:"petDeposit" binding:"omitempty,gte=0"`
	ApplicationFee  *float64 `json:"applicationFee" binding:"omitempty,gte=0"`

	UtilitiesIncluded bool       `json:"utilitiesIncluded"`
	PetFriendly       bool       `json:"petFriendly"`
	Furnished         bool       `json:"furnished"`
	SmokeFree         bool       `json:"smokeFree"`
	IsAvailable       *bool      `json:"isAvailable"`
	AvailableFrom     *time.Time `json:"availableFrom"`

	LeaseMinMonths    *int     `json:"leaseMinMonths" binding:"omitempty,min=1,max=60"`
	LeaseMaxMonths    *int     `json:"leaseMaxMonths" binding:"omitempty,min=1,max=60"`
	MinCreditScore    *int     `json:"minCreditScore" binding:"omitempty,min=300,max=850"`
	MinIncomeMultiple *float64 `json:"minIncomeMultiple" binding:"omitempty,min=1,max=10"`

	Notes    string         `json:"notes"`
	Metadata datatypes.JSON `json:"metadata"`
}

func (in *UnitInput) validate() error {
	var c checker
	in.check(&c)
	return c.err()
}

func (in *UnitInput) check(c *checker) {
	if in.Status != "" && !in.Status.Valid() {
		c.failf("unknown unit status %q", in.Status)
	}
	c.maxLen("unitNumber", in.UnitNumber, 20)
	c.count("squareFootage", in.SquareFootage)
	c.count("bedrooms", in.Bedrooms)
	c.money("bathrooms", in.Bathrooms)
	c.money("monthlyRent", in.MonthlyRent)
	c.money("securityDeposit", in.SecurityDeposit)
	c.money("petDeposit", in.PetDeposit)
	c.money("applicationFee", in.ApplicationFee)
	c.screening(in.LeaseMinMonths, in.LeaseMaxMonths, in.MinCreditScore, in.MinIncomeMultiple)
}

func (in *UnitInput) toModel(propertyID string) *models.PropertyUnit {
	status := in.Status
	if status == "" {
		status = models.UnitStatusAvailable
	}
	available := status == models.UnitStatusAvailable
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	return &models.PropertyUnit{
		ID:                uuid.NewString(),
		PropertyID:        propertyID,
		UnitNumber:        strings.TrimSpace(in.UnitNumber),
		UnitName:          in.UnitName,
		Floor:             in.Floor,
		Section:           in.Section,
		Status:            status,
		SquareFootage:     in.SquareFootage,
		Bedrooms:          in.Bedrooms,
		Bathrooms:         in.Bathrooms,
		MonthlyRent:       in.MonthlyRent,
		SecurityDeposit:   in.SecurityDeposit,
		PetDeposit:        in.PetDeposit,
		ApplicationFee:    in.ApplicationFee,
		UtilitiesIncluded: in.UtilitiesIncluded,
		PetFriendly:       in.PetFriendly,
		Furnished:         in.Furnished,
		SmokeFree:         in.SmokeFree,
		IsAvailable:       available,
		AvailableFrom:     in.AvailableFrom,
		LeaseMinMonths:    in.LeaseMinMonths,
		LeaseMaxMonths:    in.LeaseMaxMonths,
		MinCreditScore:    in.MinCreditScore,
		MinIncomeMultiple: in.MinIncomeMultiple,
		Notes:             in.Notes,
		Metadata:          in.Metadata,
	}
}

// ImageInput records an image whose bytes already live at URL.
type ImageInput struct {
	URL          string           `json:"url" binding:"required,url"`
	ThumbnailURL string           `json:"thumbnailUrl"`
	Type         models.ImageType `json:"imageType"`
	Title        string           `json:"title"`
	Caption      string           `json:"caption"`
	AltText      string           `json:"altText"`
	DisplayOrder *int             `json:"displayOrder" binding:"omitempty,gte=0"`
	IsPrimary    bool             `json:"isPrimary"`
	IsFeatured   bool             `json:"isFeatured"`
	Width        *int             `json:"width"`
	Height       *int             `json:"height"`
	Format       string           `json:"format"`
}

func (in *ImageInput) check(c *checker) {
	c.require("image url", in.URL)
	if in.Type != "" && !in.Type.Valid() {
		c.failf("unknown image type %q", in.Type)
	}
	c.count("displayOrder", in.DisplayOrder)
}

func (in *ImageInput) toModel() *models.PropertyImage {
	t := in.Type
	if t == "" {
		t = models.ImageTypeOther
	}
	img := &models.PropertyImage{
		ID:           uuid.NewString(),
		URL:          in.URL,
		ThumbnailURL: in.ThumbnailURL,
		Type:         t,
		Title:        in.Title,
		Caption:      in.Caption,
		AltText:      in.AltText,
		DisplayOrder: -1,
		IsPrimary:    in.IsPrimary,
		IsFeatured:   in.IsFeatured,
		Is360View:    t == models.ImageType360View,
		Width:        in.Width,
		Height:       in.Height,
		Format:       in.Format,
	}
	if in.DisplayOrder != nil {
		img.DisplayOrder = *in.DisplayOrder
	}
	return img
}

// ImageUpload carries raw image bytes to be stored and recorded.
type ImageUpload struct {
	UnitID       string
	Filename     string
	Data         []byte
	Type         models.ImageType
	Title        string
	Caption      string
	AltText      string
	DisplayOrder *int
	IsPrimary    bool
	IsFeatured   bool
}
