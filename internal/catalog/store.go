package catalog

import (
	"context"
	"time"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/counter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/pagination"
)

// Store is the persistence contract of the catalog. Lookups return an error
// wrapping ErrNotFound when no live row matches.
type Store interface {
	// Transaction runs fn against a store bound to a single transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	PropertyStore
	UnitStore
	ImageStore
}

type PropertyStore interface {
	CreateProperty(ctx context.Context, p *models.Property) error
	// UpdatePropertyColumns writes only the named columns of p.
	UpdatePropertyColumns(ctx context.Context, p *models.Property, columns []string) error
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	GetPropertiesByIDs(ctx context.Context, ids []string) ([]models.Property, error)
	FindProperties(ctx context.Context, pred filter.Predicate, q pagination.Query) ([]models.Property, int64, error)
	ListOwnerProperties(ctx context.Context, ownerID string) ([]models.Property, error)
	CountPropertiesByStatus(ctx context.Context, ownerID string) (map[models.PropertyStatus]int64, error)
	// SoftDeleteProperty returns the number of rows marked deleted.
	SoftDeleteProperty(ctx context.Context, id string) (int64, error)
	// AdjustCounters applies plan in order with atomic column expressions.
	AdjustCounters(ctx context.Context, propertyID string, plan []counter.Adjustment) error
	ReplaceTags(ctx context.Context, propertyID string, tags []string) error
	TagsFor(ctx context.Context, propertyIDs []string) (map[string][]string, error)
	ExpireFeatured(ctx context.Context, now time.Time) (int64, error)
}

type UnitStore interface {
	CreateUnit(ctx context.Context, u *models.PropertyUnit) error
	UpdateUnitColumns(ctx context.Context, u *models.PropertyUnit, columns []string) error
	GetUnit(ctx context.Context, propertyID, unitID string) (*models.PropertyUnit, error)
	ListUnits(ctx context.Context, propertyIDs []string) ([]models.PropertyUnit, error)
	FindUnits(ctx context.Context, pred filter.Predicate, q pagination.Query) ([]models.PropertyUnit, int64, error)
	// NextUnitNumber returns max(numeric unit numbers)+1 as a string.
	NextUnitNumber(ctx context.Context, propertyID string) (string, error)
	SoftDeleteUnit(ctx context.Context, unitID string) (int64, error)
	SoftDeleteUnitsOfProperty(ctx context.Context, propertyID string) (int64, error)
}

type ImageStore interface {
	CreateImage(ctx context.Context, img *models.PropertyImage) error
	GetImage(ctx context.Context, id string) (*models.PropertyImage, error)
	// ListImages returns live images attached to any of the properties or units.
	ListImages(ctx context.Context, propertyIDs, unitIDs []string) ([]models.PropertyImage, error)
	NextDisplayOrder(ctx context.Context, propertyID, unitID *string) (int, error)
	// UnsetOtherPrimaries clears is_primary on every sibling of img.
	UnsetOtherPrimaries(ctx context.Context, img *models.PropertyImage) error
	MarkPrimary(ctx context.Context, imageID string) error
	SoftDeleteImage(ctx context.Context, id string) (int64, error)
	// SoftDeleteImagesOfProperty covers images of the property and of its live units.
	SoftDeleteImagesOfProperty(ctx context.Context, propertyID string) (int64, error)
	SoftDeleteImagesOfUnit(ctx context.Context, unitID string) (int64, error)
}

// BlobStore keeps uploaded image bytes. Delete must be safe to retry.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// SearchIndex is an optional document index kept in sync after commits.
type SearchIndex interface {
	IndexProperty(ctx context.Context, p *models.Property, tags []string, images []models.PropertyImage) error
	RemoveProperty(ctx context.Context, id string) error
	SearchIDs(ctx context.Context, pred filter.Predicate, q pagination.Query) ([]string, int64, error)
}
