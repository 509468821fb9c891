// Package catalog implements the property aggregate service: listings, their units,
// images, engagement counters and derived metrics.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/counter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/events"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/logging"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/metrics"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/pagination"
)

// DefaultMaxImageBytes bounds a single upload when no limit is configured.
const DefaultMaxImageBytes = 10 << 20

// Aggregate is a property with its units, images and computed metrics.
type Aggregate struct {
	Property models.Property        `json:"property"`
	Tags     []string               `json:"tags"`
	Units    []UnitView             `json:"units"`
	Images   []models.PropertyImage `json:"images"`
	Metrics  metrics.Summary        `json:"metrics"`
}

// AllImages returns the property's images followed by every unit image.
func (a *Aggregate) AllImages() []models.PropertyImage {
	out := append([]models.PropertyImage{}, a.Images...)
	for _, u := range a.Units {
		out = append(out, u.Images...)
	}
	return out
}

// UnitView is a unit together with its own images.
type UnitView struct {
	models.PropertyUnit
	Images []models.PropertyImage `json:"images"`
}

// Service orchestrates the catalog. It is safe for concurrent use; all shared
// state lives in the store.
type Service struct {
	store  Store
	blobs  BlobStore
	events events.Publisher
	index  SearchIndex
	logger *slog.Logger
	now    func() time.Time

	enforceTransitions bool
	queryIndex         bool
	maxImageBytes      int64
}

type Option func(*Service)

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithSearchIndex keeps idx in sync after writes. When query is true, searches are
// answered by the index and hydrated from the store.
func WithSearchIndex(idx SearchIndex, query bool) Option {
	return func(s *Service) {
		s.index = idx
		s.queryIndex = query
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithStatusTransitions rejects status updates the listing lifecycle does not allow.
func WithStatusTransitions(enforce bool) Option {
	return func(s *Service) { s.enforceTransitions = enforce }
}

func WithMaxImageBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxImageBytes = n
		}
	}
}

func NewService(store Store, blobs BlobStore, opts ...Option) *Service {
	s := &Service{
		store:         store,
		blobs:         blobs,
		events:        events.NopPublisher{},
		logger:        slog.Default(),
		now:           time.Now,
		maxImageBytes: DefaultMaxImageBytes,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger).With("component", "catalog")
}

// fail logs uncategorized errors and returns an opaque storage error for them.
func (s *Service) fail(ctx context.Context, op string, err error) error {
	if Category(err) != nil {
		return err
	}
	s.log(ctx).Error("Storage operation failed", "op", op, "error", err)
	return fmt.Errorf("%w: %s", ErrStorage, op)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// ownedProperty loads a live property and hides it from anyone but its owner.
func (s *Service) ownedProperty(ctx context.Context, st Store, id, callerID string) (*models.Property, error) {
	p, err := st.GetProperty(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("property", id)
	}
	if err != nil {
		return nil, err
	}
	if callerID == "" || p.OwnerID != callerID {
		return nil, notFound("property", id)
	}
	return p, nil
}

// CreateProperty persists the property, its units and image records in one transaction.
func (s *Service) CreateProperty(ctx context.Context, ownerID string, in PropertyInput) (*Aggregate, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, validationf("owner id is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.toModel(ownerID)

	err := s.store.Transaction(ctx, func(tx Store) error {
		if err := tx.CreateProperty(ctx, p); err != nil {
			return err
		}
		if err := tx.ReplaceTags(ctx, p.ID, filter.NormalizeTags(in.Tags)); err != nil {
			return err
		}
		for i := range in.Units {
			if _, err := s.createUnit(ctx, tx, p.ID, &in.Units[i]); err != nil {
				return err
			}
		}
		for i := range in.Images {
			img := in.Images[i].toModel()
			img.PropertyID = &p.ID
			if err := s.recordImage(ctx, tx, img); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "create property", err)
	}

	agg, err := s.loadAggregate(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Info("Property created", "property_id", p.ID, "owner_id", ownerID, "units", len(agg.Units))
	s.afterWrite(ctx, events.PropertyCreated, agg)
	return agg, nil
}

// GetProperty returns the caller's property and records one view.
func (s *Service) GetProperty(ctx context.Context, id, callerID string) (*Aggregate, error) {
	if _, err := s.ownedProperty(ctx, s.store, id, callerID); err != nil {
		return nil, s.fail(ctx, "get property", err)
	}
	if err := s.store.AdjustCounters(ctx, id, counter.ViewOnce()); err != nil {
		return nil, s.fail(ctx, "record view", err)
	}
	return s.loadAggregate(ctx, id)
}

// UpdateProperty applies patch and its counter flags atomically.
func (s *Service) UpdateProperty(ctx context.Context, id, callerID string, patch PropertyPatch) (*Aggregate, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx Store) error {
		p, err := s.ownedProperty(ctx, tx, id, callerID)
		if err != nil {
			return err
		}
		before := p.Status
		cols := patch.apply(p)

		if s.enforceTransitions && !before.CanTransitionTo(p.Status) {
			return validationf("status cannot change from %s to %s", before, p.Status)
		}
		var c checker
		c.leaseOrder(p.LeaseMinMonths, p.LeaseMaxMonths)
		if err := c.err(); err != nil {
			return err
		}

		if len(cols) > 0 {
			p.UpdatedAt = s.now()
			if err := tx.UpdatePropertyColumns(ctx, p, append(cols, "updated_at")); err != nil {
				return err
			}
		}
		if patch.Tags.Set {
			if err := tx.ReplaceTags(ctx, id, filter.NormalizeTags(patch.Tags.Value)); err != nil {
				return err
			}
		}
		if plan := patch.Request.Plan(); len(plan) > 0 {
			if err := tx.AdjustCounters(ctx, id, plan); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "update property", err)
	}

	agg, err := s.loadAggregate(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Info("Property updated", "property_id", id)
	s.afterWrite(ctx, events.PropertyUpdated, agg)
	return agg, nil
}

// DeleteProperty soft-deletes the property, its images and its units in one transaction.
func (s *Service) DeleteProperty(ctx context.Context, id, callerID string) error {
	var ownerID string
	err := s.store.Transaction(ctx, func(tx Store) error {
		p, err := s.ownedProperty(ctx, tx, id, callerID)
		if err != nil {
			return err
		}
		ownerID = p.OwnerID

		n, err := tx.SoftDeleteProperty(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound("property", id)
		}
		if _, err := tx.SoftDeleteImagesOfProperty(ctx, id); err != nil {
			return err
		}
		_, err = tx.SoftDeleteUnitsOfProperty(ctx, id)
		return err
	})
	if err != nil {
		return s.fail(ctx, "delete property", err)
	}

	s.log(ctx).Info("Property deleted", "property_id", id)
	s.publish(ctx, events.New(events.PropertyDeleted, id, ownerID, nil))
	if s.index != nil {
		if err := s.index.RemoveProperty(ctx, id); err != nil {
			s.log(ctx).Warn("Failed to remove property from search index", "property_id", id, "error", err)
		}
	}
	return nil
}

// SearchProperties returns one page of properties matching every provided criterion.
func (s *Service) SearchProperties(ctx context.Context, c filter.PropertyCriteria, q pagination.Query) (pagination.Page[Aggregate], error) {
	if err := c.Validate(); err != nil {
		return pagination.Page[Aggregate]{}, validationf("%v", err)
	}
	return s.find(ctx, filter.ForProperties(c, s.now()), q, s.queryIndex)
}

// ListByOwner pages through the owner's live properties.
func (s *Service) ListByOwner(ctx context.Context, ownerID string, q pagination.Query) (pagination.Page[Aggregate], error) {
	if strings.TrimSpace(ownerID) == "" {
		return pagination.Page[Aggregate]{}, validationf("owner id is required")
	}
	pred := filter.ForProperties(filter.PropertyCriteria{OwnerID: ownerID}, s.now())
	return s.find(ctx, pred, q, false)
}

func (s *Service) find(ctx context.Context, pred filter.Predicate, q pagination.Query, useIndex bool) (pagination.Page[Aggregate], error) {
	var (
		props []models.Property
		total int64
		err   error
	)
	served := false
	if useIndex && s.index != nil {
		var ids []string
		ids, total, err = s.index.SearchIDs(ctx, pred, q)
		if err == nil {
			props, err = s.store.GetPropertiesByIDs(ctx, ids)
			if err != nil {
				return pagination.Page[Aggregate]{}, s.fail(ctx, "hydrate search hits", err)
			}
			props = orderByIDs(props, ids)
			served = true
		} else if errors.Is(err, filter.ErrUnsupported) {
			s.log(ctx).Debug("Search index cannot answer query, using database", "error", err)
		} else {
			s.log(ctx).Warn("Search index query failed, falling back to database", "error", err)
		}
	}
	if !served {
		props, total, err = s.store.FindProperties(ctx, pred, q)
		if err != nil {
			return pagination.Page[Aggregate]{}, s.fail(ctx, "search properties", err)
		}
	}

	aggs, err := s.assemble(ctx, s.store, props)
	if err != nil {
		return pagination.Page[Aggregate]{}, s.fail(ctx, "assemble properties", err)
	}
	return pagination.NewPage(aggs, q, total), nil
}

func (s *Service) loadAggregate(ctx context.Context, id string) (*Aggregate, error) {
	p, err := s.store.GetProperty(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("property", id)
	}
	if err != nil {
		return nil, s.fail(ctx, "load property", err)
	}
	aggs, err := s.assemble(ctx, s.store, []models.Property{*p})
	if err != nil {
		return nil, s.fail(ctx, "assemble property", err)
	}
	return &aggs[0], nil
}

// assemble attaches units, images, tags and metrics to each property with one query per relation.
func (s *Service) assemble(ctx context.Context, st Store, props []models.Property) ([]Aggregate, error) {
	if len(props) == 0 {
		return []Aggregate{}, nil
	}
	ids := make([]string, len(props))
	for i := range props {
		ids[i] = props[i].ID
	}

	units, err := st.ListUnits(ctx, ids)
	if err != nil {
		return nil, err
	}
	unitIDs := make([]string, len(units))
	for i := range units {
		unitIDs[i] = units[i].ID
	}
	images, err := st.ListImages(ctx, ids, unitIDs)
	if err != nil {
		return nil, err
	}
	tags, err := st.TagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	propertyImages := make(map[string][]models.PropertyImage)
	unitImages := make(map[string][]models.PropertyImage)
	for _, img := range images {
		switch {
		case img.UnitID != nil:
			unitImages[*img.UnitID] = append(unitImages[*img.UnitID], img)
		case img.PropertyID != nil:
			propertyImages[*img.PropertyID] = append(propertyImages[*img.PropertyID], img)
		}
	}
	unitsByProperty := make(map[string][]models.PropertyUnit)
	for _, u := range units {
		unitsByProperty[u.PropertyID] = append(unitsByProperty[u.PropertyID], u)
	}

	out := make([]Aggregate, len(props))
	for i, p := range props {
		pu := unitsByProperty[p.ID]
		views := make([]UnitView, len(pu))
		for j, u := range pu {
			views[j] = UnitView{PropertyUnit: u, Images: nonNil(unitImages[u.ID])}
		}
		out[i] = Aggregate{
			Property: p,
			Tags:     nonNil(tags[p.ID]),
			Units:    views,
			Images:   nonNil(propertyImages[p.ID]),
			Metrics:  metrics.Summarize(pu),
		}
	}
	return out, nil
}

// afterWrite publishes the change and refreshes the search index. Both are best-effort.
func (s *Service) afterWrite(ctx context.Context, eventType string, agg *Aggregate) {
	p := &agg.Property
	s.publish(ctx, events.New(eventType, p.ID, p.OwnerID, map[string]any{
		"name":   p.Name,
		"status": p.Status,
	}))
	if s.index != nil {
		if err := s.index.IndexProperty(ctx, p, agg.Tags, agg.AllImages()); err != nil {
			s.log(ctx).Warn("Failed to index property", "property_id", p.ID, "error", err)
		}
	}
}

// refreshIndex re-indexes a property after a change to one of its units or images.
func (s *Service) refreshIndex(ctx context.Context, propertyID string) {
	if s.index == nil {
		return
	}
	agg, err := s.loadAggregate(ctx, propertyID)
	if err != nil {
		s.log(ctx).Warn("Failed to reload property for indexing", "property_id", propertyID, "error", err)
		return
	}
	if err := s.index.IndexProperty(ctx, &agg.Property, agg.Tags, agg.AllImages()); err != nil {
		s.log(ctx).Warn("Failed to index property", "property_id", propertyID, "error", err)
	}
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.log(ctx).Warn("Failed to publish event", "type", e.Type, "property_id", e.PropertyID, "error", err)
	}
}

func orderByIDs(props []models.Property, ids []string) []models.Property {
	byID := make(map[string]models.Property, len(props))
	for _, p := range props {
		byID[p.ID] = p
	}
	out := make([]models.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
