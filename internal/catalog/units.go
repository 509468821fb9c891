package catalog

import (
	"context"
	"errors"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/events"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/pagination"
)

func (s *Service) createUnit(ctx context.Context, tx Store, propertyID string, in *UnitInput) (*models.PropertyUnit, error) {
	u := in.toModel(propertyID)
	if u.UnitNumber == "" {
		n, err := tx.NextUnitNumber(ctx, propertyID)
		if err != nil {
			return nil, err
		}
		u.UnitNumber = n
	}
	if err := tx.CreateUnit(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ownedUnit(ctx context.Context, st Store, propertyID, unitID, callerID string) (*models.Property, *models.PropertyUnit, error) {
	p, err := s.ownedProperty(ctx, st, propertyID, callerID)
	if err != nil {
		return nil, nil, err
	}
	u, err := st.GetUnit(ctx, propertyID, unitID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, notFound("unit", unitID)
	}
	if err != nil {
		return nil, nil, err
	}
	return p, u, nil
}

// CreateUnit adds a unit to the caller's property.
func (s *Service) CreateUnit(ctx context.Context, propertyID, callerID string, in UnitInput) (*UnitView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var (
		unit    *models.PropertyUnit
		ownerID string
	)
	err := s.store.Transaction(ctx, func(tx Store) error {
		p, err := s.ownedProperty(ctx, tx, propertyID, callerID)
		if err != nil {
			return err
		}
		ownerID = p.OwnerID
		unit, err = s.createUnit(ctx, tx, propertyID, &in)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "create unit", err)
	}
	s.log(ctx).Info("Unit created", "property_id", propertyID, "unit_id", unit.ID, "unit_number", unit.UnitNumber)
	s.publishUnitChange(ctx, propertyID, ownerID, unit.ID, "unit.created")
	return s.unitView(ctx, propertyID, unit.ID)
}

// GetUnit returns one unit of the caller's property with its images.
func (s *Service) GetUnit(ctx context.Context, propertyID, unitID, callerID string) (*UnitView, error) {
	if _, _, err := s.ownedUnit(ctx, s.store, propertyID, unitID, callerID); err != nil {
		return nil, s.fail(ctx, "get unit", err)
	}
	return s.unitView(ctx, propertyID, unitID)
}

// ListUnits returns every live unit of the caller's property.
func (s *Service) ListUnits(ctx context.Context, propertyID, callerID string) ([]UnitView, error) {
	if _, err := s.ownedProperty(ctx, s.store, propertyID, callerID); err != nil {
		return nil, s.fail(ctx, "list units", err)
	}
	units, err := s.store.ListUnits(ctx, []string{propertyID})
	if err != nil {
		return nil, s.fail(ctx, "list units", err)
	}
	return s.unitViews(ctx, units)
}

// UpdateUnit applies a partial update to a unit.
func (s *Service) UpdateUnit(ctx context.Context, propertyID, unitID, callerID string, patch UnitPatch) (*UnitView, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	var ownerID string
	err := s.store.Transaction(ctx, func(tx Store) error {
		p, u, err := s.ownedUnit(ctx, tx, propertyID, unitID, callerID)
		if err != nil {
			return err
		}
		ownerID = p.OwnerID
		cols := patch.apply(u)
		var c checker
		c.leaseOrder(u.LeaseMinMonths, u.LeaseMaxMonths)
		if err := c.err(); err != nil {
			return err
		}
		if len(cols) == 0 {
			return nil
		}
		u.UpdatedAt = s.now()
		return tx.UpdateUnitColumns(ctx, u, append(cols, "updated_at"))
	})
	if err != nil {
		return nil, s.fail(ctx, "update unit", err)
	}
	s.log(ctx).Info("Unit updated", "property_id", propertyID, "unit_id", unitID)
	s.publishUnitChange(ctx, propertyID, ownerID, unitID, "unit.updated")
	return s.unitView(ctx, propertyID, unitID)
}

// DeleteUnit soft-deletes a unit and its images.
func (s *Service) DeleteUnit(ctx context.Context, propertyID, unitID, callerID string) error {
	var ownerID string
	err := s.store.Transaction(ctx, func(tx Store) error {
		p, _, err := s.ownedUnit(ctx, tx, propertyID, unitID, callerID)
		if err != nil {
			return err
		}
		ownerID = p.OwnerID
		if _, err := tx.SoftDeleteImagesOfUnit(ctx, unitID); err != nil {
			return err
		}
		n, err := tx.SoftDeleteUnit(ctx, unitID)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound("unit", unitID)
		}
		return nil
	})
	if err != nil {
		return s.fail(ctx, "delete unit", err)
	}
	s.log(ctx).Info("Unit deleted", "property_id", propertyID, "unit_id", unitID)
	s.publishUnitChange(ctx, propertyID, ownerID, unitID, "unit.deleted")
	return nil
}

// SearchUnits returns one page of live units matching every provided criterion.
func (s *Service) SearchUnits(ctx context.Context, c filter.UnitCriteria, q pagination.Query) (pagination.Page[models.PropertyUnit], error) {
	if err := c.Validate(); err != nil {
		return pagination.Page[models.PropertyUnit]{}, validationf("%v", err)
	}
	units, total, err := s.store.FindUnits(ctx, filter.ForUnits(c), q)
	if err != nil {
		return pagination.Page[models.PropertyUnit]{}, s.fail(ctx, "search units", err)
	}
	return pagination.NewPage(units, q, total), nil
}

func (s *Service) unitView(ctx context.Context, propertyID, unitID string) (*UnitView, error) {
	u, err := s.store.GetUnit(ctx, propertyID, unitID)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("unit", unitID)
	}
	if err != nil {
		return nil, s.fail(ctx, "load unit", err)
	}
	views, err := s.unitViews(ctx, []models.PropertyUnit{*u})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) unitViews(ctx context.Context, units []models.PropertyUnit) ([]UnitView, error) {
	ids := make([]string, len(units))
	for i := range units {
		ids[i] = units[i].ID
	}
	byUnit := make(map[string][]models.PropertyImage)
	if len(ids) > 0 {
		images, err := s.store.ListImages(ctx, nil, ids)
		if err != nil {
			return nil, s.fail(ctx, "list unit images", err)
		}
		for _, img := range images {
			if img.UnitID != nil {
				byUnit[*img.UnitID] = append(byUnit[*img.UnitID], img)
			}
		}
	}
	views := make([]UnitView, len(units))
	for i, u := range units {
		views[i] = UnitView{PropertyUnit: u, Images: nonNil(byUnit[u.ID])}
	}
	return views, nil
}

func (s *Service) publishUnitChange(ctx context.Context, propertyID, ownerID, unitID, change string) {
	s.publish(ctx, events.New(events.PropertyUpdated, propertyID, ownerID, map[string]any{
		"change": change,
		"unitId": unitID,
	}))
	s.refreshIndex(ctx, propertyID)
}
