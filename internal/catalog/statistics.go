package catalog

import (
	"context"
	"strings"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/metrics"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
)

// Statistics summarizes an owner's portfolio.
type Statistics struct {
	OwnerID              string                          `json:"ownerId"`
	TotalProperties      int64                           `json:"totalProperties"`
	CountsByStatus       map[models.PropertyStatus]int64 `json:"countsByStatus"`
	TotalUnits           int                             `json:"totalUnits"`
	RentedUnits          int                             `json:"rentedUnits"`
	TotalMonthlyRevenue  float64                         `json:"totalMonthlyRevenue"`
	AverageOccupancyRate float64                         `json:"averageOccupancyRate"`
}

// GetStatistics aggregates counts, revenue and occupancy over the owner's live properties.
// A rented property without units contributes its own monthly rent to revenue.
func (s *Service) GetStatistics(ctx context.Context, ownerID string) (*Statistics, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, validationf("owner id is required")
	}
	counts, err := s.store.CountPropertiesByStatus(ctx, ownerID)
	if err != nil {
		return nil, s.fail(ctx, "count properties", err)
	}
	props, err := s.store.ListOwnerProperties(ctx, ownerID)
	if err != nil {
		return nil, s.fail(ctx, "list owner properties", err)
	}
	ids := make([]string, len(props))
	for i := range props {
		ids[i] = props[i].ID
	}
	var units []models.PropertyUnit
	if len(ids) > 0 {
		units, err = s.store.ListUnits(ctx, ids)
		if err != nil {
			return nil, s.fail(ctx, "list owner units", err)
		}
	}
	byProperty := make(map[string][]models.PropertyUnit)
	for _, u := range units {
		byProperty[u.PropertyID] = append(byProperty[u.PropertyID], u)
	}

	stats := &Statistics{
		OwnerID:        ownerID,
		CountsByStatus: make(map[models.PropertyStatus]int64),
	}
	for _, st := range models.PropertyStatuses() {
		stats.CountsByStatus[st] = counts[st]
		stats.TotalProperties += counts[st]
	}

	rates := make([]float64, 0, len(props))
	var revenue float64
	for _, p := range props {
		sum := metrics.Summarize(byProperty[p.ID])
		stats.TotalUnits += sum.UnitCount
		stats.RentedUnits += sum.RentedUnits
		revenue += sum.TotalMonthlyRevenue
		if sum.UnitCount == 0 && p.Status == models.PropertyStatusRented && p.MonthlyRent != nil {
			revenue += *p.MonthlyRent
		}
		rates = append(rates, sum.OccupancyRate)
	}
	stats.TotalMonthlyRevenue = metrics.RoundCents(revenue)
	stats.AverageOccupancyRate = metrics.Average(rates)
	return stats, nil
}
