// Package metrics derives occupancy and revenue figures from a property's units.
package metrics

import (
	"math"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
)

// Summary is recomputed from the live unit set on every read.
type Summary struct {
	UnitCount           int     `json:"unitCount"`
	RentedUnits         int     `json:"rentedUnits"`
	AvailableUnits      int     `json:"availableUnits"`
	OccupancyRate       float64 `json:"occupancyRate"`
	TotalMonthlyRevenue float64 `json:"totalMonthlyRevenue"`
}

// Summarize ignores soft-deleted units.
func Summarize(units []models.PropertyUnit) Summary {
	var s Summary
	var revenue float64
	for i := range units {
		u := &units[i]
		if u.IsDeleted() {
			continue
		}
		s.UnitCount++
		switch u.Status {
		case models.UnitStatusRented:
			s.RentedUnits++
			revenue += u.RentedRent()
		case models.UnitStatusAvailable:
			s.AvailableUnits++
		}
	}
	s.OccupancyRate = OccupancyRate(s.UnitCount, s.RentedUnits)
	s.TotalMonthlyRevenue = RoundCents(revenue)
	return s
}

// OccupancyRate returns 100*rented/total, and 0 when there are no units.
func OccupancyRate(total, rented int) float64 {
	if total <= 0 || rented <= 0 {
		return 0
	}
	if rented > total {
		rented = total
	}
	return round2(100 * float64(rented) / float64(total))
}

// Average returns the mean of rates, 0 for an empty slice.
func Average(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rates {
		sum += r
	}
	return round2(sum / float64(len(rates)))
}

// RoundCents rounds a money amount to two decimals.
func RoundCents(v float64) float64 {
	return round2(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
