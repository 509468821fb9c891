package handlers

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
)

var registerOnce sync.Once

// RegisterValidators installs the catalog's struct-level rules on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	registerOnce.Do(func() {
		v.RegisterStructValidation(leaseOrder, catalog.PropertyInput{}, catalog.UnitInput{})
	})
	return nil
}

// leaseOrder requires leaseMinMonths <= leaseMaxMonths when both are present.
func leaseOrder(sl validator.StructLevel) {
	var lo, hi *int
	switch in := sl.Current().Interface().(type) {
	case catalog.PropertyInput:
		lo, hi = in.LeaseMinMonths, in.LeaseMaxMonths
	case catalog.UnitInput:
		lo, hi = in.LeaseMinMonths, in.LeaseMaxMonths
	default:
		return
	}
	if lo != nil && hi != nil && *lo > *hi {
		sl.ReportError(*hi, "LeaseMaxMonths", "leaseMaxMonths", "gtefield", "LeaseMinMonths")
	}
}
