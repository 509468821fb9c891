package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// checker collects validation problems so a request reports all of them at once.
type checker struct {
	problems []string
}

func (c *checker) failf(format string, args ...any) {
	c.problems = append(c.problems, fmt.Sprintf(format, args...))
}

func (c *checker) require(name, v string) {
	if strings.TrimSpace(v) == "" {
		c.failf("%s is required", name)
	}
}

func (c *checker) maxLen(name, v string, n int) {
	if utf8.RuneCountInString(v) > n {
		c.failf("%s must be at most %d characters", name, n)
	}
}

// notNull rejects an explicit null for a column that has no null state.
func (c *checker) notNull(name string, null bool) {
	if null {
		c.failf("%s must not be null", name)
	}
}

func (c *checker) money(name string, v *float64) {
	if v != nil && *v < 0 {
		c.failf("%s must not be negative", name)
	}
}

func (c *checker) count(name string, v *int) {
	if v != nil && *v < 0 {
		c.failf("%s must not be negative", name)
	}
}

func (c *checker) intRange(name string, v *int, lo, hi int) {
	if v != nil && (*v < lo || *v > hi) {
		c.failf("%s must be between %d and %d", name, lo, hi)
	}
}

func (c *checker) floatRange(name string, v *float64, lo, hi float64) {
	if v != nil && (*v < lo || *v > hi) {
		c.failf("%s must be between %g and %g", name, lo, hi)
	}
}

// screening checks lease bounds and tenant requirements shared by properties and units.
func (c *checker) screening(leaseMin, leaseMax, creditScore *int, incomeMultiple *float64) {
	c.intRange("leaseMinMonths", leaseMin, 1, 60)
	c.intRange("leaseMaxMonths", leaseMax, 1, 60)
	c.leaseOrder(leaseMin, leaseMax)
	c.intRange("minCreditScore", creditScore, 300, 850)
	c.floatRange("minIncomeMultiple", incomeMultiple, 1, 10)
}

func (c *checker) leaseOrder(leaseMin, leaseMax *int) {
	if leaseMin != nil && leaseMax != nil && *leaseMin > *leaseMax {
		c.failf("leaseMinMonths must not exceed leaseMaxMonths")
	}
}

func (c *checker) coordinates(lat, lng *float64) {
	c.floatRange("latitude", lat, -90, 90)
	c.floatRange("longitude", lng, -180, 180)
}

func (c *checker) err() error {
	if len(c.problems) == 0 {
		return nil
	}
	return validationf("%s", strings.Join(c.problems, "; "))
}
