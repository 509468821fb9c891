// Package counter describes engagement counter adjustments and their floor-at-zero semantics.
package counter

// Kind identifies an engagement counter.
type Kind string

const (
	View     Kind = "view"
	Inquiry  Kind = "inquiry"
	Favorite Kind = "favorite"
)

// Column is the properties column holding the counter.
func (k Kind) Column() string {
	switch k {
	case View:
		return "view_count"
	case Inquiry:
		return "inquiry_count"
	case Favorite:
		return "favorite_count"
	}
	return ""
}

// Adjustment is a single +1 or -1 step.
type Adjustment struct {
	Kind  Kind
	Delta int
}

func (a Adjustment) Increment() bool { return a.Delta > 0 }

// Request carries the counter flags of an update.
type Request struct {
	IncrementViewCount     bool `json:"incrementViewCount,omitempty"`
	DecrementViewCount     bool `json:"decrementViewCount,omitempty"`
	IncrementInquiryCount  bool `json:"incrementInquiryCount,omitempty"`
	DecrementInquiryCount  bool `json:"decrementInquiryCount,omitempty"`
	IncrementFavoriteCount bool `json:"incrementFavoriteCount,omitempty"`
	DecrementFavoriteCount bool `json:"decrementFavoriteCount,omitempty"`
}

// Plan returns the adjustments in their fixed evaluation order:
// view, inquiry, favorite, and for each counter the increment before the decrement.
func (r Request) Plan() []Adjustment {
	var plan []Adjustment
	add := func(k Kind, inc, dec bool) {
		if inc {
			plan = append(plan, Adjustment{Kind: k, Delta: 1})
		}
		if dec {
			plan = append(plan, Adjustment{Kind: k, Delta: -1})
		}
	}
	add(View, r.IncrementViewCount, r.DecrementViewCount)
	add(Inquiry, r.IncrementInquiryCount, r.DecrementInquiryCount)
	add(Favorite, r.IncrementFavoriteCount, r.DecrementFavoriteCount)
	return plan
}

// ViewOnce is the implicit adjustment applied when a property is read.
func ViewOnce() []Adjustment {
	return []Adjustment{{Kind: View, Delta: 1}}
}

// Counts is an in-memory snapshot of the three counters.
type Counts struct {
	Views     int64
	Inquiries int64
	Favorites int64
}

// Apply evaluates plan against c, never letting a counter drop below zero.
func (c Counts) Apply(plan []Adjustment) Counts {
	for _, a := range plan {
		v := c.get(a.Kind)
		if a.Increment() {
			v++
		} else if v > 0 {
			v--
		}
		c.set(a.Kind, v)
	}
	return c
}

func (c *Counts) get(k Kind) int64 {
	switch k {
	case View:
		return c.Views
	case Inquiry:
		return c.Inquiries
	default:
		return c.Favorites
	}
}

func (c *Counts) set(k Kind, v int64) {
	switch k {
	case View:
		c.Views = v
	case Inquiry:
		c.Inquiries = v
	default:
		c.Favorites = v
	}
}
