// Package filter builds backend-neutral predicate trees from sparse search criteria.
// Storage backends render the tree through a Visitor.
package filter

import (
	"errors"
	"strings"
	"time"
)

// Field names a logical attribute. Renderers map fields to their own columns.
type Field string

const (
	FieldOwnerID           Field = "ownerId"
	FieldPropertyID        Field = "propertyId"
	FieldStatus            Field = "status"
	FieldType              Field = "propertyType"
	FieldCity              Field = "city"
	FieldState             Field = "state"
	FieldZipCode           Field = "zipCode"
	FieldMonthlyRent       Field = "monthlyRent"
	FieldSecurityDeposit   Field = "securityDeposit"
	FieldBedrooms          Field = "bedrooms"
	FieldBathrooms         Field = "bathrooms"
	FieldSquareFootage     Field = "squareFootage"
	FieldUtilitiesIncluded Field = "utilitiesIncluded"
	FieldPetFriendly       Field = "petFriendly"
	FieldFurnished         Field = "furnished"
	FieldParkingAvailable  Field = "parkingAvailable"
	FieldGarageSpaces      Field = "garageSpaces"
	FieldSmokeFree         Field = "smokeFree"
	FieldElevatorBuilding  Field = "elevatorBuilding"
	FieldAirConditioning   Field = "airConditioning"
	FieldIsAvailable       Field = "isAvailable"
	FieldIsFeatured        Field = "isFeatured"
	FieldFeaturedUntil     Field = "featuredUntil"
	FieldAvailableFrom     Field = "availableFrom"
	FieldCreatedAt         Field = "createdAt"
	FieldUpdatedAt         Field = "updatedAt"
	FieldMinCreditScore    Field = "minCreditScore"
	FieldMinIncomeMultiple Field = "minIncomeMultiple"
	FieldLeaseMinMonths    Field = "leaseMinMonths"
	FieldLeaseMaxMonths    Field = "leaseMaxMonths"
	FieldViewCount         Field = "viewCount"
	FieldFloor             Field = "floor"
	FieldKeyword           Field = "keyword"
	FieldTags              Field = "tags"
	FieldImages            Field = "images"
	FieldLocation          Field = "location"
)

// Op is a comparison operator.
type Op string

const (
	OpEq     Op = "eq"
	OpNe     Op = "ne"
	OpGt     Op = "gt"
	OpGte    Op = "gte"
	OpLt     Op = "lt"
	OpLte    Op = "lte"
	OpIn     Op = "in"
	OpIsNull Op = "isNull"
	// OpMatch is a case-insensitive substring match over the keyword columns.
	OpMatch Op = "match"
	// OpContains is a case-insensitive substring match on a single field.
	OpContains Op = "contains"
	// OpAnyTag matches rows carrying at least one of the given tags.
	OpAnyTag Op = "anyTag"
	// OpHasImage matches rows with at least one live image, optionally of a given type.
	OpHasImage Op = "hasImage"
	// OpGeoRadius matches rows within a GeoRadius.
	OpGeoRadius Op = "geoRadius"
)

// ErrUnsupported is returned by renderers for a field or operator they cannot express.
var ErrUnsupported = errors.New("filter: unsupported field or operator")

// Predicate is a node of the predicate tree.
type Predicate interface {
	Accept(v Visitor) error
}

// Visitor renders a predicate tree.
type Visitor interface {
	VisitClause(c Clause) error
	VisitAnd(nodes And) error
	VisitOr(nodes Or) error
}

// Clause is a single (field, operator, value) test.
type Clause struct {
	Field Field
	Op    Op
	Value any
}

func (c Clause) Accept(v Visitor) error { return v.VisitClause(c) }

// And is a conjunction. An empty And matches everything.
type And []Predicate

func (a And) Accept(v Visitor) error { return v.VisitAnd(a) }

// Or is a disjunction.
type Or []Predicate

func (o Or) Accept(v Visitor) error { return v.VisitOr(o) }

// GeoRadius is the value of an OpGeoRadius clause.
type GeoRadius struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// Builder folds optional clauses into a conjunction. Nil predicates are skipped.
type Builder struct {
	nodes And
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends p unless it is nil or an empty group.
func (b *Builder) Add(p Predicate) *Builder {
	switch n := p.(type) {
	case nil:
		return b
	case And:
		if len(n) == 0 {
			return b
		}
	case Or:
		if len(n) == 0 {
			return b
		}
	}
	b.nodes = append(b.nodes, p)
	return b
}

// Build returns the accumulated conjunction.
func (b *Builder) Build() And {
	out := make(And, len(b.nodes))
	copy(out, b.nodes)
	return out
}

// Opt returns a clause for v, or nil when v is nil.
func Opt[T any](f Field, op Op, v *T) Predicate {
	if v == nil {
		return nil
	}
	return Clause{Field: f, Op: op, Value: *v}
}

// Text returns an equality clause, or nil when s is empty.
func Text(f Field, s string) Predicate {
	if s == "" {
		return nil
	}
	return Clause{Field: f, Op: OpEq, Value: s}
}

// Range returns the inclusive bounds that are present.
func Range[T any](f Field, min, max *T) Predicate {
	var nodes And
	if min != nil {
		nodes = append(nodes, Clause{Field: f, Op: OpGte, Value: *min})
	}
	if max != nil {
		nodes = append(nodes, Clause{Field: f, Op: OpLte, Value: *max})
	}
	if len(nodes) == 0 {
		return nil
	}
	return nodes
}

// Contains returns a case-insensitive substring clause, or nil when s is blank.
func Contains(f Field, s string) Predicate {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return Clause{Field: f, Op: OpContains, Value: strings.ToLower(s)}
}

// Period returns the inclusive time bounds that are present.
// An upper bound at midnight names a calendar day and covers all of it.
func Period(f Field, from, to *time.Time) Predicate {
	var nodes And
	if from != nil {
		nodes = append(nodes, Clause{Field: f, Op: OpGte, Value: *from})
	}
	if up := Until(f, to); up != nil {
		nodes = append(nodes, up)
	}
	if len(nodes) == 0 {
		return nil
	}
	return nodes
}

// Until returns the inclusive upper bound for t, or nil when t is nil.
func Until(f Field, t *time.Time) Predicate {
	if t == nil {
		return nil
	}
	if isDate(*t) {
		return Clause{Field: f, Op: OpLt, Value: t.AddDate(0, 0, 1)}
	}
	return Clause{Field: f, Op: OpLte, Value: *t}
}

func isDate(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

// Walk calls fn for every clause in the tree, depth first.
func Walk(p Predicate, fn func(Clause)) {
	switch n := p.(type) {
	case Clause:
		fn(n)
	case And:
		for _, c := range n {
			Walk(c, fn)
		}
	case Or:
		for _, c := range n {
			Walk(c, fn)
		}
	}
}
