package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
)

var attributes = map[filter.Field]string{
	filter.FieldOwnerID:           "owner_id",
	filter.FieldStatus:            "status",
	filter.FieldType:              "property_type",
	filter.FieldCity:              "city",
	filter.FieldState:             "state",
	filter.FieldZipCode:           "zip_code",
	filter.FieldMonthlyRent:       "monthly_rent",
	filter.FieldSecurityDeposit:   "security_deposit",
	filter.FieldBedrooms:          "bedrooms",
	filter.FieldBathrooms:         "bathrooms",
	filter.FieldSquareFootage:     "square_footage",
	filter.FieldUtilitiesIncluded: "utilities_included",
	filter.FieldPetFriendly:       "pet_friendly",
	filter.FieldFurnished:         "furnished",
	filter.FieldParkingAvailable:  "parking_available",
	filter.FieldGarageSpaces:      "garage_spaces",
	filter.FieldSmokeFree:         "smoke_free",
	filter.FieldElevatorBuilding:  "elevator_building",
	filter.FieldAirConditioning:   "air_conditioning",
	filter.FieldIsAvailable:       "is_available",
	filter.FieldIsFeatured:        "is_featured",
	filter.FieldFeaturedUntil:     "featured_until",
	filter.FieldAvailableFrom:     "available_from",
	filter.FieldCreatedAt:         "created_at",
	filter.FieldUpdatedAt:         "updated_at",
	filter.FieldMinCreditScore:    "min_credit_score",
	filter.FieldMinIncomeMultiple: "min_income_multiple",
	filter.FieldLeaseMinMonths:    "lease_min_months",
	filter.FieldLeaseMaxMonths:    "lease_max_months",
	filter.FieldViewCount:         "view_count",
	filter.FieldTags:              "tags",
}

var operators = map[filter.Op]string{
	filter.OpEq:  "=",
	filter.OpNe:  "!=",
	filter.OpGt:  ">",
	filter.OpGte: ">=",
	filter.OpLt:  "<",
	filter.OpLte: "<=",
}

// filterableAttributes must cover every attribute the renderer can emit.
func filterableAttributes() []string {
	out := make([]string, 0, len(attributes)+3)
	for _, a := range attributes {
		out = append(out, a)
	}
	return append(out, "image_count", "has_360_images", "image_types", "_geo")
}

// filterRenderer renders a predicate tree into a Meilisearch filter expression.
// Keyword clauses are collected as the full-text query instead.
type filterRenderer struct {
	expr  strings.Builder
	query []string
}

// renderFilter returns the filter expression and the full-text query for p.
func renderFilter(p filter.Predicate) (string, string, error) {
	if p == nil {
		return "", "", nil
	}
	r := &filterRenderer{}
	if err := p.Accept(r); err != nil {
		return "", "", err
	}
	return r.expr.String(), strings.Join(r.query, " "), nil
}

func (r *filterRenderer) VisitAnd(nodes filter.And) error {
	return r.group([]filter.Predicate(nodes), " AND ")
}

func (r *filterRenderer) VisitOr(nodes filter.Or) error {
	return r.group([]filter.Predicate(nodes), " OR ")
}

// group skips children that render to nothing, such as keyword clauses.
func (r *filterRenderer) group(nodes []filter.Predicate, sep string) error {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		child := &filterRenderer{}
		if err := n.Accept(child); err != nil {
			return err
		}
		r.query = append(r.query, child.query...)
		if s := child.expr.String(); s != "" {
			parts = append(parts, s)
		}
	}
	switch len(parts) {
	case 0:
	case 1:
		r.expr.WriteString(parts[0])
	default:
		r.expr.WriteString("(" + strings.Join(parts, sep) + ")")
	}
	return nil
}

func (r *filterRenderer) VisitClause(c filter.Clause) error {
	switch c.Op {
	case filter.OpMatch:
		kw, ok := c.Value.(string)
		if !ok {
			return fmt.Errorf("%w: keyword", filter.ErrUnsupported)
		}
		r.query = append(r.query, kw)
		return nil
	case filter.OpHasImage:
		kind, _ := c.Value.(models.ImageType)
		switch kind {
		case "":
			r.expr.WriteString("image_count > 0")
		case models.ImageType360View:
			r.expr.WriteString("has_360_images = true")
		default:
			r.expr.WriteString("image_types = " + strconv.Quote(string(kind)))
		}
		return nil
	case filter.OpGeoRadius:
		g, ok := c.Value.(filter.GeoRadius)
		if !ok {
			return fmt.Errorf("%w: location", filter.ErrUnsupported)
		}
		fmt.Fprintf(&r.expr, "_geoRadius(%s, %s, %d)",
			formatFloat(g.Latitude), formatFloat(g.Longitude), int64(g.RadiusKm*1000))
		return nil
	}

	attr, ok := attributes[c.Field]
	if !ok {
		return fmt.Errorf("%w: field %s", filter.ErrUnsupported, c.Field)
	}
	switch c.Op {
	case filter.OpContains:
		// filter expressions have no substring operator
		return fmt.Errorf("%w: substring match on %s", filter.ErrUnsupported, attr)
	case filter.OpIsNull:
		r.expr.WriteString(attr + " IS NULL")
	case filter.OpIn, filter.OpAnyTag:
		values, err := literalList(c.Value)
		if err != nil {
			return err
		}
		r.expr.WriteString(attr + " IN [" + strings.Join(values, ", ") + "]")
	default:
		op, ok := operators[c.Op]
		if !ok {
			return fmt.Errorf("%w: operator %s", filter.ErrUnsupported, c.Op)
		}
		v, err := literal(c.Value)
		if err != nil {
			return err
		}
		r.expr.WriteString(attr + " " + op + " " + v)
	}
	return nil
}

func literal(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x), nil
	case models.PropertyStatus:
		return strconv.Quote(string(x)), nil
	case models.PropertyType:
		return strconv.Quote(string(x)), nil
	case models.UnitStatus:
		return strconv.Quote(string(x)), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return formatFloat(x), nil
	case time.Time:
		return strconv.FormatInt(x.Unix(), 10), nil
	}
	return "", fmt.Errorf("%w: value of type %T", filter.ErrUnsupported, v)
}

func literalList(v any) ([]string, error) {
	var out []string
	switch x := v.(type) {
	case []string:
		for _, s := range x {
			out = append(out, strconv.Quote(s))
		}
	case []any:
		for _, e := range x {
			l, err := literal(e)
			if err != nil {
				return nil, err
			}
			out = append(out, l)
		}
	default:
		return nil, fmt.Errorf("%w: list of type %T", filter.ErrUnsupported, v)
	}
	return out, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var sortAttributes = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"monthlyRent":   "monthly_rent",
	"viewCount":     "view_count",
	"availableFrom": "available_from",
	"bedrooms":      "bedrooms",
	"name":          "name",
}

func sortableAttributes() []string {
	out := make([]string, 0, len(sortAttributes))
	for _, a := range sortAttributes {
		out = append(out, a)
	}
	return out
}

func sortRule(field string, ascending bool) string {
	attr, ok := sortAttributes[field]
	if !ok {
		attr = "created_at"
	}
	if ascending {
		return attr + ":asc"
	}
	return attr + ":desc"
}
