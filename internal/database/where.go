package database

import (
	"fmt"
	"math"
	"strings"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
)

var propertyColumns = map[filter.Field]string{
	filter.FieldOwnerID:           "properties.owner_id",
	filter.FieldStatus:            "properties.status",
	filter.FieldType:              "properties.property_type",
	filter.FieldCity:              "properties.city",
	filter.FieldState:             "properties.state",
	filter.FieldZipCode:           "properties.zip_code",
	filter.FieldMonthlyRent:       "properties.monthly_rent",
	filter.FieldSecurityDeposit:   "properties.security_deposit",
	filter.FieldBedrooms:          "properties.bedrooms",
	filter.FieldBathrooms:         "properties.bathrooms",
	filter.FieldSquareFootage:     "properties.total_square_footage",
	filter.FieldUtilitiesIncluded: "properties.utilities_included",
	filter.FieldPetFriendly:       "properties.pet_friendly",
	filter.FieldFurnished:         "properties.furnished",
	filter.FieldParkingAvailable:  "properties.parking_available",
	filter.FieldGarageSpaces:      "properties.garage_spaces",
	filter.FieldSmokeFree:         "properties.smoke_free",
	filter.FieldElevatorBuilding:  "properties.elevator_building",
	filter.FieldAirConditioning:   "properties.air_conditioning",
	filter.FieldIsAvailable:       "properties.is_available",
	filter.FieldIsFeatured:        "properties.is_featured",
	filter.FieldFeaturedUntil:     "properties.featured_until",
	filter.FieldAvailableFrom:     "properties.available_from",
	filter.FieldCreatedAt:         "properties.created_at",
	filter.FieldUpdatedAt:         "properties.updated_at",
	filter.FieldMinCreditScore:    "properties.min_credit_score",
	filter.FieldMinIncomeMultiple: "properties.min_income_multiple",
	filter.FieldLeaseMinMonths:    "properties.lease_min_months",
	filter.FieldLeaseMaxMonths:    "properties.lease_max_months",
	filter.FieldViewCount:         "properties.view_count",
}

var unitColumns = map[filter.Field]string{
	filter.FieldPropertyID:    "property_units.property_id",
	filter.FieldStatus:        "property_units.status",
	filter.FieldMonthlyRent:   "property_units.monthly_rent",
	filter.FieldBedrooms:      "property_units.bedrooms",
	filter.FieldBathrooms:     "property_units.bathrooms",
	filter.FieldSquareFootage: "property_units.square_footage",
	filter.FieldFloor:         "property_units.floor",
	filter.FieldFurnished:     "property_units.furnished",
	filter.FieldPetFriendly:   "property_units.pet_friendly",
	filter.FieldIsAvailable:   "property_units.is_available",
	filter.FieldAvailableFrom: "property_units.available_from",
	filter.FieldCreatedAt:     "property_units.created_at",
}

var comparisons = map[filter.Op]string{
	filter.OpEq:  "=",
	filter.OpNe:  "<>",
	filter.OpGt:  ">",
	filter.OpGte: ">=",
	filter.OpLt:  "<",
	filter.OpLte: "<=",
}

// kmPerDegree is the length of one degree of latitude.
const kmPerDegree = 111.045

// whereRenderer turns a predicate tree into a parameterized SQL condition.
type whereRenderer struct {
	columns map[filter.Field]string
	// properties enables the property-only operators (keyword, tags, images, geo).
	properties bool
	sql        strings.Builder
	args       []any
}

// renderWhere returns an empty string when p imposes no constraint.
func renderWhere(p filter.Predicate, columns map[filter.Field]string, properties bool) (string, []any, error) {
	if p == nil {
		return "", nil, nil
	}
	if a, ok := p.(filter.And); ok && len(a) == 0 {
		return "", nil, nil
	}
	r := &whereRenderer{columns: columns, properties: properties}
	if err := p.Accept(r); err != nil {
		return "", nil, err
	}
	return r.sql.String(), r.args, nil
}

func (r *whereRenderer) VisitAnd(nodes filter.And) error {
	return r.group([]filter.Predicate(nodes), " AND ", "1=1")
}

func (r *whereRenderer) VisitOr(nodes filter.Or) error {
	return r.group([]filter.Predicate(nodes), " OR ", "1=0")
}

func (r *whereRenderer) group(nodes []filter.Predicate, sep, empty string) error {
	if len(nodes) == 0 {
		r.sql.WriteString(empty)
		return nil
	}
	r.sql.WriteString("(")
	for i, n := range nodes {
		if i > 0 {
			r.sql.WriteString(sep)
		}
		if err := n.Accept(r); err != nil {
			return err
		}
	}
	r.sql.WriteString(")")
	return nil
}

func (r *whereRenderer) VisitClause(c filter.Clause) error {
	switch c.Op {
	case filter.OpMatch:
		return r.keyword(c)
	case filter.OpAnyTag:
		return r.anyTag(c)
	case filter.OpHasImage:
		return r.hasImage(c)
	case filter.OpGeoRadius:
		return r.geo(c)
	}

	col, ok := r.columns[c.Field]
	if !ok {
		return fmt.Errorf("%w: field %s", filter.ErrUnsupported, c.Field)
	}
	switch c.Op {
	case filter.OpIsNull:
		r.sql.WriteString(col + " IS NULL")
	case filter.OpIn:
		r.sql.WriteString(col + " IN ?")
		r.args = append(r.args, c.Value)
	case filter.OpContains:
		s, ok := c.Value.(string)
		if !ok {
			return fmt.Errorf("%w: substring of type %T", filter.ErrUnsupported, c.Value)
		}
		r.sql.WriteString("LOWER(" + col + ") LIKE ?")
		r.args = append(r.args, "%"+strings.ToLower(s)+"%")
	default:
		cmp, ok := comparisons[c.Op]
		if !ok {
			return fmt.Errorf("%w: operator %s", filter.ErrUnsupported, c.Op)
		}
		r.sql.WriteString(col + " " + cmp + " ?")
		r.args = append(r.args, c.Value)
	}
	return nil
}

func (r *whereRenderer) keyword(c filter.Clause) error {
	kw, ok := c.Value.(string)
	if !r.properties || !ok {
		return fmt.Errorf("%w: keyword", filter.ErrUnsupported)
	}
	like := "%" + strings.ToLower(kw) + "%"
	r.sql.WriteString("(LOWER(properties.name) LIKE ? OR LOWER(properties.description) LIKE ? OR LOWER(properties.city) LIKE ?)")
	r.args = append(r.args, like, like, like)
	return nil
}

func (r *whereRenderer) anyTag(c filter.Clause) error {
	tags, ok := c.Value.([]string)
	if !r.properties || !ok {
		return fmt.Errorf("%w: tags", filter.ErrUnsupported)
	}
	if len(tags) == 0 {
		r.sql.WriteString("1=1")
		return nil
	}
	r.sql.WriteString("properties.id IN (SELECT property_tags.property_id FROM property_tags WHERE property_tags.tag IN ?)")
	r.args = append(r.args, tags)
	return nil
}

// hasImage matches live images attached to the property or to one of its live units.
func (r *whereRenderer) hasImage(c filter.Clause) error {
	kind, ok := c.Value.(models.ImageType)
	if !r.properties || !ok {
		return fmt.Errorf("%w: images", filter.ErrUnsupported)
	}
	r.sql.WriteString("EXISTS (SELECT 1 FROM property_images pi WHERE pi.deleted_at IS NULL" +
		" AND (pi.property_id = properties.id OR pi.unit_id IN" +
		" (SELECT pu.id FROM property_units pu WHERE pu.property_id = properties.id AND pu.deleted_at IS NULL))")
	switch kind {
	case "":
	case models.ImageType360View:
		r.sql.WriteString(" AND (pi.image_type = ? OR pi.is_360_view = ?)")
		r.args = append(r.args, kind, true)
	default:
		r.sql.WriteString(" AND pi.image_type = ?")
		r.args = append(r.args, kind)
	}
	r.sql.WriteString(")")
	return nil
}

// geo approximates the radius with a bounding box, which every dialect can index.
func (r *whereRenderer) geo(c filter.Clause) error {
	g, ok := c.Value.(filter.GeoRadius)
	if !r.properties || !ok {
		return fmt.Errorf("%w: location", filter.ErrUnsupported)
	}
	dLat := g.RadiusKm / kmPerDegree
	cos := math.Cos(g.Latitude * math.Pi / 180)
	dLng := 180.0
	if cos > 1e-6 {
		dLng = math.Min(180, g.RadiusKm/(kmPerDegree*cos))
	}
	r.sql.WriteString("(properties.latitude BETWEEN ? AND ? AND properties.longitude BETWEEN ? AND ?)")
	r.args = append(r.args, g.Latitude-dLat, g.Latitude+dLat, g.Longitude-dLng, g.Longitude+dLng)
	return nil
}

var propertySorts = map[string]string{
	"createdAt":     "properties.created_at",
	"updatedAt":     "properties.updated_at",
	"name":          "properties.name",
	"monthlyRent":   "properties.monthly_rent",
	"listingPrice":  "properties.listing_price",
	"city":          "properties.city",
	"status":        "properties.status",
	"propertyType":  "properties.property_type",
	"bedrooms":      "properties.bedrooms",
	"availableFrom": "properties.available_from",
	"viewCount":     "properties.view_count",
	"inquiryCount":  "properties.inquiry_count",
	"favoriteCount": "properties.favorite_count",
}

var unitSorts = map[string]string{
	"createdAt":     "property_units.created_at",
	"unitNumber":    "property_units.unit_number",
	"monthlyRent":   "property_units.monthly_rent",
	"floor":         "property_units.floor",
	"status":        "property_units.status",
	"bedrooms":      "property_units.bedrooms",
	"squareFootage": "property_units.square_footage",
	"availableFrom": "property_units.available_from",
}

// orderClause resolves a sort field through a whitelist, falling back to creation time.
// The id tiebreaker keeps pages stable.
func orderClause(sorts map[string]string, field string, ascending bool, table string) string {
	col, ok := sorts[field]
	if !ok {
		col = sorts["createdAt"]
	}
	dir := "DESC"
	if ascending {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s, %s.id %s", col, dir, table, dir)
}
