// Package query translates raw request query parameters into a document-store
// query plan: equality and comparison filters, multi-key sort, field
// projection and skip/limit pagination.
//
// Filterable fields are declared up front with their types instead of
// accepting arbitrary request keys, so operator tokens can only ever appear
// where the schema expects them. Note that limit carries no upper bound by
// default (Schema.MaxLimit is off unless set), so a caller can request an
// arbitrarily large page.
package query

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookreview-backend/internal/shared/apperror"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Reserved parameter names that never become filters.
var reservedParams = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// Comparison operators accepted in the field[op]=value form.
var comparisonOps = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

type FieldType int

const (
	String FieldType = iota
	Int
	Float
	Bool
)

// Schema declares which fields of a collection may be filtered on, and how
// their raw string values are typed.
type Schema struct {
	Filterable map[string]FieldType
	// DefaultSort applies when no sort parameter is present.
	DefaultSort bson.D
	// MaxLimit caps the page size when > 0. Zero means uncapped, matching
	// the source behavior.
	MaxLimit int
}

// Plan is a composed, side-effect-free query specification. Execution is the
// caller's job: a paged find with Filter+Sort+Projection+Skip+Limit, and a
// separate unpaginated count over Filter alone.
type Plan struct {
	Filter     bson.M
	Sort       bson.D
	Projection bson.M
	Page       int
	Limit      int
	Skip       int
}

// Build parses raw query parameters (as produced by url.Values) against the
// schema. Unknown parameter names are ignored; a value that cannot be parsed
// as the declared field type is a validation failure.
func Build(params map[string][]string, schema Schema) (*Plan, error) {
	plan := &Plan{Filter: bson.M{}}

	if err := buildFilter(plan, params, schema); err != nil {
		return nil, err
	}
	buildSort(plan, params, schema)
	buildProjection(plan, params)
	buildPagination(plan, params, schema)

	return plan, nil
}

func buildFilter(plan *Plan, params map[string][]string, schema Schema) error {
	for key, values := range params {
		if reservedParams[key] || len(values) == 0 {
			continue
		}

		field, op := splitComparison(key)
		fieldType, ok := schema.Filterable[field]
		if !ok {
			continue
		}

		value, err := parseValue(values[0], fieldType)
		if err != nil {
			return apperror.NewValidation("invalid value for filter field " + field)
		}

		if op == "" {
			plan.Filter[field] = value
			continue
		}

		// Merge operators so gte and lte on the same field form one range.
		if existing, ok := plan.Filter[field].(bson.M); ok {
			existing[op] = value
		} else {
			plan.Filter[field] = bson.M{op: value}
		}
	}
	return nil
}

// splitComparison decodes the nested-object encoding "field[op]" into the
// field name and the mongo operator. Returns an empty operator for plain keys.
func splitComparison(key string) (string, string) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	op, ok := comparisonOps[key[open+1:len(key)-1]]
	if !ok {
		return key, ""
	}
	return key[:open], op
}

func parseValue(raw string, fieldType FieldType) (interface{}, error) {
	switch fieldType {
	case Int:
		return strconv.Atoi(raw)
	case Float:
		return strconv.ParseFloat(raw, 64)
	case Bool:
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}

func buildSort(plan *Plan, params map[string][]string, schema Schema) {
	raw := first(params, "sort")
	if raw == "" {
		plan.Sort = schema.DefaultSort
		return
	}

	sort := bson.D{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		sort = append(sort, bson.E{Key: field, Value: order})
	}

	if len(sort) == 0 {
		sort = schema.DefaultSort
	}
	plan.Sort = sort
}

func buildProjection(plan *Plan, params map[string][]string) {
	raw := first(params, "fields")
	if raw == "" {
		return // all fields
	}

	projection := bson.M{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			projection[field] = 1
		}
	}
	if len(projection) > 0 {
		plan.Projection = projection
	}
}

func buildPagination(plan *Plan, params map[string][]string, schema Schema) {
	plan.Page = positiveInt(first(params, "page"), DefaultPage)
	plan.Limit = positiveInt(first(params, "limit"), DefaultLimit)
	if schema.MaxLimit > 0 && plan.Limit > schema.MaxLimit {
		plan.Limit = schema.MaxLimit
	}
	plan.Skip = (plan.Page - 1) * plan.Limit
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func first(params map[string][]string, key string) string {
	if values, ok := params[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

// FindOptions materializes the plan's sort, projection and pagination as
// driver options for the paged find.
func (p *Plan) FindOptions() *options.FindOptions {
	opts := options.Find().
		SetSkip(int64(p.Skip)).
		SetLimit(int64(p.Limit))
	if len(p.Sort) > 0 {
		opts.SetSort(p.Sort)
	}
	if p.Projection != nil {
		opts.SetProjection(p.Projection)
	}
	return opts
}
