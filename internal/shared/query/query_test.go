package query

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"bookreview-backend/internal/shared/apperror"
)

func testSchema() Schema {
	return Schema{
		Filterable: map[string]FieldType{
			"title":         String,
			"author":        String,
			"publishedYear": Int,
			"averageRating": Float,
			"featured":      Bool,
		},
		DefaultSort: bson.D{{Key: "createdAt", Value: -1}},
	}
}

func params(rawQuery string) map[string][]string {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		panic(err)
	}
	return values
}

// --- Filters ---

func TestBuild_Defaults(t *testing.T) {
	plan, err := Build(params(""), testSchema())
	require.NoError(t, err)

	assert.Equal(t, bson.M{}, plan.Filter)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, plan.Sort)
	assert.Nil(t, plan.Projection)
	assert.Equal(t, DefaultPage, plan.Page)
	assert.Equal(t, DefaultLimit, plan.Limit)
	assert.Equal(t, 0, plan.Skip)
}

func TestBuild_EqualityFilter(t *testing.T) {
	plan, err := Build(params("author=Jane+Austen&featured=true"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, bson.M{"author": "Jane Austen", "featured": true}, plan.Filter)
}

func TestBuild_ComparisonFilter(t *testing.T) {
	plan, err := Build(params("publishedYear[gte]=1950"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, bson.M{"publishedYear": bson.M{"$gte": 1950}}, plan.Filter)
}

func TestBuild_RangeMergesOperatorsOnOneField(t *testing.T) {
	plan, err := Build(params("publishedYear[gte]=1900&publishedYear[lte]=1950"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, bson.M{"publishedYear": bson.M{"$gte": 1900, "$lte": 1950}}, plan.Filter)
}

func TestBuild_FloatComparison(t *testing.T) {
	plan, err := Build(params("averageRating[gte]=4.5"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, bson.M{"averageRating": bson.M{"$gte": 4.5}}, plan.Filter)
}

func TestBuild_ReservedKeysAreNotFilters(t *testing.T) {
	plan, err := Build(params("page=2&sort=title&limit=5&fields=title"), testSchema())
	require.NoError(t, err)

	assert.Empty(t, plan.Filter)
}

func TestBuild_UnknownFieldsIgnored(t *testing.T) {
	plan, err := Build(params("hacker=1&passwordHash[gte]=x&title=Dune"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, bson.M{"title": "Dune"}, plan.Filter)
}

func TestBuild_UnknownOperatorTreatedAsPlainKey(t *testing.T) {
	// "publishedYear[regex]" is not a declared field, so it is dropped.
	plan, err := Build(params("publishedYear[regex]=.*"), testSchema())
	require.NoError(t, err)

	assert.Empty(t, plan.Filter)
}

func TestBuild_BadTypedValueFails(t *testing.T) {
	_, err := Build(params("publishedYear[gte]=abc"), testSchema())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

// --- Sort ---

func TestBuild_SortDescending(t *testing.T) {
	plan, err := Build(params("sort=-publishedYear"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, bson.D{{Key: "publishedYear", Value: -1}}, plan.Sort)
}

func TestBuild_SortMultiKey(t *testing.T) {
	plan, err := Build(params("sort=author,-publishedYear"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "author", Value: 1},
		{Key: "publishedYear", Value: -1},
	}, plan.Sort)
}

func TestBuild_EmptySortFallsBackToDefault(t *testing.T) {
	plan, err := Build(params("sort=,"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, plan.Sort)
}

// --- Projection ---

func TestBuild_FieldsProjection(t *testing.T) {
	plan, err := Build(params("fields=title,author"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, bson.M{"title": 1, "author": 1}, plan.Projection)
}

// --- Pagination ---

func TestBuild_PaginationSkip(t *testing.T) {
	plan, err := Build(params("page=3&limit=5"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, 3, plan.Page)
	assert.Equal(t, 5, plan.Limit)
	assert.Equal(t, 10, plan.Skip)
}

func TestBuild_NonNumericPaginationFallsBack(t *testing.T) {
	plan, err := Build(params("page=abc&limit=-1"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, DefaultPage, plan.Page)
	assert.Equal(t, DefaultLimit, plan.Limit)
}

func TestBuild_MaxLimitCapsWhenSet(t *testing.T) {
	schema := testSchema()
	schema.MaxLimit = 50

	plan, err := Build(params("limit=500"), schema)
	require.NoError(t, err)
	assert.Equal(t, 50, plan.Limit)
}

func TestBuild_LimitUncappedByDefault(t *testing.T) {
	plan, err := Build(params("limit=100000"), testSchema())
	require.NoError(t, err)
	assert.Equal(t, 100000, plan.Limit)
}

// --- Composition ---

func TestBuild_ComposedQuery(t *testing.T) {
	plan, err := Build(params("publishedYear[gte]=1950&sort=-publishedYear&limit=2&page=1"), testSchema())
	require.NoError(t, err)

	assert.Equal(t, bson.M{"publishedYear": bson.M{"$gte": 1950}}, plan.Filter)
	assert.Equal(t, bson.D{{Key: "publishedYear", Value: -1}}, plan.Sort)
	assert.Equal(t, 2, plan.Limit)
	assert.Equal(t, 0, plan.Skip)
}

func TestFindOptions(t *testing.T) {
	plan, err := Build(params("sort=title&fields=title&page=2&limit=4"), testSchema())
	require.NoError(t, err)

	opts := plan.FindOptions()
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(4), *opts.Skip)
	assert.Equal(t, int64(4), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "title", Value: 1}}, opts.Sort)
	assert.Equal(t, bson.M{"title": 1}, opts.Projection)
}
