package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeDefaults(t *testing.T) {
	t.Parallel()

	shaper := Shaper{DefaultLimit: 10}
	plan := shaper.Shape(url.Values{})

	assert.Equal(t, 1, plan.Page)
	assert.Equal(t, 10, plan.Limit)
	assert.Empty(t, plan.Filters)
	assert.Empty(t, plan.Fields)
	assert.Empty(t, plan.Keyword)
	require.Len(t, plan.Sort, 1)
	assert.Equal(t, SortField{Field: "createdAt", Desc: true}, plan.Sort[0])
}

func TestShapePagination(t *testing.T) {
	t.Parallel()

	shaper := Shaper{DefaultLimit: 10}

	t.Run("explicit page and limit", func(t *testing.T) {
		plan := shaper.Shape(url.Values{"page": {"3"}, "limit": {"5"}})
		assert.Equal(t, 3, plan.Page)
		assert.Equal(t, 5, plan.Limit)
		assert.Equal(t, 10, plan.Skip())
	})

	t.Run("malformed values fall back", func(t *testing.T) {
		plan := shaper.Shape(url.Values{"page": {"abc"}, "limit": {"-4"}})
		assert.Equal(t, 1, plan.Page)
		assert.Equal(t, 10, plan.Limit)
		assert.Equal(t, 0, plan.Skip())
	})
}

func TestShapeFilters(t *testing.T) {
	t.Parallel()

	shaper := Shaper{DefaultLimit: 10}

	t.Run("plain key is equality", func(t *testing.T) {
		plan := shaper.Shape(url.Values{"category": {"abc"}})
		require.Len(t, plan.Filters, 1)
		assert.Equal(t, Filter{Field: "category", Op: OpEq, Value: "abc"}, plan.Filters[0])
	})

	t.Run("bracketed comparison operators", func(t *testing.T) {
		plan := shaper.Shape(url.Values{
			"price[gte]":    {"50"},
			"price[lt]":     {"200"},
			"quantity[gt]":  {"0"},
			"ratings[lte]":  {"5"},
		})
		require.Len(t, plan.Filters, 4)

		ops := map[string]Op{}
		for _, f := range plan.Filters {
			ops[f.Field+"/"+f.Value] = f.Op
		}
		assert.Equal(t, OpGte, ops["price/50"])
		assert.Equal(t, OpLt, ops["price/200"])
		assert.Equal(t, OpGt, ops["quantity/0"])
		assert.Equal(t, OpLte, ops["ratings/5"])
	})

	t.Run("unknown operator keeps the literal key", func(t *testing.T) {
		plan := shaper.Shape(url.Values{"price[regex]": {"1"}})
		require.Len(t, plan.Filters, 1)
		// The bracketed key survives verbatim, so the filter matches no
		// document field instead of failing the request.
		assert.Equal(t, Filter{Field: "price[regex]", Op: OpEq, Value: "1"}, plan.Filters[0])
	})

	t.Run("reserved keys never become filters", func(t *testing.T) {
		plan := shaper.Shape(url.Values{
			"page":    {"2"},
			"limit":   {"5"},
			"sort":    {"price"},
			"fields":  {"title"},
			"keyword": {"phone"},
		})
		assert.Empty(t, plan.Filters)
	})
}

func TestShapeSort(t *testing.T) {
	t.Parallel()

	shaper := Shaper{DefaultLimit: 10}

	plan := shaper.Shape(url.Values{"sort": {"-price, sold"}})
	require.Len(t, plan.Sort, 2)
	assert.Equal(t, SortField{Field: "price", Desc: true}, plan.Sort[0])
	assert.Equal(t, SortField{Field: "sold", Desc: false}, plan.Sort[1])
}

func TestShapeFieldsAndKeyword(t *testing.T) {
	t.Parallel()

	shaper := Shaper{DefaultLimit: 10}

	plan := shaper.Shape(url.Values{
		"fields":  {"title, price ,ratingsAverage"},
		"keyword": {"laptop"},
	})
	assert.Equal(t, []string{"title", "price", "ratingsAverage"}, plan.Fields)
	assert.Equal(t, "laptop", plan.Keyword)
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	t.Run("23 matches at limit 10", func(t *testing.T) {
		first := Paginate(23, 1, 10)
		assert.Equal(t, 1, first.CurrentPage)
		assert.Equal(t, 3, first.TotalPages)
		require.NotNil(t, first.Next)
		assert.Equal(t, 2, *first.Next)
		assert.Nil(t, first.Prev)

		middle := Paginate(23, 2, 10)
		require.NotNil(t, middle.Next)
		assert.Equal(t, 3, *middle.Next)
		require.NotNil(t, middle.Prev)
		assert.Equal(t, 1, *middle.Prev)

		last := Paginate(23, 3, 10)
		assert.Nil(t, last.Next)
		require.NotNil(t, last.Prev)
		assert.Equal(t, 2, *last.Prev)
	})

	t.Run("exact multiple has no next on the last page", func(t *testing.T) {
		p := Paginate(20, 2, 10)
		assert.Equal(t, 2, p.TotalPages)
		assert.Nil(t, p.Next)
	})

	t.Run("empty result", func(t *testing.T) {
		p := Paginate(0, 1, 10)
		assert.Equal(t, 0, p.TotalPages)
		assert.Nil(t, p.Next)
		assert.Nil(t, p.Prev)
	})
}
