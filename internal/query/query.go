// Package query turns list-endpoint query parameters into a storage-neutral
// query plan: filters, sort keys, field projection, keyword search and
// pagination. The same shaping applies to every listable entity type.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Op identifies a filter comparison operator.
type Op string

// Supported filter operators. Anything else found in a bracketed query key
// is passed through literally as part of the field name, which matches no
// document instead of erroring.
const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpGt  Op = "gt"
	OpLte Op = "lte"
	OpLt  Op = "lt"
)

// Filter is one field comparison in a plan.
type Filter struct {
	Field string
	Op    Op
	Value string
}

// SortField is one sort key; Desc when the request prefixed it with '-'.
type SortField struct {
	Field string
	Desc  bool
}

// Plan is the composed query ready for execution against a collection.
type Plan struct {
	Filters []Filter
	Sort    []SortField
	Fields  []string
	Keyword string
	Page    int
	Limit   int
}

// Skip returns the number of documents to skip for the requested page.
func (p *Plan) Skip() int {
	return p.Limit * (p.Page - 1)
}

// Shaper holds the per-resource shaping configuration.
type Shaper struct {
	// DefaultLimit is the page size used when the request omits limit.
	DefaultLimit int
}

// Reserved query keys that never become filters.
var reservedKeys = map[string]bool{
	"page":    true,
	"limit":   true,
	"sort":    true,
	"fields":  true,
	"keyword": true,
}

// Shape parses the request query parameters into a Plan. It never fails:
// malformed numbers fall back to defaults and unknown operators degrade to
// unmatchable equality filters.
func (s Shaper) Shape(values url.Values) *Plan {
	plan := &Plan{
		Page:  positiveInt(values.Get("page"), 1),
		Limit: positiveInt(values.Get("limit"), s.DefaultLimit),
	}

	if sort := values.Get("sort"); sort != "" {
		for _, field := range strings.Split(sort, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if strings.HasPrefix(field, "-") {
				plan.Sort = append(plan.Sort, SortField{Field: field[1:], Desc: true})
			} else {
				plan.Sort = append(plan.Sort, SortField{Field: field})
			}
		}
	}
	if len(plan.Sort) == 0 {
		// Default order: newest first.
		plan.Sort = []SortField{{Field: "createdAt", Desc: true}}
	}

	if fields := values.Get("fields"); fields != "" {
		for _, f := range strings.Split(fields, ",") {
			if f = strings.TrimSpace(f); f != "" {
				plan.Fields = append(plan.Fields, f)
			}
		}
	}

	plan.Keyword = values.Get("keyword")

	for key, vals := range values {
		if reservedKeys[key] || len(vals) == 0 {
			continue
		}
		plan.Filters = append(plan.Filters, parseFilter(key, vals[0]))
	}

	return plan
}

// parseFilter interprets "field[op]" keys for the supported comparison
// operators. Plain keys and keys with unsupported operators become equality
// filters; for the latter the bracketed key is kept verbatim, so the filter
// silently matches nothing.
func parseFilter(key, value string) Filter {
	open := strings.IndexByte(key, '[')
	if open > 0 && strings.HasSuffix(key, "]") {
		field := key[:open]
		op := Op(key[open+1 : len(key)-1])
		switch op {
		case OpGte, OpGt, OpLte, OpLt:
			return Filter{Field: field, Op: op, Value: value}
		}
	}
	return Filter{Field: key, Op: OpEq, Value: value}
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
