package postgres

import (
	"fmt"
	"strings"

	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/store"
)

// planCompiler translates a shaped query plan into SQL fragments against a
// JSONB document table. Field names are embedded as quoted JSONB path
// literals; values always travel as bind parameters.
type planCompiler struct {
	spec store.CollectionSpec
	args []any
}

func newPlanCompiler(spec store.CollectionSpec) *planCompiler {
	return &planCompiler{spec: spec}
}

// bind registers a bind parameter and returns its placeholder.
func (c *planCompiler) bind(v any) string {
	c.args = append(c.args, v)
	return fmt.Sprintf("$%d", len(c.args))
}

// fieldExpr returns the SQL expression reading a document field, cast to
// numeric when the collection declares the field numeric.
func (c *planCompiler) fieldExpr(field string) string {
	expr := fmt.Sprintf("doc->>%s", quoteLiteral(field))
	if c.spec.IsNumeric(field) {
		return fmt.Sprintf("(%s)::numeric", expr)
	}
	return expr
}

var opSQL = map[query.Op]string{
	query.OpEq:  "=",
	query.OpGte: ">=",
	query.OpGt:  ">",
	query.OpLte: "<=",
	query.OpLt:  "<",
}

// where compiles filters and keyword search into a WHERE clause (without
// the keyword). An empty plan compiles to no clause at all.
func (c *planCompiler) where(plan *query.Plan) string {
	if plan == nil {
		return ""
	}

	var conds []string
	for _, f := range plan.Filters {
		op, ok := opSQL[f.Op]
		if !ok {
			op = "="
		}
		placeholder := c.bind(f.Value)
		if c.spec.IsNumeric(f.Field) && f.Field != "" {
			placeholder += "::numeric"
		}
		conds = append(conds, fmt.Sprintf("%s %s %s", c.fieldExpr(f.Field), op, placeholder))
	}

	if plan.Keyword != "" && len(c.spec.Searchable) > 0 {
		pattern := c.bind("%" + escapeLike(plan.Keyword) + "%")
		var ors []string
		for _, field := range c.spec.Searchable {
			ors = append(ors, fmt.Sprintf("doc->>%s ILIKE %s", quoteLiteral(field), pattern))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// orderBy compiles the sort keys. created_at and updated_at map to their
// real columns; every ORDER BY ends with an id tie-break so page order is
// deterministic even across equal sort values.
func (c *planCompiler) orderBy(plan *query.Plan) string {
	var keys []string
	if plan != nil {
		for _, s := range plan.Sort {
			dir := "ASC"
			if s.Desc {
				dir = "DESC"
			}
			switch s.Field {
			case "createdAt", "created_at":
				keys = append(keys, "created_at "+dir)
			case "updatedAt", "updated_at":
				keys = append(keys, "updated_at "+dir)
			case "id":
				keys = append(keys, "id "+dir)
			default:
				keys = append(keys, fmt.Sprintf("%s %s", c.fieldExpr(s.Field), dir))
			}
		}
	}
	keys = append(keys, "id ASC")
	return " ORDER BY " + strings.Join(keys, ", ")
}

// limitOffset compiles the pagination window.
func (c *planCompiler) limitOffset(plan *query.Plan) string {
	if plan == nil || plan.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %s OFFSET %s", c.bind(plan.Limit), c.bind(plan.Skip()))
}

// quoteLiteral renders a string as a single-quoted SQL literal, doubling
// embedded quotes. Used for JSONB field names, which cannot be bound.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// escapeLike escapes LIKE metacharacters so a keyword is matched verbatim.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
