package store

import (
	"strconv"
	"strings"

	"georef/internal/geo/query"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildSelect renders a parameterized SELECT for schema with conds joined by
// AND. Column names come from code; only arguments come from clients.
func buildSelect[T any](schema Schema[T], conds []query.Condition[T]) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(schema.Columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(schema.From)

	args := make([]any, 0, len(conds))
	for i, c := range conds {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(c.Column)
		switch c.Match {
		case query.MatchContains:
			b.WriteString(" ILIKE $")
			args = append(args, "%"+likeEscaper.Replace(toString(c.Arg))+"%")
		default:
			b.WriteString(" = $")
			args = append(args, c.Arg)
		}
		b.WriteString(strconv.Itoa(len(args)))
	}

	b.WriteString(" ORDER BY ")
	b.WriteString(schema.IDColumn)
	return b.String(), args
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}
