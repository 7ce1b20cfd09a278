package postgres

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// The owner table is always aliased "t", join tables "j" and embedded targets "x".

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

type argList struct {
	args []any
}

func (a *argList) add(v any) string {
	a.args = append(a.args, v)
	return "$" + strconv.Itoa(len(a.args))
}

func buildWhere(q *Query, a *argList) string {
	if len(q.Filters) == 0 {
		return ""
	}
	parts := make([]string, 0, len(q.Filters))
	for _, f := range q.Filters {
		switch f.Op {
		case OpIn:
			parts = append(parts, fmt.Sprintf("t.%s = ANY(%s)", ident(f.Column), a.add(f.Value)))
		case OpRelated:
			rel := f.Relation
			parts = append(parts, fmt.Sprintf(
				"EXISTS (SELECT 1 FROM %s j WHERE j.%s = t.%s AND j.%s = %s)",
				ident(rel.JoinTable), ident(rel.OwnerKey), ident("id"), ident(rel.TargetKey), a.add(f.Value),
			))
		default:
			if f.Value == nil {
				parts = append(parts, fmt.Sprintf("t.%s IS NULL", ident(f.Column)))
				continue
			}
			parts = append(parts, fmt.Sprintf("t.%s = %s", ident(f.Column), a.add(f.Value)))
		}
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

func buildOrder(alias string, orders []OrderBy) string {
	if len(orders) == 0 {
		return ""
	}
	parts := make([]string, 0, len(orders))
	for _, o := range orders {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, fmt.Sprintf("%s.%s %s", alias, ident(o.Column), dir))
	}
	return strings.Join(parts, ", ")
}

func embedExpr(rel Relation) string {
	order := buildOrder("x", rel.TargetOrder)
	if order != "" {
		order = " ORDER BY " + order
	}
	return fmt.Sprintf(
		"COALESCE((SELECT jsonb_agg(jsonb_build_object('%s', j.%s, '%s', j.%s, '%s', to_jsonb(x))%s) "+
			"FROM %s j JOIN %s x ON x.%s = j.%s WHERE j.%s = t.%s), '[]'::jsonb)",
		rel.OwnerKey, ident(rel.OwnerKey), rel.TargetKey, ident(rel.TargetKey), rel.TargetName, order,
		ident(rel.JoinTable), ident(rel.Target), ident("id"), ident(rel.TargetKey), ident(rel.OwnerKey), ident("id"),
	)
}

func buildSelect(q *Query) (string, []any) {
	var a argList
	row := "to_jsonb(t)"
	if len(q.Embeds) > 0 {
		pairs := make([]string, 0, len(q.Embeds))
		for _, rel := range q.Embeds {
			pairs = append(pairs, fmt.Sprintf("'%s', %s", rel.Name, embedExpr(rel)))
		}
		row += " || jsonb_build_object(" + strings.Join(pairs, ", ") + ")"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s AS t", row, ident(q.Table))
	sb.WriteString(buildWhere(q, &a))
	if order := buildOrder("t", q.Orders); order != "" {
		sb.WriteString(" ORDER BY " + order)
	}
	if q.Max > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(q.Max))
	}
	return sb.String(), a.args
}

func buildCount(q *Query) (string, []any) {
	var a argList
	return fmt.Sprintf("SELECT count(*) FROM %s AS t%s", ident(q.Table), buildWhere(q, &a)), a.args
}

func sortedColumns(rows []Values) []string {
	seen := map[string]struct{}{}
	for _, r := range rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// buildInsert emits DEFAULT for columns a row does not carry.
func buildInsert(table string, rows []Values) (string, []any) {
	var a argList
	cols := sortedColumns(rows)
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
	}
	tuples := make([]string, 0, len(rows))
	for _, r := range rows {
		vals := make([]string, len(cols))
		for i, c := range cols {
			if v, ok := r[c]; ok {
				vals[i] = a.add(v)
			} else {
				vals[i] = "DEFAULT"
			}
		}
		tuples = append(tuples, "("+strings.Join(vals, ", ")+")")
	}
	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s AS t DEFAULT VALUES RETURNING to_jsonb(t)", ident(table)), nil
	}
	return fmt.Sprintf("INSERT INTO %s AS t (%s) VALUES %s RETURNING to_jsonb(t)",
		ident(table), strings.Join(quoted, ", "), strings.Join(tuples, ", ")), a.args
}

func buildUpdate(q *Query, set Values) (string, []any) {
	var a argList
	cols := sortedColumns([]Values{set})
	assigns := make([]string, len(cols))
	for i, c := range cols {
		assigns[i] = fmt.Sprintf("%s = %s", ident(c), a.add(set[c]))
	}
	return fmt.Sprintf("UPDATE %s AS t SET %s%s", ident(q.Table), strings.Join(assigns, ", "), buildWhere(q, &a)), a.args
}

func buildDelete(q *Query) (string, []any) {
	var a argList
	return fmt.Sprintf("DELETE FROM %s AS t%s", ident(q.Table), buildWhere(q, &a)), a.args
}
