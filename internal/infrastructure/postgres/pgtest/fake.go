// Package pgtest provides an in-memory postgres.Client for tests. It evaluates
// filters, ordering and embedding against JSON rows and records every call.
package pgtest

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/oksasatya/portfolio-backend/internal/infrastructure/postgres"
)

type Row = map[string]any

// Call is one recorded client invocation.
type Call struct {
	Op      string
	Table   string
	Filters []postgres.Filter
	Rows    []postgres.Values
	Set     postgres.Values
	Key     string
}

type Fake struct {
	mu       sync.Mutex
	tables   map[string][]Row
	counters map[string]int
	calls    []Call
	failures map[string]error
	inTx     bool

	// NewID generates ids for inserted rows lacking one. Defaults to
	// the table's first letter plus a per-table counter ("projects" -> "p1").
	NewID func(table string, n int) string
	Now   func() time.Time
}

func New() *Fake {
	return &Fake{
		tables:   map[string][]Row{},
		counters: map[string]int{},
		failures: map[string]error{},
		NewID: func(table string, n int) string {
			return table[:1] + strconv.Itoa(n)
		},
		Now: func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("pgtest: cannot encode %T: %v", v, err))
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return out
}

func normalizeRow(r map[string]any) Row {
	out, _ := normalize(r).(map[string]any)
	if out == nil {
		out = Row{}
	}
	return out
}

// Seed stores rows as-is (after JSON normalization) without recording calls.
func (f *Fake) Seed(table string, rows ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		f.tables[table] = append(f.tables[table], normalizeRow(r))
	}
}

// Rows returns a snapshot of a table.
func (f *Fake) Rows(table string) []Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Row, len(f.tables[table]))
	copy(out, f.tables[table])
	return out
}

// FailOn makes every later op on table fail with err. Use "*" for any table.
func (f *Fake) FailOn(op, table string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op+":"+table] = err
}

func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Ops lists recorded calls as "op:table", e.g. "delete:project_skills".
func (f *Fake) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		if c.Table == "" {
			out = append(out, c.Op)
			continue
		}
		out = append(out, c.Op+":"+c.Table)
	}
	return out
}

// CallsFor returns recorded calls of one op on one table.
func (f *Fake) CallsFor(op, table string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Op == op && c.Table == table {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) record(c Call) error {
	f.calls = append(f.calls, c)
	if err, ok := f.failures[c.Op+":"+c.Table]; ok {
		return err
	}
	if err, ok := f.failures[c.Op+":*"]; ok {
		return err
	}
	return nil
}

func (f *Fake) matches(row Row, filters []postgres.Filter) bool {
	for _, flt := range filters {
		switch flt.Op {
		case postgres.OpIn:
			ids, _ := flt.Value.([]string)
			ok := false
			for _, id := range ids {
				if reflect.DeepEqual(row[flt.Column], id) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		case postgres.OpRelated:
			rel := flt.Relation
			ok := false
			for _, j := range f.tables[rel.JoinTable] {
				if reflect.DeepEqual(j[rel.OwnerKey], row["id"]) && reflect.DeepEqual(j[rel.TargetKey], normalize(flt.Value)) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		default:
			if !reflect.DeepEqual(row[flt.Column], normalize(flt.Value)) {
				return false
			}
		}
	}
	return true
}

// compare orders nulls last, like Postgres ascending order.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	switch x := a.(type) {
	case float64:
		y, _ := b.(float64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case bool:
		y, _ := b.(bool)
		if x == y {
			return 0
		}
		if !x {
			return -1
		}
		return 1
	default:
		xs, ys := fmt.Sprint(a), fmt.Sprint(b)
		switch {
		case xs < ys:
			return -1
		case xs > ys:
			return 1
		}
		return 0
	}
}

func sortRows(rows []Row, orders []postgres.OrderBy) {
	if len(orders) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range orders {
			c := compare(rows[i][o.Column], rows[j][o.Column])
			if o.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
}

func (f *Fake) embed(row Row, rel postgres.Relation) []any {
	type pair struct {
		join   Row
		target Row
	}
	var pairs []pair
	for _, j := range f.tables[rel.JoinTable] {
		if !reflect.DeepEqual(j[rel.OwnerKey], row["id"]) {
			continue
		}
		for _, t := range f.tables[rel.Target] {
			if reflect.DeepEqual(t["id"], j[rel.TargetKey]) {
				pairs = append(pairs, pair{join: j, target: t})
				break
			}
		}
	}
	if len(rel.TargetOrder) > 0 {
		targets := make([]Row, len(pairs))
		for i, p := range pairs {
			targets[i] = p.target
		}
		idx := make([]int, len(pairs))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			for _, o := range rel.TargetOrder {
				c := compare(targets[idx[a]][o.Column], targets[idx[b]][o.Column])
				if o.Desc {
					c = -c
				}
				if c != 0 {
					return c < 0
				}
			}
			return false
		})
		sorted := make([]pair, len(pairs))
		for i, k := range idx {
			sorted[i] = pairs[k]
		}
		pairs = sorted
	}
	out := make([]any, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, map[string]any{
			rel.OwnerKey:   p.join[rel.OwnerKey],
			rel.TargetKey:  p.join[rel.TargetKey],
			rel.TargetName: p.target,
		})
	}
	return out
}

func (f *Fake) selectLocked(q *postgres.Query) []json.RawMessage {
	var rows []Row
	for _, r := range f.tables[q.Table] {
		if f.matches(r, q.Filters) {
			rows = append(rows, r)
		}
	}
	sortRows(rows, q.Orders)
	if q.Max > 0 && len(rows) > q.Max {
		rows = rows[:q.Max]
	}
	out := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		obj := Row{}
		for k, v := range r {
			obj[k] = v
		}
		for _, rel := range q.Embeds {
			obj[rel.Name] = f.embed(r, rel)
		}
		b, _ := json.Marshal(obj)
		out = append(out, b)
	}
	return out
}

func (f *Fake) Select(_ context.Context, q *postgres.Query) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "select", Table: q.Table, Filters: q.Filters}); err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}
	return f.selectLocked(q), nil
}

func (f *Fake) SelectSingle(_ context.Context, q *postgres.Query) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "single", Table: q.Table, Filters: q.Filters}); err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}
	probe := *q
	probe.Max = 2
	rows := f.selectLocked(&probe)
	switch len(rows) {
	case 0:
		return nil, fmt.Errorf("select %s: %w", q.Table, postgres.ErrNoRows)
	case 1:
		return rows[0], nil
	default:
		return nil, fmt.Errorf("select %s: %w", q.Table, postgres.ErrMultipleRows)
	}
}

func (f *Fake) Count(_ context.Context, q *postgres.Query) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "count", Table: q.Table, Filters: q.Filters}); err != nil {
		return 0, fmt.Errorf("count %s: %w", q.Table, err)
	}
	var n int64
	for _, r := range f.tables[q.Table] {
		if f.matches(r, q.Filters) {
			n++
		}
	}
	return n, nil
}

func (f *Fake) Insert(_ context.Context, table string, rows ...postgres.Values) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(rows) == 0 {
		return nil, nil
	}
	if err := f.record(Call{Op: "insert", Table: table, Rows: rows}); err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	out := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		row := normalizeRow(r)
		if _, ok := row["id"]; !ok {
			row["id"] = f.freshID(table)
		}
		if _, ok := row["created_at"]; !ok {
			row["created_at"] = f.Now().Format(time.RFC3339Nano)
		}
		f.tables[table] = append(f.tables[table], row)
		b, _ := json.Marshal(row)
		out = append(out, b)
	}
	return out, nil
}

// freshID skips ids already taken by seeded rows.
func (f *Fake) freshID(table string) string {
	for {
		f.counters[table]++
		id := f.NewID(table, f.counters[table])
		taken := false
		for _, row := range f.tables[table] {
			if row["id"] == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

func (f *Fake) Update(_ context.Context, q *postgres.Query, set postgres.Values) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "update", Table: q.Table, Filters: q.Filters, Set: set}); err != nil {
		return 0, fmt.Errorf("update %s: %w", q.Table, err)
	}
	if len(q.Filters) == 0 {
		return 0, fmt.Errorf("update %s: %w", q.Table, postgres.ErrUnfiltered)
	}
	norm := normalizeRow(set)
	var n int64
	for _, r := range f.tables[q.Table] {
		if f.matches(r, q.Filters) {
			for k, v := range norm {
				r[k] = v
			}
			n++
		}
	}
	return n, nil
}

func (f *Fake) Delete(_ context.Context, q *postgres.Query) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "delete", Table: q.Table, Filters: q.Filters}); err != nil {
		return 0, fmt.Errorf("delete %s: %w", q.Table, err)
	}
	if len(q.Filters) == 0 {
		return 0, fmt.Errorf("delete %s: %w", q.Table, postgres.ErrUnfiltered)
	}
	kept := f.tables[q.Table][:0:0]
	var n int64
	for _, r := range f.tables[q.Table] {
		if f.matches(r, q.Filters) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.tables[q.Table] = kept
	return n, nil
}

func (f *Fake) snapshot() map[string][]Row {
	snap := make(map[string][]Row, len(f.tables))
	for t, rows := range f.tables {
		cp := make([]Row, len(rows))
		for i, r := range rows {
			c := Row{}
			for k, v := range r {
				c[k] = v
			}
			cp[i] = c
		}
		snap[t] = cp
	}
	return snap
}

// Tx restores every table when fn fails.
func (f *Fake) Tx(ctx context.Context, fn func(tx postgres.Client) error) error {
	f.mu.Lock()
	if err := f.record(Call{Op: "tx"}); err != nil {
		f.mu.Unlock()
		return fmt.Errorf("begin: %w", err)
	}
	snap := f.snapshot()
	outer := f.inTx
	f.inTx = true
	f.mu.Unlock()

	err := fn(f)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inTx = outer
	if err != nil {
		f.tables = snap
		f.calls = append(f.calls, Call{Op: "rollback"})
		return err
	}
	f.calls = append(f.calls, Call{Op: "commit"})
	return nil
}

func (f *Fake) Lock(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "lock", Key: key}); err != nil {
		return err
	}
	if !f.inTx {
		return postgres.ErrNoTx
	}
	return nil
}

var _ postgres.Client = (*Fake)(nil)
