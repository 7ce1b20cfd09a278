package postgres

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrNoRows signals that a single-row fetch matched nothing.
	ErrNoRows = errors.New("no matching row")
	// ErrMultipleRows signals that a single-row fetch matched more than one row.
	ErrMultipleRows = errors.New("more than one row matched")
	// ErrUnfiltered guards against whole-table updates and deletes.
	ErrUnfiltered = errors.New("update and delete require at least one filter")
	// ErrNoTx is returned by Lock outside a transaction.
	ErrNoTx = errors.New("advisory lock requires a transaction")
)

// Values is one row of column values for insert or update.
type Values map[string]any

// Client is the relational store surface the persistence adapters are written against.
// Rows travel as JSON objects keyed by column name.
type Client interface {
	Select(ctx context.Context, q *Query) ([]json.RawMessage, error)
	// SelectSingle returns ErrNoRows when nothing matches.
	SelectSingle(ctx context.Context, q *Query) (json.RawMessage, error)
	Count(ctx context.Context, q *Query) (int64, error)
	// Insert writes one or more rows and returns them as stored.
	Insert(ctx context.Context, table string, rows ...Values) ([]json.RawMessage, error)
	Update(ctx context.Context, q *Query, set Values) (int64, error)
	Delete(ctx context.Context, q *Query) (int64, error)
	// Tx runs fn in a transaction; fn's error rolls everything back.
	Tx(ctx context.Context, fn func(tx Client) error) error
	// Lock takes a transaction-scoped advisory lock on key.
	Lock(ctx context.Context, key string) error
}

type Op string

const (
	OpEq      Op = "eq"
	OpIn      Op = "in"
	OpRelated Op = "related"
)

// Filter restricts a query. For OpRelated, Relation names the join table and
// Value is matched against its TargetKey.
type Filter struct {
	Column   string
	Op       Op
	Value    any
	Relation *Relation
}

type OrderBy struct {
	Column string
	Desc   bool
}

// Relation describes a many-to-many link through a join table. When embedded,
// each row gains Name: [{OwnerKey, TargetKey, TargetName: {target row}}, ...].
type Relation struct {
	Name        string
	JoinTable   string
	OwnerKey    string
	TargetKey   string
	Target      string
	TargetName  string
	TargetOrder []OrderBy
}

// Query describes a filtered, ordered read or the filter of a write.
// Owner rows are identified by their "id" column.
type Query struct {
	Table   string
	Filters []Filter
	Orders  []OrderBy
	Embeds  []Relation
	Max     int
}

func From(table string) *Query {
	return &Query{Table: table}
}

func (q *Query) Eq(column string, value any) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpEq, Value: value})
	return q
}

func (q *Query) In(column string, values []string) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpIn, Value: values})
	return q
}

// Related keeps rows that have a join row in rel pointing at targetID.
func (q *Query) Related(rel Relation, targetID string) *Query {
	r := rel
	q.Filters = append(q.Filters, Filter{Column: rel.TargetKey, Op: OpRelated, Value: targetID, Relation: &r})
	return q
}

func (q *Query) Order(column string) *Query {
	q.Orders = append(q.Orders, OrderBy{Column: column})
	return q
}

func (q *Query) OrderDesc(column string) *Query {
	q.Orders = append(q.Orders, OrderBy{Column: column, Desc: true})
	return q
}

func (q *Query) Embed(rel Relation) *Query {
	q.Embeds = append(q.Embeds, rel)
	return q
}

func (q *Query) Limit(n int) *Query {
	q.Max = n
	return q
}
