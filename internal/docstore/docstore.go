// Package docstore implements the generic keyed-record store every concept
// is built on. Each collection maps to one table with an id key, creation and
// last-modified timestamps, and the record body as a JSON document. Filters
// are structural equality over attributes and are pushed into SQL rather than
// scanned in memory.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Base is the shape shared by all entities: an identifier assigned at
// creation plus creation and last-modified timestamps. Concept documents
// embed it.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) base() *Base { return b }

type record interface{ base() *Base }

// Filter selects records by structural equality over one or more attributes.
// The key "id" targets the identifier; any other key targets a top-level
// attribute of the document.
type Filter map[string]any

// Patch lists the attributes to overwrite in a partial update. Attributes
// absent from the patch are left untouched.
type Patch map[string]any

// Sort orders results by a single attribute.
type Sort struct {
	Field string
	Desc  bool
}

// Asc sorts ascending by field.
func Asc(field string) Sort { return Sort{Field: field} }

// Desc sorts descending by field.
func Desc(field string) Sort { return Sort{Field: field, Desc: true} }

var tableNameRx = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Collection is a typed view over one entity table. T must embed Base.
type Collection[T any] struct {
	db    *DB
	table string
}

// NewCollection binds a collection to its table, creating the table when it
// does not exist yet.
func NewCollection[T any](db *DB, name string) (*Collection[T], error) {
	if !tableNameRx.MatchString(name) {
		return nil, fmt.Errorf("docstore: invalid collection name %q", name)
	}
	if _, err := db.sql.Exec(db.createTableSQL(name)); err != nil {
		return nil, fmt.Errorf("docstore: create collection %s: %w", name, err)
	}
	return &Collection[T]{db: db, table: name}, nil
}

// CreateOne inserts rec, assigning its identifier and timestamps, and
// returns the new id.
func (c *Collection[T]) CreateOne(ctx context.Context, rec *T) (string, error) {
	b := mustBase(rec)
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	b.CreatedAt, b.UpdatedAt = now, now

	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	q := fmt.Sprintf("INSERT INTO %s (id, created_at, updated_at, doc) VALUES (%s, %s, %s, %s)",
		c.table, c.db.placeholder(1), c.db.placeholder(2), c.db.placeholder(3), c.db.placeholder(4))
	if _, err := c.db.sql.ExecContext(ctx, q, b.ID, b.CreatedAt, b.UpdatedAt, string(raw)); err != nil {
		return "", err
	}
	return b.ID, nil
}

// ReadOne returns the first record matching f, or (nil, nil) when none does.
func (c *Collection[T]) ReadOne(ctx context.Context, f Filter) (*T, error) {
	where, args := c.where(f, 0)
	q := fmt.Sprintf("SELECT id, created_at, updated_at, doc FROM %s%s LIMIT 1", c.table, where)
	row := c.db.sql.QueryRowContext(ctx, q, args...)
	rec, err := c.scan(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// ReadMany returns every record matching f in the requested order.
func (c *Collection[T]) ReadMany(ctx context.Context, f Filter, sorts ...Sort) ([]*T, error) {
	where, args := c.where(f, 0)
	q := fmt.Sprintf("SELECT id, created_at, updated_at, doc FROM %s%s%s", c.table, where, c.orderBy(sorts))
	rows, err := c.db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*T
	for rows.Next() {
		rec, err := c.scan(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// PartialUpdateOne applies the patch to the first record matching f and
// refreshes its last-modified timestamp. It returns the number of records
// updated (0 when nothing matched).
func (c *Collection[T]) PartialUpdateOne(ctx context.Context, f Filter, patch Patch) (int64, error) {
	where, args := c.where(f, 0)
	q := fmt.Sprintf("SELECT id, doc FROM %s%s LIMIT 1", c.table, where)
	var id, raw string
	err := c.db.sql.QueryRowContext(ctx, q, args...).Scan(&id, &raw)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return 0, err
	}
	for k, v := range patch {
		jv, err := normalize(v)
		if err != nil {
			return 0, err
		}
		doc[k] = jv
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc["updatedAt"] = now.Format(time.RFC3339Nano)
	merged, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}

	uq := fmt.Sprintf("UPDATE %s SET doc = %s, updated_at = %s WHERE id = %s",
		c.table, c.db.placeholder(1), c.db.placeholder(2), c.db.placeholder(3))
	res, err := c.db.sql.ExecContext(ctx, uq, string(merged), now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteOne removes the first record matching f and returns the count.
func (c *Collection[T]) DeleteOne(ctx context.Context, f Filter) (int64, error) {
	where, args := c.where(f, 0)
	q := fmt.Sprintf("SELECT id FROM %s%s LIMIT 1", c.table, where)
	var id string
	err := c.db.sql.QueryRowContext(ctx, q, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	dq := fmt.Sprintf("DELETE FROM %s WHERE id = %s", c.table, c.db.placeholder(1))
	res, err := c.db.sql.ExecContext(ctx, dq, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteMany removes every record matching f and returns the count.
func (c *Collection[T]) DeleteMany(ctx context.Context, f Filter) (int64, error) {
	where, args := c.where(f, 0)
	q := fmt.Sprintf("DELETE FROM %s%s", c.table, where)
	res, err := c.db.sql.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *Collection[T]) scan(scan func(...any) error) (*T, error) {
	var (
		id                   string
		createdAt, updatedAt time.Time
		raw                  string
	)
	if err := scan(&id, &createdAt, &updatedAt, &raw); err != nil {
		return nil, err
	}
	rec := new(T)
	if err := json.Unmarshal([]byte(raw), rec); err != nil {
		return nil, err
	}
	b := mustBase(rec)
	b.ID = id
	b.CreatedAt = createdAt.UTC()
	b.UpdatedAt = updatedAt.UTC()
	return rec, nil
}

// where builds a deterministic WHERE clause from f. Filter keys are sorted so
// generated SQL is stable across calls.
func (c *Collection[T]) where(f Filter, argOffset int) (string, []any) {
	if len(f) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		conds []string
		args  []any
	)
	for _, k := range keys {
		n := argOffset + len(args) + 1
		if k == "id" {
			conds = append(conds, fmt.Sprintf("id = %s", c.db.placeholder(n)))
		} else {
			conds = append(conds, fmt.Sprintf("%s = %s", c.db.jsonExpr(k), c.db.placeholder(n)))
		}
		args = append(args, filterArg(f[k]))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (c *Collection[T]) orderBy(sorts []Sort) string {
	if len(sorts) == 0 {
		return ""
	}
	var parts []string
	for _, s := range sorts {
		var expr string
		switch s.Field {
		case "id":
			expr = "id"
		case "createdAt", "created_at":
			expr = "created_at"
		case "updatedAt", "updated_at":
			expr = "updated_at"
		default:
			expr = c.db.jsonExpr(s.Field)
		}
		if s.Desc {
			expr += " DESC"
		}
		parts = append(parts, expr)
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// filterArg renders a filter value for comparison against the extracted JSON
// text. Identifiers and statuses are strings already; anything else compares
// by its printed form.
func filterArg(v any) any {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// normalize round-trips a patch value through JSON so the stored document
// only ever contains JSON-native types.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func mustBase(v any) *Base {
	r, ok := any(v).(record)
	if !ok {
		panic(fmt.Sprintf("docstore: %T does not embed docstore.Base", v))
	}
	return r.base()
}
