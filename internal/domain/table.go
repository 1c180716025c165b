package domain

import (
	"slices"
	"time"
)

// RawTable is the ingested observation table before numeric coercion.
// Cells are stored column-major and share the row order of Index.
type RawTable struct {
	Columns []string
	Index   []time.Time
	Cells   map[string][]string
}

// Len returns the number of rows.
func (r *RawTable) Len() int { return len(r.Index) }

// Table is the numeric observation table the cleaning stages mutate in place.
type Table struct {
	Columns []string
	Index   []time.Time
	data    map[string][]Value
}

// NewTable creates an empty table with the given timestamps and no columns.
func NewTable(index []time.Time) *Table {
	return &Table{
		Index: index,
		data:  make(map[string][]Value),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Index) }

// Width returns the number of data columns, not counting the index.
func (t *Table) Width() int { return len(t.Columns) }

// Has reports whether the table carries the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.data[name]
	return ok
}

// Column returns the named column, or nil if it does not exist.
// The slice is shared with the table.
func (t *Table) Column(name string) []Value {
	return t.data[name]
}

// Set replaces the named column, appending it to Columns if new.
// Callers must pass exactly Len() values.
func (t *Table) Set(name string, values []Value) {
	if _, ok := t.data[name]; !ok {
		t.Columns = append(t.Columns, name)
	}
	t.data[name] = values
}

// Drop removes the named column if present.
func (t *Table) Drop(name string) {
	if _, ok := t.data[name]; !ok {
		return
	}
	delete(t.data, name)
	t.Columns = slices.DeleteFunc(t.Columns, func(c string) bool { return c == name })
}

// Row returns the values of row i in Columns order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = t.data[c][i]
	}
	return row
}

// DropFirstRow removes row 0 from the index and every column.
// It is a no-op on an empty table.
func DropFirstRow(t *Table) {
	if t.Len() == 0 {
		return
	}
	t.Index = t.Index[1:]
	for _, c := range t.Columns {
		t.data[c] = t.data[c][1:]
	}
}
