package dataset

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrRowMismatch     = errors.New("row count mismatch")
	ErrInvalidKind     = errors.New("invalid column kind")
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Columns))
	for i, cs := range s.Columns {
		out[i] = cs.Name
	}
	return out
}

// Frame is a columnar container for tabular data. Column order is
// significant and names are unique.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{schema: s, cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		c, err := NewColumn(cs.Name, cs.Type, 0)
		if err != nil {
			panic("invalid column kind")
		}
		f.cols[i] = c
		f.index[cs.Name] = i
	}
	return f
}

// NewFrameFromColumns builds a frame over existing columns without
// copying them. rows is needed for frames with no columns.
func NewFrameFromColumns(rows int, cols ...Column) (*Frame, error) {
	f := &Frame{cols: make([]Column, 0, len(cols)), index: make(map[string]int, len(cols)), nrows: rows}
	for _, c := range cols {
		if c.Len() != rows {
			return nil, fmt.Errorf("column %s has %d rows, want %d: %w", c.Name(), c.Len(), rows, ErrRowMismatch)
		}
		if _, dup := f.index[c.Name()]; dup {
			return nil, fmt.Errorf("column %s: %w", c.Name(), ErrDuplicateColumn)
		}
		f.index[c.Name()] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	f.rebuildSchema()
	return f, nil
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }

// Shape returns (rows, cols).
func (f *Frame) Shape() (int, int) { return f.nrows, len(f.cols) }

// Columns returns the frame's columns in order. The slice is a copy; the
// columns are shared.
func (f *Frame) Columns() []Column {
	out := make([]Column, len(f.cols))
	copy(out, f.cols)
	return out
}

func (f *Frame) Names() []string { return f.schema.Names() }

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// SetCell sets a single cell value by name (row must exist).
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownColumn)
	}
	c := f.cols[i]
	if v == nil {
		c.SetNull(row)
		return nil
	}
	switch col := c.(type) {
	case *BoolColumn:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *IntColumn:
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *FloatColumn:
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	case *TimeColumn:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", name)
		}
		col.Set(row, t)
	default:
		return ErrInvalidKind
	}
	return nil
}

// Select returns a frame holding the named columns in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		c, ok := f.ColumnByName(n)
		if !ok {
			return nil, fmt.Errorf("select %s: %w", n, ErrUnknownColumn)
		}
		cols = append(cols, c)
	}
	return NewFrameFromColumns(f.nrows, cols...)
}

// Reorder is Select that tolerates absent names: they are skipped and
// returned as missing.
func (f *Frame) Reorder(names []string) (out *Frame, missing []string) {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		c, ok := f.ColumnByName(n)
		if !ok {
			missing = append(missing, n)
			continue
		}
		cols = append(cols, c)
	}
	out, err := NewFrameFromColumns(f.nrows, cols...)
	if err != nil {
		// names repeated in the order list; keep first occurrences
		out = f.dedupe(cols)
	}
	return out, missing
}

func (f *Frame) dedupe(cols []Column) *Frame {
	seen := make(map[string]struct{}, len(cols))
	kept := cols[:0:0]
	for _, c := range cols {
		if _, ok := seen[c.Name()]; ok {
			continue
		}
		seen[c.Name()] = struct{}{}
		kept = append(kept, c)
	}
	out, _ := NewFrameFromColumns(f.nrows, kept...)
	return out
}

// Drop returns a frame without the named columns. Unknown names are
// ignored.
func (f *Frame) Drop(names ...string) *Frame {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	cols := make([]Column, 0, len(f.cols))
	for _, c := range f.cols {
		if _, ok := skip[c.Name()]; ok {
			continue
		}
		cols = append(cols, c)
	}
	out, _ := NewFrameFromColumns(f.nrows, cols...)
	return out
}

// Partition splits the frame by column. Both results keep the original
// row count and relative column order.
func (f *Frame) Partition(pred func(Column) bool) (matched, rest *Frame) {
	var in, out []Column
	for _, c := range f.cols {
		if pred(c) {
			in = append(in, c)
		} else {
			out = append(out, c)
		}
	}
	matched, _ = NewFrameFromColumns(f.nrows, in...)
	rest, _ = NewFrameFromColumns(f.nrows, out...)
	return matched, rest
}

// InsertColumn inserts c at position at (clamped to [0, Cols()]).
func (f *Frame) InsertColumn(at int, c Column) error {
	if c.Len() != f.nrows {
		return fmt.Errorf("insert %s: %d rows, want %d: %w", c.Name(), c.Len(), f.nrows, ErrRowMismatch)
	}
	if _, dup := f.index[c.Name()]; dup {
		return fmt.Errorf("insert %s: %w", c.Name(), ErrDuplicateColumn)
	}
	if at < 0 {
		at = 0
	}
	if at > len(f.cols) {
		at = len(f.cols)
	}
	f.cols = append(f.cols, nil)
	copy(f.cols[at+1:], f.cols[at:])
	f.cols[at] = c
	f.reindex()
	return nil
}

// ReplaceColumn swaps the column with the same name for c. The kind may
// change.
func (f *Frame) ReplaceColumn(c Column) error {
	i, ok := f.index[c.Name()]
	if !ok {
		return fmt.Errorf("replace %s: %w", c.Name(), ErrUnknownColumn)
	}
	if c.Len() != f.nrows {
		return fmt.Errorf("replace %s: %d rows, want %d: %w", c.Name(), c.Len(), f.nrows, ErrRowMismatch)
	}
	f.cols[i] = c
	f.rebuildSchema()
	return nil
}

// Concat joins frames side by side. All frames must have the same row
// count and distinct column names.
func Concat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return NewFrameFromColumns(0)
	}
	rows := frames[0].Rows()
	var cols []Column
	for _, fr := range frames {
		if fr.Rows() != rows {
			return nil, fmt.Errorf("concat: %d rows vs %d: %w", fr.Rows(), rows, ErrRowMismatch)
		}
		cols = append(cols, fr.cols...)
	}
	return NewFrameFromColumns(rows, cols...)
}

func (f *Frame) reindex() {
	f.index = make(map[string]int, len(f.cols))
	for i, c := range f.cols {
		f.index[c.Name()] = i
	}
	f.rebuildSchema()
}

func (f *Frame) rebuildSchema() {
	f.schema = Schema{Columns: make([]ColumnSchema, len(f.cols))}
	for i, c := range f.cols {
		f.schema.Columns[i] = ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true}
	}
}
