package outliers

import (
	"context"
	"math"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
)

// Mask nulls out impossible numeric values in place. With no Columns it
// covers every numeric column; Exclude always wins.
type Mask struct {
	Columns  []string
	Exclude  []string
	Negative bool // v < 0
	Infinite bool // +Inf or -Inf

	masked map[string]int
}

func (t *Mask) Name() string { return "mask_invalid" }

// Masked returns the number of cells nulled per column by the last Apply.
func (t *Mask) Masked() map[string]int { return t.masked }

// Total returns the number of cells nulled by the last Apply.
func (t *Mask) Total() int {
	n := 0
	for _, c := range t.masked {
		n += c
	}
	return n
}

func (t *Mask) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	t.masked = make(map[string]int)
	for _, col := range selectNumeric(f, t.Columns, t.Exclude) {
		n := 0
		switch c := col.(type) {
		case *ds.FloatColumn:
			for i := 0; i < c.Len(); i++ {
				v, ok := c.Get(i)
				if !ok {
					continue
				}
				if math.IsNaN(v) || (t.Negative && v < 0) || (t.Infinite && math.IsInf(v, 0)) {
					c.SetNull(i)
					n++
				}
			}
		case *ds.IntColumn:
			if !t.Negative {
				continue
			}
			for i := 0; i < c.Len(); i++ {
				if v, ok := c.Get(i); ok && v < 0 {
					c.SetNull(i)
					n++
				}
			}
		}
		if n > 0 {
			t.masked[col.Name()] = n
		}
	}
	return f, nil
}

func selectNumeric(f *ds.Frame, names, exclude []string) []ds.Column {
	skip := make(map[string]struct{}, len(exclude))
	for _, n := range exclude {
		skip[n] = struct{}{}
	}
	var cols []ds.Column
	if len(names) == 0 {
		cols = f.Columns()
	} else {
		for _, n := range names {
			if c, ok := f.ColumnByName(n); ok {
				cols = append(cols, c)
			}
		}
	}
	out := cols[:0]
	for _, c := range cols {
		if _, ok := skip[c.Name()]; ok || !c.Kind().IsNumeric() {
			continue
		}
		out = append(out, c)
	}
	return out
}
