package impute

import (
	"context"
	"errors"
	"fmt"
	"sort"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
)

// ErrNoObservations is returned when a column selected for imputation
// has no non-null value to fit on.
var ErrNoObservations = errors.New("no observed values")

// Median fills nulls with the column median. With no Columns it covers
// every numeric column except Exclude. Imputed columns come back as
// float columns.
type Median struct {
	Columns []string
	Exclude []string

	medians map[string]float64
}

func (t *Median) Name() string { return "impute_median" }

// Medians returns the fitted median per column from the last Apply.
func (t *Median) Medians() map[string]float64 { return t.medians }

func (t *Median) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	t.medians = make(map[string]float64)
	for _, col := range t.targets(f) {
		c, ok := ds.ToFloat(col)
		if !ok {
			continue
		}
		med, err := median(c)
		if err != nil {
			return f, fmt.Errorf("column %s: %w", c.Name(), err)
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, med)
			}
		}
		t.medians[c.Name()] = med
		if c != col {
			if err := f.ReplaceColumn(c); err != nil {
				return f, err
			}
		}
	}
	return f, nil
}

func (t *Median) targets(f *ds.Frame) []ds.Column {
	skip := make(map[string]struct{}, len(t.Exclude))
	for _, n := range t.Exclude {
		skip[n] = struct{}{}
	}
	var out []ds.Column
	add := func(c ds.Column) {
		if _, ok := skip[c.Name()]; ok || !c.Kind().IsNumeric() {
			return
		}
		out = append(out, c)
	}
	if len(t.Columns) == 0 {
		for _, c := range f.Columns() {
			add(c)
		}
		return out
	}
	for _, n := range t.Columns {
		if c, ok := f.ColumnByName(n); ok {
			add(c)
		}
	}
	return out
}

// median of the non-null values; the mean of the two middle values when
// the count is even.
func median(c *ds.FloatColumn) (float64, error) {
	vals := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Get(i); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return 0, ErrNoObservations
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		return vals[mid-1] + (vals[mid]-vals[mid-1])/2, nil
	}
	return vals[mid], nil
}
