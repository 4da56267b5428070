package validate

import (
	"context"
	"errors"
	"fmt"
	"math"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
)

// ErrViolation is wrapped by every validation failure.
var ErrViolation = errors.New("validation failed")

// Range checks numeric columns against bounds without modifying them.
// With no Columns it covers every numeric column except Exclude.
type Range struct {
	Columns    []string
	Exclude    []string
	Min        *float64
	Max        *float64
	RejectInf  bool
	RejectNull bool
}

func (t *Range) Name() string { return "validate_range" }

func (t *Range) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	skip := make(map[string]struct{}, len(t.Exclude))
	for _, n := range t.Exclude {
		skip[n] = struct{}{}
	}
	cols := f.Columns()
	if len(t.Columns) > 0 {
		cols = cols[:0]
		for _, n := range t.Columns {
			if c, ok := f.ColumnByName(n); ok {
				cols = append(cols, c)
			}
		}
	}
	var errs []error
	for _, col := range cols {
		if _, ok := skip[col.Name()]; ok || !col.Kind().IsNumeric() {
			continue
		}
		if bad := t.check(col); bad > 0 {
			errs = append(errs, fmt.Errorf("%w: column %s has %d out-of-range values", ErrViolation, col.Name(), bad))
		}
	}
	return f, errors.Join(errs...)
}

func (t *Range) check(col ds.Column) int {
	c, _ := ds.ToFloat(col)
	var bad int
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Get(i)
		if !ok {
			if t.RejectNull {
				bad++
			}
			continue
		}
		switch {
		case t.RejectInf && math.IsInf(v, 0):
			bad++
		case t.Min != nil && v < *t.Min:
			bad++
		case t.Max != nil && v > *t.Max:
			bad++
		}
	}
	return bad
}
