package standardize

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
)

// Timestamps outside the nanosecond-since-epoch range are treated as
// unparseable.
var (
	MinTimestamp = time.Unix(0, math.MinInt64+1).UTC()
	MaxTimestamp = time.Unix(0, math.MaxInt64).UTC()
)

// ToDatetime converts every column whose name contains Substring into a
// time column. Cells that cannot be parsed, or parse outside
// [MinTimestamp, MaxTimestamp], become null; Apply never fails on bad
// input.
//
// Values are stored in UTC: a parsed offset is applied and then dropped,
// so 2021-01-01T00:00:00+02:00 becomes 2020-12-31 22:00:00. Int and float
// cells are read as their decimal text (20210101 is 2021-01-01), not as
// epoch offsets.
type ToDatetime struct {
	Substring string
	// Location for values without an offset; UTC when nil.
	Location *time.Location

	converted []string
	coerced   int
}

func (t *ToDatetime) Name() string { return "to_datetime" }

// Converted lists the columns converted by the last Apply.
func (t *ToDatetime) Converted() []string { return t.converted }

// Coerced is the number of non-null cells that failed to parse.
func (t *ToDatetime) Coerced() int { return t.coerced }

func (t *ToDatetime) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	loc := t.Location
	if loc == nil {
		loc = time.UTC
	}
	t.converted, t.coerced = nil, 0
	for _, col := range f.Columns() {
		if !strings.Contains(col.Name(), t.Substring) || col.Kind() == ds.KindTime {
			continue
		}
		out := ds.NewTimeColumn(col.Name(), col.Len())
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				continue
			}
			raw, ok := cellText(col, i)
			if !ok {
				t.coerced++
				continue
			}
			ts, err := dateparse.ParseIn(raw, loc)
			if err != nil || ts.Before(MinTimestamp) || ts.After(MaxTimestamp) {
				t.coerced++
				continue
			}
			out.Set(i, ts.UTC())
		}
		if err := f.ReplaceColumn(out); err != nil {
			return f, err
		}
		t.converted = append(t.converted, col.Name())
	}
	return f, nil
}

// cellText renders a non-null cell for parsing. Bool cells have no date
// reading.
func cellText(col ds.Column, i int) (string, bool) {
	switch c := col.(type) {
	case *ds.StringColumn:
		v, _ := c.Get(i)
		v = strings.TrimSpace(v)
		return v, v != ""
	case *ds.IntColumn:
		v, _ := c.Get(i)
		return strconv.FormatInt(v, 10), true
	case *ds.FloatColumn:
		v, _ := c.Get(i)
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}
