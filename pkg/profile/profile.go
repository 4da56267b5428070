package profile

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
)

type NumStats struct {
	Count  int     `json:"count"`
	Nulls  int     `json:"nulls"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Inf    int     `json:"inf"`
}

type BoolStats struct {
	Count int `json:"count"`
	Nulls int `json:"nulls"`
	True  int `json:"true"`
	False int `json:"false"`
}

type TextStats struct {
	Count int         `json:"count"`
	Nulls int         `json:"nulls"`
	Top   []ValueFreq `json:"top,omitempty"`
}

type ValueFreq struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type ColumnProfile struct {
	Name string     `json:"name"`
	Kind string     `json:"kind"`
	Num  *NumStats  `json:"num,omitempty"`
	Bool *BoolStats `json:"bool,omitempty"`
	Text *TextStats `json:"text,omitempty"`
}

// Of summarises every column of f. topK bounds the most frequent values
// kept for text and time columns; 0 keeps none.
func Of(f *ds.Frame, topK int) []ColumnProfile {
	out := make([]ColumnProfile, 0, f.Cols())
	for _, col := range f.Columns() {
		cp := ColumnProfile{Name: col.Name(), Kind: col.Kind().String()}
		switch c := col.(type) {
		case *ds.FloatColumn, *ds.IntColumn:
			fc, _ := ds.ToFloat(c)
			cp.Num = numStats(fc)
		case *ds.BoolColumn:
			bs := &BoolStats{}
			for i := 0; i < c.Len(); i++ {
				v, ok := c.Get(i)
				switch {
				case !ok:
					bs.Nulls++
				case v:
					bs.Count++
					bs.True++
				default:
					bs.Count++
					bs.False++
				}
			}
			cp.Bool = bs
		case *ds.StringColumn:
			cp.Text = textStats(c.Len(), topK, func(i int) (string, bool) { return c.Get(i) })
		case *ds.TimeColumn:
			cp.Text = textStats(c.Len(), topK, func(i int) (string, bool) {
				v, ok := c.Get(i)
				return v.Format("2006-01-02 15:04:05"), ok
			})
		}
		out = append(out, cp)
	}
	return out
}

func numStats(c *ds.FloatColumn) *NumStats {
	ns := &NumStats{Min: math.NaN(), Max: math.NaN(), Mean: math.NaN(), StdDev: math.NaN()}
	finite := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Get(i)
		if !ok {
			ns.Nulls++
			continue
		}
		ns.Count++
		if math.IsInf(v, 0) {
			ns.Inf++
			continue
		}
		finite = append(finite, v)
	}
	if len(finite) == 0 {
		return ns
	}
	sort.Float64s(finite)
	ns.Min, ns.Max = finite[0], finite[len(finite)-1]
	ns.Mean = stat.Mean(finite, nil)
	if len(finite) > 1 {
		ns.StdDev = stat.StdDev(finite, nil)
	}
	return ns
}

func textStats(n, topK int, get func(int) (string, bool)) *TextStats {
	ts := &TextStats{}
	freqs := map[string]int{}
	for i := 0; i < n; i++ {
		v, ok := get(i)
		if !ok {
			ts.Nulls++
			continue
		}
		ts.Count++
		if topK > 0 {
			freqs[v]++
		}
	}
	for k, v := range freqs {
		ts.Top = append(ts.Top, ValueFreq{Value: k, Count: v})
	}
	sort.Slice(ts.Top, func(i, j int) bool {
		if ts.Top[i].Count != ts.Top[j].Count {
			return ts.Top[i].Count > ts.Top[j].Count
		}
		return ts.Top[i].Value < ts.Top[j].Value
	})
	if len(ts.Top) > topK {
		ts.Top = ts.Top[:topK]
	}
	return ts
}

// Line renders a one-line summary of cp for console output.
func (cp ColumnProfile) Line() string {
	switch {
	case cp.Num != nil:
		n := cp.Num
		return fmt.Sprintf("%s (%s): count=%d nulls=%d min=%.6g max=%.6g mean=%.6g std=%.6g", cp.Name, cp.Kind, n.Count, n.Nulls, n.Min, n.Max, n.Mean, n.StdDev)
	case cp.Bool != nil:
		b := cp.Bool
		return fmt.Sprintf("%s (%s): count=%d nulls=%d true=%d false=%d", cp.Name, cp.Kind, b.Count, b.Nulls, b.True, b.False)
	case cp.Text != nil:
		top := make([]string, len(cp.Text.Top))
		for i, vf := range cp.Text.Top {
			top[i] = fmt.Sprintf("%q:%d", vf.Value, vf.Count)
		}
		return fmt.Sprintf("%s (%s): count=%d nulls=%d top=[%s]", cp.Name, cp.Kind, cp.Text.Count, cp.Text.Nulls, strings.Join(top, " "))
	}
	return cp.Name
}
