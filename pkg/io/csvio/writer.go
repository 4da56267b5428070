package csvio

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
	iox "github.com/wdm0006/dairyclean/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame to a CSV file with headers, replacing any
// existing file. Paths ending in .gz are gzip compressed.
func WriteAll(path string, f *ds.Frame, opt WriterOptions) (err error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(out, f, opt)
}

// Write emits the header and every row of f. There is no index column.
func Write(dst io.Writer, f *ds.Frame, opt WriterOptions) error {
	w := csv.NewWriter(dst)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}

	cols := f.Columns()
	layouts := make([]string, len(cols))
	for i, c := range cols {
		if tc, ok := c.(*ds.TimeColumn); ok {
			layouts[i] = timeLayout(tc)
		}
	}

	if err := w.Write(f.Names()); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for r := 0; r < f.Rows(); r++ {
		for c, col := range cols {
			row[c] = formatCell(col, r, layouts[c])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatCell(col ds.Column, r int, layout string) string {
	switch c := col.(type) {
	case *ds.FloatColumn:
		if v, ok := c.Get(r); ok {
			return FormatFloat(v)
		}
	case *ds.IntColumn:
		if v, ok := c.Get(r); ok {
			return strconv.FormatInt(v, 10)
		}
	case *ds.BoolColumn:
		if v, ok := c.Get(r); ok {
			if v {
				return "True"
			}
			return "False"
		}
	case *ds.StringColumn:
		if v, ok := c.Get(r); ok {
			return v
		}
	case *ds.TimeColumn:
		if v, ok := c.Get(r); ok {
			return v.Format(layout)
		}
	}
	return ""
}

// FormatFloat renders v in shortest round-trip form. Integral values keep
// a trailing ".0" so the column reads back as float; magnitudes from 1e16
// and below 1e-4 use exponent notation.
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return ""
	}
	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// timeLayout picks one layout per column: date only when every value is
// at midnight, otherwise seconds with just enough fractional digits.
func timeLayout(c *ds.TimeColumn) string {
	dateOnly, micro, nano := true, false, false
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Get(i)
		if !ok {
			continue
		}
		if v.Hour() != 0 || v.Minute() != 0 || v.Second() != 0 || v.Nanosecond() != 0 {
			dateOnly = false
		}
		if ns := v.Nanosecond(); ns != 0 {
			micro = true
			if ns%int(time.Microsecond) != 0 {
				nano = true
			}
		}
	}
	switch {
	case dateOnly:
		return "2006-01-02"
	case nano:
		return "2006-01-02 15:04:05.000000000"
	case micro:
		return "2006-01-02 15:04:05.000000"
	default:
		return "2006-01-02 15:04:05"
	}
}
