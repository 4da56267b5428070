package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
	iox "github.com/wdm0006/dairyclean/pkg/io/ioutils"
)

type ReaderOptions struct {
	HasHeader bool
	Delimiter rune // 0 = sniff, default ','
	Strict    bool // if true, error on records longer than the header
	// NAValues replaces DefaultNAValues when non-nil. The empty string is
	// always missing.
	NAValues []string
}

type Reader struct {
	r   *csv.Reader
	opt ReaderOptions
	// repair/warning counters
	shortRecords int
	longRecords  int
}

// Open opens a CSV file (optionally gzip compressed, "-" for stdin) and
// returns a Reader. The caller closes the returned Closer.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReaderFrom(rc, opt), rc, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader (stdin, pipe).
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	br := bufio.NewReader(r)
	comma, lazy := opt.Delimiter, false
	if comma == 0 {
		sample, _ := br.Peek(4096)
		comma, lazy = sniffDelimiterAndQuotes(sample)
	}
	rr := csv.NewReader(br)
	rr.Comma = comma
	rr.LazyQuotes = lazy
	rr.FieldsPerRecord = -1
	return &Reader{r: rr, opt: opt}
}

// ReadFrame loads the whole CSV into a Frame. Column kinds are inferred
// from every row.
func (r *Reader) ReadFrame() (*ds.Frame, error) {
	var names []string
	if r.opt.HasHeader {
		hdr, err := r.r.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		names = headerNames(hdr)
	}
	var records [][]string
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if names == nil {
			names = make([]string, len(rec))
			for i := range names {
				names[i] = "col_" + strconv.Itoa(i)
			}
		}
		if len(rec) > len(names) {
			r.longRecords++
			if r.opt.Strict {
				line, _ := r.r.FieldPos(0)
				return nil, fmt.Errorf("csv long record at line %d: need %d fields, got %d", line, len(names), len(rec))
			}
		}
		if len(rec) < len(names) {
			r.shortRecords++
		}
		records = append(records, rec)
	}
	return buildFrame(names, records, newClassifier(r.opt.NAValues))
}

func buildFrame(names []string, records [][]string, cl classifier) (*ds.Frame, error) {
	nrows := len(records)
	cols := make([]ds.Column, len(names))
	for c, name := range names {
		cells := make([]string, nrows)
		classes := make([]cellClass, nrows)
		for row, rec := range records {
			if c < len(rec) {
				cells[row] = rec[c]
			}
			classes[row] = cl.classify(cells[row])
		}
		col, err := ds.NewColumn(name, inferKind(classes), nrows)
		if err != nil {
			return nil, err
		}
		for row, v := range cells {
			if classes[row] == cellMissing {
				continue
			}
			setParsed(col, row, v)
		}
		cols[c] = col
	}
	return ds.NewFrameFromColumns(nrows, cols...)
}

// setParsed stores raw in col. Text is kept byte for byte; numbers and
// bools are parsed from the trimmed cell.
func setParsed(col ds.Column, row int, raw string) {
	val := strings.TrimSpace(raw)
	switch c := col.(type) {
	case *ds.FloatColumn:
		// out-of-range literals come back as ±Inf with ErrRange
		if x, err := strconv.ParseFloat(val, 64); err == nil || errors.Is(err, strconv.ErrRange) {
			c.Set(row, x)
		}
	case *ds.IntColumn:
		if x, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.Set(row, x)
		}
	case *ds.BoolColumn:
		if x, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			c.Set(row, x)
		}
	case *ds.StringColumn:
		c.Set(row, raw)
	}
}

// headerNames makes header cells unique: repeats get a
// ".N" suffix and blank names become "Unnamed: i".
func headerNames(rec []string) []string {
	names := make([]string, len(rec))
	seen := make(map[string]struct{}, len(rec))
	for i, raw := range rec {
		n := raw
		if i == 0 {
			n = strings.TrimPrefix(n, "\ufeff")
		}
		if strings.TrimSpace(n) == "" {
			n = "Unnamed: " + strconv.Itoa(i)
		}
		base := n
		for k := 1; ; k++ {
			if _, dup := seen[n]; !dup {
				break
			}
			n = base + "." + strconv.Itoa(k)
		}
		seen[n] = struct{}{}
		names[i] = n
	}
	return names
}

func sniffDelimiterAndQuotes(sample []byte) (rune, bool) {
	if len(sample) == 0 {
		return ',', false
	}
	// only look at the first line so quoted payloads do not skew counts
	if i := strings.IndexByte(string(sample), '\n'); i > 0 {
		sample = sample[:i]
	}
	candidates := []byte{',', '\t', ';', '|'}
	best := byte(',')
	bestCount := 0
	for _, c := range candidates {
		cnt := 0
		for _, b := range sample {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount = cnt
			best = c
		}
	}
	// naive quote heuristic: unbalanced quotes enable LazyQuotes
	quoteCount := 0
	for _, b := range sample {
		if b == '"' {
			quoteCount++
		}
	}
	return rune(best), quoteCount%2 != 0
}

// Warnings returns a summary string of any repairs/mismatches encountered.
func (r *Reader) Warnings() string {
	if r.shortRecords == 0 && r.longRecords == 0 {
		return ""
	}
	parts := []string{}
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}
