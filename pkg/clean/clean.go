// Package clean runs the dairy trajectory cleaning pass: date parsing,
// masking of impossible numeric values, pruning of empty numeric
// columns and median imputation, with the input column order kept.
package clean

import (
	"context"
	"fmt"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
	"github.com/wdm0006/dairyclean/pkg/io/csvio"
	"github.com/wdm0006/dairyclean/pkg/logger"
	"github.com/wdm0006/dairyclean/pkg/profile"
	"github.com/wdm0006/dairyclean/pkg/transform/columns"
	imp "github.com/wdm0006/dairyclean/pkg/transform/impute"
	outl "github.com/wdm0006/dairyclean/pkg/transform/outliers"
	std "github.com/wdm0006/dairyclean/pkg/transform/standardize"
	val "github.com/wdm0006/dairyclean/pkg/transform/validate"
)

const (
	DefaultInput         = "long_format_trajectory.csv"
	DefaultOutput        = "cleaned_dairy_data.csv"
	DefaultIDColumn      = "idAnimale"
	DefaultDateSubstring = "date"
)

type Options struct {
	InputPath     string
	OutputPath    string
	IDColumn      string // numeric identifier kept out of masking and imputation
	DateSubstring string // columns whose name contains it are parsed as dates
	ProfileTopK   int    // values per text column in the debug profile
}

func DefaultOptions() Options {
	return Options{
		InputPath:     DefaultInput,
		OutputPath:    DefaultOutput,
		IDColumn:      DefaultIDColumn,
		DateSubstring: DefaultDateSubstring,
		ProfileTopK:   3,
	}
}

// Report carries what the console diagnostics print.
type Report struct {
	InitialRows    int
	InitialCols    int
	DateColumns    []string
	CoercedDates   int
	NumericCols    int
	NonNumericCols int
	Masked         int
	Dropped        []string
	FinalRows      int
	FinalCols      int
	Output         string
}

// Run loads opts.InputPath, cleans it and writes opts.OutputPath. The
// logger in ctx receives the diagnostics.
func Run(ctx context.Context, opts Options) (*Report, error) {
	log := logger.FromContext(ctx)
	rd, closer, err := csvio.Open(opts.InputPath, csvio.ReaderOptions{HasHeader: true, Delimiter: ',', Strict: true})
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = closer.Close() }()
	f, err := rd.ReadFrame()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.InputPath, err)
	}
	if w := rd.Warnings(); w != "" {
		log.Warn("input repaired", "details", w)
	}

	out, rep, err := Clean(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	if err := csvio.WriteAll(opts.OutputPath, out, csvio.WriterOptions{}); err != nil {
		return nil, fmt.Errorf("write %s: %w", opts.OutputPath, err)
	}
	rep.Output = opts.OutputPath
	log.Info("saved", "path", opts.OutputPath)
	return rep, nil
}

// Clean applies the cleaning pass to f in memory. f's columns may be
// modified in place.
func Clean(ctx context.Context, f *ds.Frame, opts Options) (*ds.Frame, *Report, error) {
	log := logger.FromContext(ctx)
	rep := &Report{}
	order := f.Names()
	rep.InitialRows, rep.InitialCols = f.Shape()
	log.Info("initial shape", "rows", rep.InitialRows, "cols", rep.InitialCols)

	dates := &std.ToDatetime{Substring: opts.DateSubstring}
	f, err := ds.NewPipeline().Add(dates).Run(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	rep.DateColumns, rep.CoercedDates = dates.Converted(), dates.Coerced()
	if rep.CoercedDates > 0 {
		log.Debug("unparseable dates set to missing", "cells", rep.CoercedDates, "columns", rep.DateColumns)
	}

	numeric, rest, id := Split(f, opts.IDColumn)
	rep.NumericCols, rep.NonNumericCols = numeric.Cols(), rest.Cols()
	if id != nil {
		rep.NumericCols++
	}
	log.Info("numeric columns", "count", rep.NumericCols)
	log.Info("non-numeric columns", "count", rep.NonNumericCols)

	mask := &outl.Mask{Negative: true, Infinite: true}
	prune := &columns.DropEmpty{}
	zero := 0.0
	numeric, err = ds.NewPipeline().
		Add(mask).
		Add(prune).
		Add(&imp.Median{}).
		Add(&val.Range{Min: &zero, RejectInf: true, RejectNull: true}).
		Run(ctx, numeric)
	if err != nil {
		return nil, nil, err
	}
	rep.Masked, rep.Dropped = mask.Total(), prune.Dropped()
	log.Info("dropped fully empty numeric columns", "columns", rep.Dropped)

	out, err := Recombine(numeric, rest, id, order)
	if err != nil {
		return nil, nil, err
	}
	rep.FinalRows, rep.FinalCols = out.Shape()
	log.Info("final cleaned shape", "rows", rep.FinalRows, "cols", rep.FinalCols)
	for _, cp := range profile.Of(out, opts.ProfileTopK) {
		log.Debug(cp.Line())
	}
	return out, rep, nil
}

// Split partitions f into numeric and non-numeric blocks. A numeric id
// column is taken out of the numeric block and returned separately;
// a non-numeric one stays with the rest.
func Split(f *ds.Frame, idColumn string) (numeric, rest *ds.Frame, id ds.Column) {
	numeric, rest = f.Partition(func(c ds.Column) bool { return c.Kind().IsNumeric() })
	if c, ok := numeric.ColumnByName(idColumn); ok && idColumn != "" {
		id = c
		numeric = numeric.Drop(idColumn)
	}
	return numeric, rest, id
}

// Recombine puts id back in front of the numeric block, joins the two
// blocks and restores order. Names in order that no longer exist, such
// as pruned columns, are left out.
func Recombine(numeric, rest *ds.Frame, id ds.Column, order []string) (*ds.Frame, error) {
	if id != nil {
		if err := numeric.InsertColumn(0, id); err != nil {
			return nil, err
		}
	}
	joined, err := ds.Concat(numeric, rest)
	if err != nil {
		return nil, fmt.Errorf("recombine: %w", err)
	}
	out, _ := joined.Reorder(order)
	return out, nil
}
