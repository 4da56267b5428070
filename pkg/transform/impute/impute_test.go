package impute

import (
	"context"
	"errors"
	"math"
	"testing"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
)

func makeFloatFrame() *ds.Frame {
	s := ds.Schema{Columns: []ds.ColumnSchema{{Name: "x", Type: ds.KindFloat, Nullable: true}}}
	f := ds.NewFrame(s)
	for i := 0; i < 5; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("x")
	c := col.(*ds.FloatColumn)
	c.Set(0, 1.0)
	c.Set(2, 3.0)
	// rows 1,3,4 remain null
	return f
}

func TestMedianEvenCount(t *testing.T) {
	f := makeFloatFrame()
	tform := &Median{}
	out, err := tform.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.ColumnByName("x")
	c := col.(*ds.FloatColumn)
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			t.Fatalf("median imputer left null at row %d", i)
		}
	}
	if v, _ := c.Get(1); v != 2 {
		t.Fatalf("median of {1,3} should be 2, got %v", v)
	}
	if tform.Medians()["x"] != 2 {
		t.Fatalf("medians = %v", tform.Medians())
	}
}

func TestMedianOddCountAndIntWidening(t *testing.T) {
	ic := ds.NewIntColumn("n", 4)
	ic.Set(0, 7)
	ic.Set(1, 1)
	ic.Set(2, 4)
	id := ds.NewIntColumn("idAnimale", 4)
	f, _ := ds.NewFrameFromColumns(4, id, ic)

	out, err := (&Median{Exclude: []string{"idAnimale"}}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.ColumnByName("n")
	fc, ok := col.(*ds.FloatColumn)
	if !ok {
		t.Fatalf("imputed int column should become float, got %s", col.Kind())
	}
	if v, _ := fc.Get(3); v != 4 {
		t.Fatalf("median of {1,4,7} should be 4, got %v", v)
	}
	col, _ = out.ColumnByName("idAnimale")
	if col.Kind() != ds.KindInt || !col.IsNull(0) {
		t.Fatal("excluded column must be left alone")
	}
	if out.Names()[1] != "n" {
		t.Fatalf("column order changed: %v", out.Names())
	}
}

func TestMedianNoObservations(t *testing.T) {
	empty := ds.NewFloatColumn("gone", 3)
	f, _ := ds.NewFrameFromColumns(3, empty)
	_, err := (&Median{}).Apply(context.Background(), f)
	if !errors.Is(err, ErrNoObservations) {
		t.Fatalf("expected ErrNoObservations, got %v", err)
	}
}

func TestMedianLargeMiddlePairStaysFinite(t *testing.T) {
	c := ds.NewFloatColumn("big", 3)
	c.Set(0, 1e308)
	c.Set(1, 1.5e308)
	f, _ := ds.NewFrameFromColumns(3, c)
	if _, err := (&Median{}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get(2); math.IsInf(v, 0) || math.Abs(v-1.25e308) > 1e295 {
		t.Fatalf("median = %v, want 1.25e308", v)
	}
}
