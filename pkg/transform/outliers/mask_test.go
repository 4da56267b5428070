package outliers

import (
	"context"
	"math"
	"testing"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
)

func makeFrame() *ds.Frame {
	fc := ds.NewFloatColumn("yield", 5)
	fc.Set(0, 10)
	fc.Set(1, -5)
	fc.Set(2, math.Inf(1))
	fc.Set(3, math.Inf(-1))
	// row 4 null
	ic := ds.NewIntColumn("parity", 5)
	for i := 0; i < 5; i++ {
		ic.Set(i, int64(i-1))
	}
	id := ds.NewIntColumn("idAnimale", 5)
	id.Set(0, -1)
	sc := ds.NewStringColumn("note", 5)
	f, _ := ds.NewFrameFromColumns(5, id, fc, ic, sc)
	return f
}

func TestMaskNegativeAndInfinite(t *testing.T) {
	f := makeFrame()
	m := &Mask{Exclude: []string{"idAnimale"}, Negative: true, Infinite: true}
	if _, err := m.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	col, _ := f.ColumnByName("yield")
	y := col.(*ds.FloatColumn)
	if v, ok := y.Get(0); !ok || v != 10 {
		t.Fatalf("row 0 = %v,%v", v, ok)
	}
	for i := 1; i < 5; i++ {
		if !y.IsNull(i) {
			t.Fatalf("yield row %d should be null", i)
		}
	}
	col, _ = f.ColumnByName("parity")
	if !col.IsNull(0) || col.IsNull(1) {
		t.Fatal("only the negative parity should be masked")
	}
	col, _ = f.ColumnByName("idAnimale")
	if col.IsNull(0) {
		t.Fatal("excluded column was masked")
	}
	if m.Masked()["yield"] != 3 || m.Masked()["parity"] != 1 || m.Total() != 4 {
		t.Fatalf("unexpected counts %v", m.Masked())
	}
}

func TestMaskInfiniteOnly(t *testing.T) {
	f := makeFrame()
	m := &Mask{Columns: []string{"yield", "note", "absent"}, Infinite: true}
	if _, err := m.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	col, _ := f.ColumnByName("yield")
	if col.IsNull(1) {
		t.Fatal("negative value masked without Negative")
	}
	if !col.IsNull(2) || !col.IsNull(3) {
		t.Fatal("infinities should be masked")
	}
	col, _ = f.ColumnByName("parity")
	if col.IsNull(0) {
		t.Fatal("column outside the selection was touched")
	}
}
