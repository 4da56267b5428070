package dataset_test

import (
	"context"
	"errors"
	"testing"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
	imp "github.com/wdm0006/dairyclean/pkg/transform/impute"
	outl "github.com/wdm0006/dairyclean/pkg/transform/outliers"
)

func TestPipeline(t *testing.T) {
	s := ds.Schema{Columns: []ds.ColumnSchema{{Name: "x", Type: ds.KindFloat, Nullable: true}, {Name: "s", Type: ds.KindString, Nullable: true}}}
	f := ds.NewFrame(s)
	for i := 0; i < 3; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "x", 1.0)
	_ = f.SetCell(1, "x", -2.0)
	_ = f.SetCell(0, "s", "a")
	// row 2 left nulls

	p := ds.NewPipeline().Add(&outl.Mask{Negative: true}).Add(&imp.Median{})
	out, err := p.Run(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	colX, _ := out.ColumnByName("x")
	fx := colX.(*ds.FloatColumn)
	for i := 0; i < fx.Len(); i++ {
		if v, ok := fx.Get(i); !ok || v != 1 {
			t.Fatalf("row %d = %v,%v; want 1", i, v, ok)
		}
	}
	if len(p.Steps()) != 2 {
		t.Fatalf("steps = %d", len(p.Steps()))
	}
}

type failing struct{}

func (failing) Name() string { return "failing" }
func (failing) Apply(context.Context, *ds.Frame) (*ds.Frame, error) {
	return nil, errors.New("boom")
}

func TestPipelineStopsOnError(t *testing.T) {
	f, _ := ds.NewFrameFromColumns(0)
	_, err := ds.NewPipeline().Add(failing{}).Run(context.Background(), f)
	if err == nil || err.Error() != "failing: boom" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestPipelineHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f, _ := ds.NewFrameFromColumns(0)
	if _, err := ds.NewPipeline().Add(failing{}).Run(ctx, f); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
