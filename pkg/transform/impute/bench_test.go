package impute

import (
	"context"
	"testing"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
)

func makeLargeFloatFrame(n int) *ds.Frame {
	c := ds.NewFloatColumn("x", n)
	for i := 0; i < n; i += 2 {
		c.Set(i, float64(i%10))
	}
	f, _ := ds.NewFrameFromColumns(n, c)
	return f
}

func BenchmarkImputeMedian(b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		f := makeLargeFloatFrame(10000)
		b.StartTimer()
		if _, err := (&Median{}).Apply(context.Background(), f); err != nil {
			b.Fatal(err)
		}
	}
}
