package columns

import (
	"context"

	ds "github.com/wdm0006/dairyclean/pkg/dataset"
)

// DropEmpty removes numeric columns in which every value is null.
// Non-numeric columns are never dropped.
type DropEmpty struct {
	Exclude []string

	dropped []string
}

func (t *DropEmpty) Name() string { return "drop_empty_numeric" }

// Dropped lists the columns removed by the last Apply, in frame order.
func (t *DropEmpty) Dropped() []string { return t.dropped }

func (t *DropEmpty) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	skip := make(map[string]struct{}, len(t.Exclude))
	for _, n := range t.Exclude {
		skip[n] = struct{}{}
	}
	t.dropped = []string{}
	for _, c := range f.Columns() {
		if _, ok := skip[c.Name()]; ok || !c.Kind().IsNumeric() {
			continue
		}
		if ds.AllNull(c) {
			t.dropped = append(t.dropped, c.Name())
		}
	}
	if len(t.dropped) == 0 {
		return f, nil
	}
	return f.Drop(t.dropped...), nil
}
