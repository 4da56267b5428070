package dataset

import (
	"context"
	"fmt"

	"github.com/wdm0006/dairyclean/pkg/logger"
)

// Transform is a mutation or validation applied to a Frame.
type Transform interface {
	Name() string
	Apply(ctx context.Context, f *Frame) (*Frame, error)
}

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps []Transform
}

func NewPipeline() *Pipeline { return &Pipeline{} }

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// Steps returns the transforms in run order.
func (p *Pipeline) Steps() []Transform { return p.steps }

// Run applies each step in order. The logger in ctx receives one debug
// record per step.
func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, error) {
	log := logger.FromContext(ctx)
	var err error
	cur := f
	for _, t := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur, err = t.Apply(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
		rows, cols := cur.Shape()
		log.Debug("step done", "step", t.Name(), "rows", rows, "cols", cols)
	}
	return cur, nil
}
