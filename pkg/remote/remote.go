package remote

import (
	"context"

	"github.com/NvMustang/fomo-sub000/pkg/engine"
)

// Func adapts a plain function to the engine.Remote interface.
type Func func(ctx context.Context, m engine.Mutation) error

func (f Func) Submit(ctx context.Context, m engine.Mutation) error {
	return f(ctx, m)
}

// Discard accepts every mutation without persisting it. Useful when running
// fully offline.
var Discard = Func(func(context.Context, engine.Mutation) error { return nil })
