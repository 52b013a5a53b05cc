package pipeline

import (
	"context"
	"io"

	"github.com/matzehuels/matrixrain/pkg/source"
)

// Source kinds reported to hooks and logs.
const (
	KindReader = "reader"
	KindScript = "script"
)

// Source produces lines for a run.
type Source struct {
	// Kind names the source in logs and hooks.
	Kind string

	// Feed submits lines to sink until the source is exhausted and
	// returns how many it read.
	Feed func(ctx context.Context, sink source.Sink) (int, error)
}

// FromReader rains the lines of r.
func FromReader(r io.Reader) Source {
	return Source{
		Kind: KindReader,
		Feed: func(ctx context.Context, sink source.Sink) (int, error) {
			return source.Scan(ctx, r, sink)
		},
	}
}

// FromScript rains the output of s.
func FromScript(s source.Script) Source {
	return Source{Kind: KindScript, Feed: s.Run}
}
