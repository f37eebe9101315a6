package rshare_test

import (
	"errors"
	"testing"

	"github.com/gordian-engine/rill"
	"github.com/gordian-engine/rill/internal/rtest"
	"github.com/gordian-engine/rill/rilltest"
	"github.com/gordian-engine/rill/rpubsub"
	"github.com/gordian-engine/rill/rshare"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestHub_traceSpan(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	subj := rpubsub.NewSubject[int]()
	h := rshare.NewHub[int](rtest.NewLogger(t), subj, rshare.Config{
		Capacity:       2,
		TracerProvider: tp,
	})

	h.Subscribe(rilltest.NewRecorder[int](rill.Unbounded))
	require.NoError(t, subj.Send(1))
	h.Subscribe(rilltest.NewRecorder[int](rill.Unbounded))

	// Still open until the upstream terminates.
	require.Empty(t, sr.Ended())

	boom := errors.New("boom")
	require.NoError(t, subj.Fail(boom))

	ended := sr.Ended()
	require.Len(t, ended, 1)

	span := ended[0]
	require.Equal(t, "share replay upstream", span.Name())
	require.Equal(t, codes.Error, span.Status().Code)
	require.Equal(t, "boom", span.Status().Description)

	var names []string
	for _, e := range span.Events() {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"subscribe", "subscribe", "upstream terminated"}, names)

	// Subscribing after termination starts no new span.
	h.Subscribe(rilltest.NewRecorder[int](rill.Unbounded))
	require.Len(t, sr.Started(), 1)
}
