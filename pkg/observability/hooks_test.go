package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingHooks struct {
	queries  []string
	resolved []int
	errs     []error
}

func (r *recordingHooks) OnQueryStart(_ context.Context, dir string) {
	r.queries = append(r.queries, dir)
}

func (r *recordingHooks) OnQueryComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	r.errs = append(r.errs, err)
}

func (r *recordingHooks) OnResolveComplete(_ context.Context, _ string, paths int, _ time.Duration, _ error) {
	r.resolved = append(r.resolved, paths)
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	h := Resolution()
	if _, ok := h.(NoopResolutionHooks); !ok {
		t.Fatalf("expected NoopResolutionHooks, got %T", h)
	}

	// No-op hooks must not panic.
	ctx := context.Background()
	h.OnQueryStart(ctx, "/tmp/ws")
	h.OnQueryComplete(ctx, "/tmp/ws", 42, time.Millisecond, nil)
	h.OnResolveComplete(ctx, "/tmp/ws", 3, time.Millisecond, errors.New("boom"))
}

func TestSetResolutionHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetResolutionHooks(rec)

	ctx := context.Background()
	Resolution().OnQueryStart(ctx, "/tmp/a")
	Resolution().OnQueryComplete(ctx, "/tmp/a", 10, time.Millisecond, nil)
	Resolution().OnResolveComplete(ctx, "/tmp/a", 7, time.Millisecond, nil)

	if len(rec.queries) != 1 || rec.queries[0] != "/tmp/a" {
		t.Errorf("queries = %v, want [/tmp/a]", rec.queries)
	}
	if len(rec.resolved) != 1 || rec.resolved[0] != 7 {
		t.Errorf("resolved = %v, want [7]", rec.resolved)
	}
}

func TestSetNilRestoresNoop(t *testing.T) {
	t.Cleanup(Reset)

	SetResolutionHooks(&recordingHooks{})
	SetResolutionHooks(nil)
	if _, ok := Resolution().(NoopResolutionHooks); !ok {
		t.Fatalf("expected NoopResolutionHooks after SetResolutionHooks(nil), got %T", Resolution())
	}
}

func TestResetRestoresNoop(t *testing.T) {
	SetResolutionHooks(&recordingHooks{})
	Reset()
	if _, ok := Resolution().(NoopResolutionHooks); !ok {
		t.Fatalf("expected NoopResolutionHooks after Reset, got %T", Resolution())
	}
}
