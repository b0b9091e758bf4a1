package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	core "warehouse-quote/core/catalog"
	"warehouse-quote/internal/errors"
)

func TestLoadWithRetryRecovers(t *testing.T) {
	want := snapshotWithMinimum(100)
	down := errors.Unavailable("connection refused", fmt.Errorf("dial tcp"))
	src := &fakeSource{results: []fakeResult{{err: down}, {err: down}, {snap: want}}}
	holder := core.NewHolder(nil)

	got, err := LoadWithRetry(context.Background(), src, holder, 30*time.Second, nil)
	if err != nil {
		t.Fatalf("LoadWithRetry: %v", err)
	}
	if got != want || holder.Current() != want {
		t.Error("holder should carry the loaded snapshot")
	}
	if src.calls != 3 {
		t.Errorf("calls = %d, want 3", src.calls)
	}
}

func TestLoadWithRetryStopsOnPermanentError(t *testing.T) {
	bad := errors.Catalog("overlapping bands", nil)
	src := &fakeSource{results: []fakeResult{{err: bad}}}
	holder := core.NewHolder(nil)

	_, err := LoadWithRetry(context.Background(), src, holder, 30*time.Second, nil)
	if !errors.IsType(err, errors.TypeCatalog) {
		t.Fatalf("err = %v, want catalog error", err)
	}
	if src.calls != 1 {
		t.Errorf("calls = %d, want 1", src.calls)
	}
	if holder.Current() != nil {
		t.Error("holder should stay empty")
	}
}

func TestLoadWithRetryHonoursContext(t *testing.T) {
	down := errors.Unavailable("connection refused", nil)
	src := &fakeSource{results: []fakeResult{{err: down}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := LoadWithRetry(ctx, src, core.NewHolder(nil), time.Minute, nil); err == nil {
		t.Error("expected error after cancellation")
	}
}
