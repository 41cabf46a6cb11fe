package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	v := NoopVisualizeHooks{}
	v.OnIndexBuild(ctx, "graph-1", 10, time.Millisecond, nil)
	v.OnIndexReuse(ctx, "graph-1")
	v.OnLayoutStart(ctx, "spring", 3, 10)
	v.OnLayoutComplete(ctx, "spring", 3, time.Second, nil)
	v.OnValidationFailure(ctx, "colors", errors.New("bad color"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "figure")
	c.OnCacheMiss(ctx, "figure")
	c.OnCacheSet(ctx, "figure", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Visualize().(NoopVisualizeHooks); !ok {
		t.Error("Visualize() should return NoopVisualizeHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customVisualize := &testVisualizeHooks{}
	SetVisualizeHooks(customVisualize)
	if Visualize() != customVisualize {
		t.Error("SetVisualizeHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Visualize().(NoopVisualizeHooks); !ok {
		t.Error("Reset() should restore NoopVisualizeHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testVisualizeHooks{}
	SetVisualizeHooks(custom)
	SetVisualizeHooks(nil)

	if Visualize() != custom {
		t.Error("SetVisualizeHooks(nil) should be ignored")
	}

	Reset()
}

type testVisualizeHooks struct{ NoopVisualizeHooks }
type testCacheHooks struct{ NoopCacheHooks }
