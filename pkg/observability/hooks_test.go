package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Scene hooks
	s := NoopSceneHooks{}
	s.OnRejected("shapeA", "box.left", "row", "OWNERSHIP_CONFLICT")
	s.OnBackfill("group", "translation.x")

	// Layout hooks
	l := NoopLayoutHooks{}
	l.OnPass(ctx, 1, true)
	l.OnConverged(ctx, 3, time.Millisecond, nil)

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLayoutStart(ctx, 100)
	p.OnLayoutComplete(ctx, 100, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/render")
	h.OnResponse(ctx, "POST", "/render", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Scene() should return NoopSceneHooks by default")
	}
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customScene := &testSceneHooks{}
	SetSceneHooks(customScene)
	if Scene() != customScene {
		t.Error("SetSceneHooks should set custom hooks")
	}

	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Reset() should restore NoopSceneHooks")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSceneHooks{}
	SetSceneHooks(custom)

	// Setting nil should be ignored
	SetSceneHooks(nil)

	if Scene() != custom {
		t.Error("SetSceneHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSceneHooks struct{ NoopSceneHooks }
type testLayoutHooks struct{ NoopLayoutHooks }
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
