package handscript

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPreviewEngine_Generate(t *testing.T) {
	t.Parallel()

	e := NewPreviewEngine()
	req := StrokeRequest{Text: "Hi, you.", Style: 2, Bias: 0.5}

	first, err := e.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := e.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(first) == 0 {
		t.Fatal("Generate() returned no points")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Generate() is not deterministic")
	}
	if !first[len(first)-1].PenUp {
		t.Error("last point should lift the pen")
	}

	var descends bool
	for _, p := range first {
		if p.Y < 0 {
			descends = true
		}
	}
	if !descends {
		t.Error("'y' should reach below the baseline")
	}
}

func TestPreviewEngine_StyleChangesStrokes(t *testing.T) {
	t.Parallel()

	e := NewPreviewEngine()
	a, _ := e.Generate(context.Background(), StrokeRequest{Text: "abc", Style: 0})
	b, _ := e.Generate(context.Background(), StrokeRequest{Text: "abc", Style: 1})
	if reflect.DeepEqual(a, b) {
		t.Error("different styles produced identical strokes")
	}
}

func TestPreviewEngine_SpacesOnly(t *testing.T) {
	t.Parallel()

	points, err := NewPreviewEngine().Generate(context.Background(), StrokeRequest{Text: "   "})
	if err != nil || len(points) != 0 {
		t.Errorf("Generate(spaces) = %v, %v; want no points", points, err)
	}
}

func TestPreviewEngine_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPreviewEngine().Generate(ctx, StrokeRequest{Text: "a"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestSerialEngine_OneRequestAtATime(t *testing.T) {
	t.Parallel()

	var active, peak int32
	inner := StrokeGeneratorFunc(func(ctx context.Context, req StrokeRequest) ([]Point, error) {
		n := atomic.AddInt32(&active, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&active, -1)
		return []Point{{X: 1, PenUp: true}}, nil
	})

	e := NewSerialEngine(inner)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.Generate(context.Background(), StrokeRequest{Text: "x"}); err != nil {
				t.Errorf("Generate() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if peak != 1 {
		t.Errorf("peak concurrency = %d, want 1", peak)
	}
}

func TestSerialEngine_CanceledWhileWaiting(t *testing.T) {
	t.Parallel()

	called := false
	e := NewSerialEngine(StrokeGeneratorFunc(func(context.Context, StrokeRequest) ([]Point, error) {
		called = true
		return nil, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Generate(ctx, StrokeRequest{Text: "x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("inner engine called with a canceled context")
	}
}
