package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoopRunsWorkSerially(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := New(nil)
	l.Start(ctx)

	var inFlight, maxInFlight int32
	counter := 0
	done := make(chan struct{})
	for i := 0; i < 50; i++ {
		go func() {
			_ = l.Do(ctx, func() {
				n := atomic.AddInt32(&inFlight, 1)
				if n > atomic.LoadInt32(&maxInFlight) {
					atomic.StoreInt32(&maxInFlight, n)
				}
				counter++
				atomic.AddInt32(&inFlight, -1)
			})
			done <- struct{}{}
		}()
	}
	for i := 0; i < 50; i++ {
		<-done
	}
	if maxInFlight != 1 {
		t.Fatalf("expected serial execution, saw %d concurrent", maxInFlight)
	}
	if counter != 50 {
		t.Fatalf("expected 50 runs, got %d", counter)
	}
}

func TestLoopAfterFuncRunsOnLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := New(nil)
	l.Start(ctx)

	fired := make(chan struct{})
	l.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for timer")
	}
}

func TestLoopDoRepanicsOnCaller(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := New(nil)
	l.Start(ctx)

	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Fatalf("expected re-raised panic, got %v", r)
			}
		}()
		_ = l.Do(ctx, func() { panic("boom") })
	}()

	ran := false
	if err := l.Do(ctx, func() { ran = true }); err != nil || !ran {
		t.Fatalf("loop should keep running after a panic: err=%v ran=%v", err, ran)
	}
}

func TestLoopStoppedRejectsWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := New(nil)
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	l.AfterFunc(time.Hour, func() {})
	cancel()
	<-errCh

	if err := l.Post(func() {}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if l.Pending() != 0 {
		t.Fatalf("expected timers stopped, got %d pending", l.Pending())
	}
}

func TestManualFiresInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(10*time.Millisecond, func() {
		order = append(order, "b")
		m.AfterFunc(5*time.Millisecond, func() { order = append(order, "b2") })
	})

	m.Advance(9 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("nothing should fire before its deadline, got %v", order)
	}
	m.Advance(11 * time.Millisecond)
	if got := len(order); got != 3 || order[0] != "a" || order[1] != "b" || order[2] != "b2" {
		t.Fatalf("unexpected order %v", order)
	}
	if m.Now() != 20*time.Millisecond {
		t.Fatalf("expected clock at 20ms, got %v", m.Now())
	}
	m.Advance(time.Second)
	if order[len(order)-1] != "c" || m.Pending() != 0 {
		t.Fatalf("expected c last and nothing pending, got %v", order)
	}
}

func TestDeferredDrains(t *testing.T) {
	var d Deferred
	d.AfterFunc(time.Second, func() {})
	d.AfterFunc(2*time.Second, func() {})
	got := d.Drain()
	if len(got) != 2 || got[0].Delay != time.Second {
		t.Fatalf("unexpected timers %#v", got)
	}
	if len(d.Drain()) != 0 {
		t.Fatalf("drain should forget timers")
	}
}
