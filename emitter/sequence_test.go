package emitter

import (
	"context"
	"testing"
	"time"

	"github.com/statewalker/statewalker-utils/bridge"
	"github.com/statewalker/statewalker-utils/logger"
)

func waitForListeners(t *testing.T, em *Emitter[int], event string, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for em.Listeners(event) != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d listeners on %q, got %d", n, event, em.Listeners(event))
		}
		time.Sleep(time.Millisecond)
	}
}

func TestIterate_SubscribesLazilyAndUnsubscribesOnClose(t *testing.T) {
	em := New[int]()
	seq := Iterate(em, "tick", bridge.WithLogger(logger.Nop()))

	if em.Listeners("tick") != 0 {
		t.Fatal("listener registered before the first pull")
	}

	got := make(chan int, 3)
	go func() {
		for range 3 {
			v, ok, err := seq.Next(context.Background())
			if err != nil || !ok {
				return
			}
			got <- v
		}
	}()

	waitForListeners(t, em, "tick", 1)
	for i := 1; i <= 3; i++ {
		em.Emit("tick", i)
	}
	for want := 1; want <= 3; want++ {
		select {
		case v := <-got:
			if v != want {
				t.Fatalf("expected %d, got %d", want, v)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for value")
		}
	}

	if err := seq.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if em.Listeners("tick") != 0 {
		t.Errorf("expected listener removed on close, got %d", em.Listeners("tick"))
	}
}

func TestObserve_DropsIntermediateValues(t *testing.T) {
	em := New[int]()
	seq := Observe(em, "level", bridge.WithLogger(logger.Nop()))
	defer func() { _ = seq.Close() }()

	first := make(chan int, 1)
	go func() {
		v, _, _ := seq.Next(context.Background())
		first <- v
	}()
	waitForListeners(t, em, "level", 1)
	em.Emit("level", 1)
	if v := <-first; v != 1 {
		t.Fatalf("expected 1, got %d", v)
	}

	for i := 2; i <= 5; i++ {
		em.Emit("level", i)
	}
	v, ok, err := seq.Next(context.Background())
	if err != nil || !ok || v != 5 {
		t.Errorf("expected latest value 5, got %d %v %v", v, ok, err)
	}
}
