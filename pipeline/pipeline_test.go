package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFromSlice_Collect(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestFrom_Iterator(t *testing.T) {
	p := From[string](&sliceIter[string]{items: []string{"a", "b"}})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !strSliceEqual(got, []string{"a", "b"}) {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestMap_TypeConversion(t *testing.T) {
	strs := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (string, error) {
		return fmt.Sprintf("#%d", n), nil
	})
	got, err := Collect(context.Background(), strs)
	if err != nil {
		t.Fatal(err)
	}
	if !strSliceEqual(got, []string{"#1", "#2", "#3"}) {
		t.Errorf("got %v", got)
	}
}

func TestMap_Error(t *testing.T) {
	fail := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("bad value")
		}
		return n, nil
	})
	got, err := Collect(context.Background(), fail)
	if err == nil {
		t.Fatal("expected error")
	}
	if !intSliceEqual(got, []int{1}) {
		t.Errorf("expected [1] before error, got %v", got)
	}
}

func TestFilter(t *testing.T) {
	odd := Filter(FromSlice([]int{1, 2, 3, 4, 5}), func(n int) bool { return n%2 == 1 })
	got, err := Collect(context.Background(), odd)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 3, 5}) {
		t.Errorf("got %v, want [1 3 5]", got)
	}
}

func TestTake(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{0, nil},
		{2, []int{1, 2}},
		{10, []int{1, 2, 3}},
	}
	for _, tc := range tests {
		got, err := Collect(context.Background(), Take(FromSlice([]int{1, 2, 3}), tc.n))
		if err != nil {
			t.Fatal(err)
		}
		if !intSliceEqual(got, tc.want) {
			t.Errorf("Take(%d): got %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestTap_Error(t *testing.T) {
	var tapped []int
	failing := Tap(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		tapped = append(tapped, n)
		if n == 2 {
			return errors.New("tap failed")
		}
		return nil
	})
	_, err := Collect(context.Background(), failing)
	if err == nil || !strings.Contains(err.Error(), "tap failed") {
		t.Errorf("expected tap error, got %v", err)
	}
	if !intSliceEqual(tapped, []int{1, 2}) {
		t.Errorf("tap should stop at the failing value, got %v", tapped)
	}
}

func TestReduce_Empty(t *testing.T) {
	sum := Reduce(FromSlice([]int{}), 42, func(acc, n int) int { return acc + n })
	got, err := Collect(context.Background(), sum)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{42}) {
		t.Errorf("expected [42] (initial value), got %v", got)
	}
}

func TestConcat(t *testing.T) {
	combined := Concat(FromSlice([]int{1, 2}), FromSlice([]int{}), FromSlice([]int{3}))
	got, err := Collect(context.Background(), combined)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestDrain_SinkError(t *testing.T) {
	sinkErr := errors.New("sink full")
	var seen []int
	err := Drain(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		seen = append(seen, n)
		if n == 2 {
			return sinkErr
		}
		return nil
	}).Run(context.Background())
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if !intSliceEqual(seen, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", seen)
	}
}

func TestForEach(t *testing.T) {
	var sum int
	err := ForEach(context.Background(), FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		sum += n
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if sum != 6 {
		t.Errorf("sum = %d, want 6", sum)
	}
}

func TestIter(t *testing.T) {
	ctx := context.Background()
	iter := FromSlice([]int{1, 2}).Iter(ctx)
	defer iter.Close()

	for _, want := range []int{1, 2} {
		v, ok, err := iter.Next(ctx)
		if err != nil || !ok || v != want {
			t.Errorf("Next: val=%d ok=%v err=%v, want %d", v, ok, err, want)
		}
	}
	if _, ok, err := iter.Next(ctx); err != nil || ok {
		t.Errorf("third Next should be exhausted: ok=%v err=%v", ok, err)
	}
}

func TestChained_Pipeline(t *testing.T) {
	var tapped []int
	p := FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	doubled := Map(p, func(_ context.Context, n int) (int, error) { return n * 2, nil })
	quads := Filter(doubled, func(n int) bool { return n%4 == 0 })
	observed := Tap(quads, func(_ context.Context, n int) error {
		tapped = append(tapped, n)
		return nil
	})
	sum := Reduce(observed, 0, func(acc, n int) int { return acc + n })

	got, err := Collect(context.Background(), sum)
	if err != nil {
		t.Fatal(err)
	}
	// 2,4,...,20 filtered to 4,8,12,16,20
	if !intSliceEqual(got, []int{60}) {
		t.Errorf("expected [60], got %v", got)
	}
	if !intSliceEqual(tapped, []int{4, 8, 12, 16, 20}) {
		t.Errorf("tapped = %v, want [4 8 12 16 20]", tapped)
	}
}

// --- helpers ---

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func strSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
