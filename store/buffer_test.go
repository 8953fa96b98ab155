package store

import "testing"

func TestRingZeroPadUnderfilled(t *testing.T) {
	r := newRing(5)
	r.push(50)
	r.push(55)
	got := r.snapshot()
	want := []float64{0, 0, 0, 50, 55}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRingFullSlidesWindow(t *testing.T) {
	r := newRing(3)
	r.push(1)
	r.push(2)
	r.push(3)
	r.push(4)
	got := r.snapshot()
	want := []float64{2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRingGrowPreservesSamples(t *testing.T) {
	r := newRing(2)
	r.push(10)
	r.push(20)
	r.grow(4)
	got := r.snapshot()
	want := []float64{0, 0, 10, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
