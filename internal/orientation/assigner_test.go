package orientation_test

import (
	"slices"
	"testing"

	"github.com/randomtoy/tarotteller/internal/domain"
	"github.com/randomtoy/tarotteller/internal/orientation"
)

type sequenceRNG struct {
	values []int
	idx    int
}

func (r *sequenceRNG) IntN(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

func seed(v int64) *int64 { return &v }

func TestNextOrientations_SeededIsPure(t *testing.T) {
	a := orientation.New()
	b := orientation.New(orientation.WithSeed(5))

	first := a.NextOrientations(12, seed(99))
	_ = a.NextOrientations(30, nil) // advance own stream
	second := a.NextOrientations(12, seed(99))
	third := b.NextOrientations(12, seed(99))

	if !slices.Equal(first, second) || !slices.Equal(first, third) {
		t.Errorf("seeded orientations differ: %v %v %v", first, second, third)
	}
}

func TestNextOrientations_SeededLeavesOwnStream(t *testing.T) {
	a := orientation.New(orientation.WithSeed(1))
	b := orientation.New(orientation.WithSeed(1))

	_ = a.NextOrientations(10, seed(42))

	if !slices.Equal(a.NextOrientations(16, nil), b.NextOrientations(16, nil)) {
		t.Error("seeded call perturbed the assigner's own stream")
	}
}

func TestNextOrientations_PrefixStable(t *testing.T) {
	a := orientation.New()
	short := a.NextOrientations(3, seed(21))
	long := a.NextOrientations(8, seed(21))
	if !slices.Equal(short, long[:3]) {
		t.Errorf("prefix mismatch: %v vs %v", short, long[:3])
	}
}

func TestNextOrientations_Scripted(t *testing.T) {
	rng := &sequenceRNG{values: []int{0, 1, 0}}
	a := orientation.New(orientation.WithRNG(func(int64) domain.RNG { return rng }), orientation.WithSeed(0))

	got := a.NextOrientations(3, nil)
	want := []bool{false, true, false}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNextOrientations_NoReversed(t *testing.T) {
	a := orientation.New(orientation.WithoutReversed())
	if a.AllowReversed() {
		t.Fatal("expected no-reversed mode")
	}
	for _, s := range []int64{1, 2, 3, 99} {
		for i, r := range a.NextOrientations(20, seed(s)) {
			if r {
				t.Errorf("seed %d, index %d: reversed in no-reversed mode", s, i)
			}
		}
	}
}

func TestNextOrientations_NoReversedStillAdvancesStream(t *testing.T) {
	a := orientation.New(orientation.WithSeed(3))
	b := orientation.New(orientation.WithSeed(3))

	a.SetAllowReversed(false)
	_ = a.NextOrientations(5, nil)
	a.SetAllowReversed(true)
	_ = b.NextOrientations(5, nil)

	if !slices.Equal(a.NextOrientations(10, nil), b.NextOrientations(10, nil)) {
		t.Error("no-reversed mode did not consume the stream")
	}
}

func TestNextOrientations_NonPositive(t *testing.T) {
	a := orientation.New()
	if got := a.NextOrientations(0, nil); len(got) != 0 {
		t.Errorf("expected no flags, got %v", got)
	}
}

func TestNextOrientations_ProducesBothOutcomes(t *testing.T) {
	a := orientation.New()
	flags := a.NextOrientations(200, seed(7))
	var reversed int
	for _, r := range flags {
		if r {
			reversed++
		}
	}
	if reversed == 0 || reversed == len(flags) {
		t.Errorf("200 flips gave %d reversed", reversed)
	}
}

func TestStream(t *testing.T) {
	a := orientation.New()

	var fromStream []bool
	for r := range a.Stream(99) {
		fromStream = append(fromStream, r)
		if len(fromStream) == 10 {
			break
		}
	}
	if !slices.Equal(fromStream, a.NextOrientations(10, seed(99))) {
		t.Error("Stream and NextOrientations disagree for the same seed")
	}
}

// alwaysOne reports every card reversed.
type alwaysOne struct{}

func (alwaysOne) IntN(int) int { return 1 }

func TestNew_OptionOrderIrrelevant(t *testing.T) {
	factory := func(int64) domain.RNG { return alwaysOne{} }
	seedFirst := orientation.New(orientation.WithSeed(1), orientation.WithRNG(factory))
	rngFirst := orientation.New(orientation.WithRNG(factory), orientation.WithSeed(1))

	want := []bool{true, true, true, true, true, true, true, true}
	if got := seedFirst.NextOrientations(8, nil); !slices.Equal(got, want) {
		t.Errorf("WithSeed before WithRNG: got %v, want %v", got, want)
	}
	if got := rngFirst.NextOrientations(8, nil); !slices.Equal(got, want) {
		t.Errorf("WithRNG before WithSeed: got %v, want %v", got, want)
	}

	a := orientation.New(orientation.WithSeed(3), orientation.WithoutReversed())
	b := orientation.New(orientation.WithoutReversed(), orientation.WithSeed(3))
	if a.AllowReversed() || b.AllowReversed() {
		t.Error("WithoutReversed lost depending on option order")
	}
}
