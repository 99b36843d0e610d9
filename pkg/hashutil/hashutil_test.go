package hashutil

import "testing"

func TestBuilderHashDeterministic(t *testing.T) {
	b := NewBuilder()

	h1 := b.Hash("user:1234")
	h2 := b.Hash("user:1234")

	if h1 != h2 {
		t.Errorf("Hash() not deterministic for the same builder: %v != %v", h1, h2)
	}
}

func TestBuilderHashDiffersAcrossBuilders(t *testing.T) {
	a := NewBuilder()
	b := NewBuilder()

	// Not guaranteed mathematically, but collision across independent
	// 64-bit seeds for a fixed short string is astronomically unlikely;
	// a failure here would indicate the seed isn't actually varying.
	if a.Hash("probe-key") == b.Hash("probe-key") {
		t.Error("two independently seeded builders produced the same hash; seed may not be random")
	}
}

func TestBuilderCombineOrderSensitive(t *testing.T) {
	b := NewBuilder()

	h1 := b.Hash("node-a")
	h2 := b.Hash("node-b")

	if b.Combine(h1, h2) == b.Combine(h2, h1) {
		t.Error("Combine() must be order-sensitive")
	}
}

func TestBuilderCombineDeterministic(t *testing.T) {
	b := NewBuilder()

	h1 := b.Hash("replica")
	h2 := b.Hash(3)

	if b.Combine(h1, h2) != b.Combine(h1, h2) {
		t.Error("Combine() must be deterministic for a fixed builder")
	}
}

func TestBuilderHashNonStringValues(t *testing.T) {
	b := NewBuilder()

	if b.Hash(42) != b.Hash(42) {
		t.Error("Hash() of an int must be deterministic")
	}
	if b.Hash(uint64(7)) == b.Hash(uint64(8)) {
		t.Error("Hash() of distinct ints collided; extremely unlikely")
	}
}
