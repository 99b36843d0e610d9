package ring

import (
	"errors"
	"testing"

	"github.com/o-tero/hashring/pkg/hashutil"
)

func TestJumpRingRejectsZeroBuckets(t *testing.T) {
	_, err := NewJumpRing(0)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewJumpRing(0) error = %v, want ErrInvalidConfig", err)
	}
}

func TestJumpRingRange(t *testing.T) {
	r, err := NewJumpRing(10)
	if err != nil {
		t.Fatalf("NewJumpRing() error = %v", err)
	}

	for k := uint64(0); k < 5000; k++ {
		b, err := r.GetNode(k)
		if err != nil {
			t.Fatalf("GetNode() error = %v", err)
		}
		if b >= 10 {
			t.Errorf("GetNode(%d) = %d, want < 10", k, b)
		}
	}
}

func TestJumpRingDeterministicAcrossConstructions(t *testing.T) {
	builder := hashutil.NewBuilder()

	r1, err := NewJumpRingWithHasher(builder, 10)
	if err != nil {
		t.Fatalf("NewJumpRingWithHasher() error = %v", err)
	}
	r2, err := NewJumpRingWithHasher(builder, 10)
	if err != nil {
		t.Fatalf("NewJumpRingWithHasher() error = %v", err)
	}

	got1, _ := r1.GetNode(uint64(42))
	got2, _ := r2.GetNode(uint64(42))
	if got1 != got2 {
		t.Errorf("two rings built from the same builder disagree: %d != %d", got1, got2)
	}
	if got1 >= 10 {
		t.Errorf("GetNode(42) = %d, want < 10", got1)
	}
}

func TestJumpRingMinorityChurnUnderGrowth(t *testing.T) {
	builder := hashutil.NewBuilder()
	const n = 50
	const samples = 10000

	before, err := NewJumpRingWithHasher(builder, n)
	if err != nil {
		t.Fatalf("NewJumpRingWithHasher() error = %v", err)
	}
	after, err := NewJumpRingWithHasher(builder, n+1)
	if err != nil {
		t.Fatalf("NewJumpRingWithHasher() error = %v", err)
	}

	changed := 0
	for k := uint64(0); k < samples; k++ {
		b1, _ := before.GetNode(k)
		b2, _ := after.GetNode(k)
		if b1 != b2 {
			changed++
		}
	}

	fraction := float64(changed) / float64(samples)
	expected := 1.0 / float64(n+1)
	if fraction > expected+0.05 {
		t.Errorf("growing from %d to %d buckets remapped %.4f of keys, want <= %.4f", n, n+1, fraction, expected+0.05)
	}
}

func TestJumpRingNodesReportsConfiguredCount(t *testing.T) {
	r, err := NewJumpRing(7)
	if err != nil {
		t.Fatalf("NewJumpRing() error = %v", err)
	}
	if r.Nodes() != 7 {
		t.Errorf("Nodes() = %d, want 7", r.Nodes())
	}
	if r.Len() != 7 {
		t.Errorf("Len() = %d, want 7", r.Len())
	}
	if r.IsEmpty() {
		t.Error("IsEmpty() = true for a ring with 7 buckets")
	}
}
