package ring

import (
	"errors"
	"fmt"
	"testing"
)

func TestRendezvousRingEmpty(t *testing.T) {
	r := NewRendezvousRing[string]()
	if !r.IsEmpty() {
		t.Error("IsEmpty() = false for a freshly constructed ring")
	}
	_, err := r.GetNode("k")
	if !errors.Is(err, ErrEmptyRing) {
		t.Errorf("GetNode() error = %v, want ErrEmptyRing", err)
	}
}

func TestRendezvousRingBasicDistribution(t *testing.T) {
	r := NewRendezvousRing[string]()
	for _, id := range []string{"a", "b", "c"} {
		r.InsertNode(id, 10)
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}

	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		id, err := r.GetNode(fmt.Sprintf("point-%d", i))
		if err != nil {
			t.Fatalf("GetNode() error = %v", err)
		}
		counts[id]++
	}
	if len(counts) != 3 {
		t.Errorf("distribution touched %d nodes, want 3", len(counts))
	}
}

func TestRendezvousRingInsertSameIDReplacesReplicas(t *testing.T) {
	r := NewRendezvousRing[string]()
	r.InsertNode("a", 10)
	r.InsertNode("a", 3)

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if len(r.replicas["a"]) != 3 {
		t.Errorf("replica count after re-insert = %d, want 3", len(r.replicas["a"]))
	}
}

func TestRendezvousRingRemoveUnknownIsNoop(t *testing.T) {
	r := NewRendezvousRing[string]()
	r.InsertNode("a", 10)
	r.RemoveNode("nonexistent")
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after removing an unknown id", r.Len())
	}
}

func TestRendezvousRingRemoveThenEmpty(t *testing.T) {
	r := NewRendezvousRing[string]()
	r.InsertNode("a", 10)
	r.RemoveNode("a")
	if !r.IsEmpty() {
		t.Error("IsEmpty() = false after removing the only node")
	}
}

func TestRendezvousRingDeterministic(t *testing.T) {
	r := NewRendezvousRing[string]()
	for _, id := range []string{"a", "b", "c"} {
		r.InsertNode(id, 5)
	}
	for i := 0; i < 50; i++ {
		p := fmt.Sprintf("point-%d", i)
		got1, _ := r.GetNode(p)
		got2, _ := r.GetNode(p)
		if got1 != got2 {
			t.Errorf("GetNode(%q) not deterministic: %v != %v", p, got1, got2)
		}
	}
}

func TestRendezvousRingTieBreaksByGreaterID(t *testing.T) {
	r := NewRendezvousRing[string]()
	r.InsertNode("a", 1)
	r.InsertNode("b", 1)

	// Force a tie by giving both nodes the exact same single replica
	// hash: GetNode must then break ties toward the greater ID.
	r.replicas["a"] = []uint64{42}
	r.replicas["b"] = []uint64{42}

	got, err := r.GetNode("anything")
	if err != nil {
		t.Fatalf("GetNode() error = %v", err)
	}
	if got != "b" {
		t.Errorf("GetNode() = %q, want %q on a tied score", got, "b")
	}
}
