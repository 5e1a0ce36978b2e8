package window

import "testing"

func TestPoolNextIDPicksLowestUnused(t *testing.T) {
	p := NewPool()
	if got := p.NextID(); got != 1 {
		t.Fatalf("NextID() on an empty pool = %d, want 1", got)
	}

	p.Add(&Window{ID: 1})
	p.Add(&Window{ID: 2})
	if got := p.NextID(); got != 3 {
		t.Fatalf("NextID() with {1,2} taken = %d, want 3", got)
	}

	p.Remove(1)
	if got := p.NextID(); got != 1 {
		t.Fatalf("NextID() after freeing id 1 = %d, want 1 (lowest unused)", got)
	}
}

func TestPoolAllOrdersByID(t *testing.T) {
	p := NewPool()
	p.Add(&Window{ID: 3})
	p.Add(&Window{ID: 1})
	p.Add(&Window{ID: 2})

	all := p.All()
	if len(all) != 3 {
		t.Fatalf("All() len = %d, want 3", len(all))
	}
	for i, w := range all {
		if w.ID != i+1 {
			t.Fatalf("All()[%d].ID = %d, want %d", i, w.ID, i+1)
		}
	}
}

func TestPoolGetAndRemove(t *testing.T) {
	p := NewPool()
	w := &Window{ID: 5}
	p.Add(w)

	if got := p.Get(5); got != w {
		t.Fatalf("Get(5) = %v, want %v", got, w)
	}
	if got := p.Get(9); got != nil {
		t.Fatalf("Get(9) on an unknown id = %v, want nil", got)
	}

	p.Remove(5)
	if got := p.Get(5); got != nil {
		t.Fatalf("Get(5) after Remove(5) = %v, want nil", got)
	}
	if got := p.Len(); got != 0 {
		t.Fatalf("Len() after removing the only window = %d, want 0", got)
	}
}
