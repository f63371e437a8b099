package ecpps

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Shared test components. Names are the stable store tokens.

type Position struct {
	X, Y float64
}

func (Position) Name() string { return "position" }

type Velocity struct {
	X, Y float64
}

func (Velocity) Name() string { return "velocity" }

type Health struct {
	Current, Max int
}

func (Health) Name() string { return "health" }

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(WithLogLevel(zerolog.Disabled))
	if err != nil {
		t.Fatalf("Failed to create world: %v", err)
	}
	return w
}

func TestStoreInsertGetRoundTrip(t *testing.T) {
	st := newStore[Position]("position", 0, nil)

	want := Position{X: 3, Y: 7}
	if err := st.Insert(4, want); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	got, err := st.Get(4)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if *got != want {
		t.Errorf("Get returned %+v, want %+v", *got, want)
	}

	// Mutation through the pointer must stick.
	got.X = 9
	again, _ := st.Get(4)
	if again.X != 9 {
		t.Errorf("Mutation through Get pointer lost: got %+v", *again)
	}
}

func TestStoreDoubleInsert(t *testing.T) {
	st := newStore[Position]("position", 0, nil)

	if err := st.Insert(1, Position{X: 1}); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	err := st.Insert(1, Position{X: 2})
	if !eris.Is(err, ErrComponentAlreadyOnEntity) {
		t.Fatalf("Second insert error = %v, want ErrComponentAlreadyOnEntity", err)
	}

	// The failed insert must not have touched the stored value.
	got, _ := st.Get(1)
	if got.X != 1 {
		t.Errorf("Stored value changed by failed insert: %+v", *got)
	}
}

func TestStoreRemoveMissing(t *testing.T) {
	st := newStore[Position]("position", 0, nil)

	if err := st.Remove(3); !eris.Is(err, ErrComponentNotFound) {
		t.Fatalf("Remove error = %v, want ErrComponentNotFound", err)
	}
	if _, err := st.Get(3); !eris.Is(err, ErrComponentNotFound) {
		t.Fatalf("Get error = %v, want ErrComponentNotFound", err)
	}
}

// TestStoreRemovalRenumbering pins the removal policy: the dense array is
// shifted rather than swap-compacted, so survivors keep their relative
// order and every sparse slot stays valid.
func TestStoreRemovalRenumbering(t *testing.T) {
	tests := []struct {
		name      string
		remove    EntityID
		wantOrder []EntityID
	}{
		{name: "remove head", remove: 10, wantOrder: []EntityID{20, 30, 40}},
		{name: "remove middle", remove: 20, wantOrder: []EntityID{10, 30, 40}},
		{name: "remove tail", remove: 40, wantOrder: []EntityID{10, 20, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStore[Health]("health", 0, nil)
			for _, id := range []EntityID{10, 20, 30, 40} {
				if err := st.Insert(id, Health{Current: int(id)}); err != nil {
					t.Fatalf("Insert failed: %v", err)
				}
			}

			if err := st.Remove(tt.remove); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
			if st.Len() != len(tt.wantOrder) {
				t.Fatalf("Len = %d, want %d", st.Len(), len(tt.wantOrder))
			}

			var gotOrder []EntityID
			for id, h := range st.All() {
				gotOrder = append(gotOrder, id)
				// Each survivor keeps its original logical value.
				if h.Current != int(id) {
					t.Errorf("Entity %d carries value %d", id, h.Current)
				}
			}
			for i, id := range tt.wantOrder {
				if gotOrder[i] != id {
					t.Fatalf("Iteration order = %v, want %v", gotOrder, tt.wantOrder)
				}
			}

			// Every surviving sparse entry must point at its owner.
			for _, id := range tt.wantOrder {
				got, err := st.Get(id)
				if err != nil {
					t.Fatalf("Get(%d) after removal failed: %v", id, err)
				}
				if got.Current != int(id) {
					t.Errorf("Get(%d) = %+v after renumbering", id, *got)
				}
			}
		})
	}
}

func TestStoreLockedDuringIteration(t *testing.T) {
	st := newStore[Position]("position", 0, nil)
	for i := EntityID(0); i < 3; i++ {
		if err := st.Insert(i, Position{X: float64(i)}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	iterated := 0
	for id := range st.All() {
		iterated++
		if err := st.Insert(99, Position{}); !eris.Is(err, ErrStoreLocked) {
			t.Fatalf("Insert during iteration error = %v, want ErrStoreLocked", err)
		}
		if err := st.Remove(id); !eris.Is(err, ErrStoreLocked) {
			t.Fatalf("Remove during iteration error = %v, want ErrStoreLocked", err)
		}
	}
	if iterated != 3 {
		t.Fatalf("Iterated %d entities, want 3", iterated)
	}

	// The lock must release once iteration ends.
	if err := st.Insert(99, Position{}); err != nil {
		t.Fatalf("Insert after iteration failed: %v", err)
	}
}

func TestStoreCorruptionPanics(t *testing.T) {
	st := newStore[Position]("position", 0, nil)
	if err := st.Insert(1, Position{}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// Break the sparse index on purpose.
	st.sparse[1] = 5

	defer func() {
		if recover() == nil {
			t.Fatal("Get on a corrupted store did not panic")
		}
	}()
	_, _ = st.Get(1)
}

func BenchmarkStoreInsert(b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		st := newStore[Position]("position", 0, nil)
		b.StartTimer()
		for i := 0; i < 1000; i++ {
			_ = st.Insert(EntityID(i), Position{X: float64(i)})
		}
	}
}

func BenchmarkStoreIterate(b *testing.B) {
	st := newStore[Position]("position", 0, nil)
	for i := 0; i < 1000; i++ {
		_ = st.Insert(EntityID(i), Position{X: float64(i)})
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for _, pos := range st.All() {
			pos.X++
		}
	}
}
