package ecpps

import (
	"slices"
	"testing"
)

func TestQueryFiltering(t *testing.T) {
	w := newTestWorld(t)

	posOnly := w.CreateEntity()
	posVel := w.CreateEntity()
	all := w.CreateEntity()
	bare := w.CreateEntity()

	for _, err := range []error{
		AddComponent(w, posOnly, Position{}),
		AddComponent(w, posVel, Position{}),
		AddComponent(w, posVel, Velocity{}),
		AddComponent(w, all, Position{}),
		AddComponent(w, all, Velocity{}),
		AddComponent(w, all, Health{}),
	} {
		if err != nil {
			t.Fatalf("AddComponent failed: %v", err)
		}
	}

	tests := []struct {
		name string
		node QueryNode
		want []EntityID
	}{
		{
			name: "and single",
			node: NewQuery().And(Position{}),
			want: []EntityID{posOnly, posVel, all},
		},
		{
			name: "and pair",
			node: NewQuery().And(Position{}, Velocity{}),
			want: []EntityID{posVel, all},
		},
		{
			name: "or",
			node: NewQuery().Or(Velocity{}, Health{}),
			want: []EntityID{posVel, all},
		},
		{
			name: "not",
			node: NewQuery().Not(Velocity{}),
			want: []EntityID{posOnly, bare},
		},
		{
			name: "and with nested not",
			node: func() QueryNode {
				q := NewQuery()
				return q.And(Position{}, q.Not(Health{}))
			}(),
			want: []EntityID{posOnly, posVel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.EntitiesMatching(tt.node)
			if !slices.Equal(got, tt.want) {
				t.Errorf("EntitiesMatching = %v, want %v", got, tt.want)
			}
		})
	}
}

// A query against a component type nobody ever attached must match nothing
// rather than force a store into existence.
func TestQueryUnregisteredComponent(t *testing.T) {
	w := newTestWorld(t)

	e := w.CreateEntity()
	if err := AddComponent(w, e, Position{}); err != nil {
		t.Fatalf("AddComponent failed: %v", err)
	}

	if got := w.EntitiesMatching(NewQuery().And(Position{}, Health{})); len(got) != 0 {
		t.Errorf("EntitiesMatching = %v, want none", got)
	}
	if stores := w.RegisteredComponents(); len(stores) != 1 {
		t.Errorf("Query created a store: %d registered, want 1", len(stores))
	}
}
