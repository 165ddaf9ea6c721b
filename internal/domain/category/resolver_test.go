package category

import (
	"context"
	"errors"
	"testing"
)

// fakeStore is an in-test category store with the same find-sees-staged
// behavior as the real entity stores.
type fakeStore struct {
	staged  []*Category
	FindErr error
}

func (f *fakeStore) FindCategoryByNameAndType(ctx context.Context, name string, t Type) (*Category, error) {
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	for _, c := range f.staged {
		if c.Name == name && c.Type == t {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertCategory(c *Category) {
	f.staged = append(f.staged, c)
}

func TestResolveKnownDetailedCode(t *testing.T) {
	st := &fakeStore{}
	r := NewResolver(st)

	c, err := r.Resolve(context.Background(), "FOOD_AND_DRINK_GROCERIES", "FOOD_AND_DRINK")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if c.Name != "Groceries" {
		t.Errorf("Name = %q, want %q", c.Name, "Groceries")
	}
	if c.Type != TypeFoodAndDrink {
		t.Errorf("Type = %q, want %q", c.Type, TypeFoodAndDrink)
	}
	if c.ID == "" {
		t.Error("new category should get a generated id")
	}
	if c.Budget != 0 {
		t.Errorf("Budget = %v, want 0", c.Budget)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	st := &fakeStore{}
	r := NewResolver(st)
	ctx := context.Background()

	first, err := r.Resolve(ctx, "FOOD_AND_DRINK_GROCERIES", "FOOD_AND_DRINK")
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	second, err := r.Resolve(ctx, "FOOD_AND_DRINK_GROCERIES", "FOOD_AND_DRINK")
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("ids differ: %s vs %s, want the existing category reused", first.ID, second.ID)
	}
	if len(st.staged) != 1 {
		t.Errorf("staged inserts = %d, want 1", len(st.staged))
	}
}

func TestResolveUnknownPrimary(t *testing.T) {
	r := NewResolver(&fakeStore{})

	_, err := r.Resolve(context.Background(), "WHATEVER_DETAILED", "WHATEVER")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("error = %v, want ErrUnknownType", err)
	}
}

func TestResolveDerivedName(t *testing.T) {
	tests := []struct {
		name     string
		detailed string
		primary  string
		want     string
	}{
		{"unknown detailed under known primary", "FOOD_AND_DRINK_BUBBLE_TEA", "FOOD_AND_DRINK", "Bubble Tea"},
		{"detailed without primary prefix", "SOMETHING_ELSE", "TRAVEL", "Something Else"},
		{"single token", "TRAVEL_SUBMARINES", "TRAVEL", "Submarines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewResolver(&fakeStore{}).Resolve(context.Background(), tt.detailed, tt.primary)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if c.Name != tt.want {
				t.Errorf("Name = %q, want %q", c.Name, tt.want)
			}
		})
	}
}

func TestResolveFindFailure(t *testing.T) {
	st := &fakeStore{FindErr: errors.New("connection lost")}
	_, err := NewResolver(st).Resolve(context.Background(), "FOOD_AND_DRINK_GROCERIES", "FOOD_AND_DRINK")
	if err == nil {
		t.Fatal("expected error when the store lookup fails")
	}
	if errors.Is(err, ErrUnknownType) {
		t.Error("store failure must not look like an unknown category code")
	}
}

func TestTypeFromPrimaryCoversAllTypes(t *testing.T) {
	// Every declared type must be reachable from some primary code.
	seen := make(map[Type]bool)
	for primary := range primaryTypes {
		typ, ok := TypeFromPrimary(primary)
		if !ok {
			t.Fatalf("TypeFromPrimary(%q) unexpectedly unknown", primary)
		}
		seen[typ] = true
	}
	for _, typ := range Types() {
		if !seen[typ] {
			t.Errorf("type %q has no primary code mapping", typ)
		}
	}
}
