package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownType is returned when the provider's primary category code has no
// entry in the type table. Callers should leave the transaction uncategorized
// rather than fail the batch.
var ErrUnknownType = errors.New("unknown primary category code")

// Store is the slice of the entity store the resolver needs: an exact-match
// lookup on the (name, type) identity and a staged insert.
type Store interface {
	FindCategoryByNameAndType(ctx context.Context, name string, t Type) (*Category, error)
	InsertCategory(c *Category)
}

// Resolver maps the provider's (detailed, primary) category codes onto
// canonical categories, creating missing ones on first sight. Resolution is
// idempotent with respect to the (name, type) identity; the caller is
// responsible for serializing concurrent passes over the same store.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the canonical category for the given provider codes.
// The primary code must map to one of the 16 category types; otherwise
// ErrUnknownType is returned. The detailed code is looked up in the known-code
// table, falling back to a name derived from the code itself. An existing
// category with the resolved (name, type) is returned as-is; otherwise a new
// one is created with a zero budget and staged for the next commit.
func (r *Resolver) Resolve(ctx context.Context, detailed, primary string) (*Category, error) {
	t, ok := TypeFromPrimary(primary)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, primary)
	}

	name, ok := NameFromDetailed(detailed)
	if !ok {
		name = deriveName(detailed, primary)
	}

	existing, err := r.store.FindCategoryByNameAndType(ctx, name, t)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category %q/%q: %w", name, t, err)
	}
	if existing != nil {
		return existing, nil
	}

	c := &Category{
		ID:     uuid.NewString(),
		Name:   name,
		Type:   t,
		Budget: 0,
	}
	r.store.InsertCategory(c)
	return c, nil
}

// deriveName builds a display name for a detailed code missing from the known
// table: strip the primary-code prefix and humanize the remaining underscored
// tokens ("SHOPPING_WIDGETS" with primary "SHOPPING" becomes "Widgets").
func deriveName(detailed, primary string) string {
	trimmed := strings.TrimPrefix(detailed, primary+"_")

	tokens := strings.Split(trimmed, "_")
	for i, tok := range tokens {
		tokens[i] = capitalize(tok)
	}
	return strings.Join(tokens, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
