package postgres

import (
	"context"
	"fmt"

	"finwise/internal/domain/plaid"
)

type ItemRepository struct {
	db *DB
}

var _ plaid.ItemRepository = (*ItemRepository)(nil)

func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, user_id, bank_name, access_token, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*plaid.Item, error) {
	var it plaid.Item
	err := row.Scan(&it.ID, &it.UserID, &it.BankName, &it.AccessToken, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// FindOrCreate upserts the item. Re-linking the same institution refreshes
// the stored access token and bank name.
func (r *ItemRepository) FindOrCreate(ctx context.Context, id string, userID int64, bankName, accessToken string) (*plaid.Item, error) {
	query := `
		INSERT INTO items (id, user_id, bank_name, access_token)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
			SET bank_name = EXCLUDED.bank_name,
			    access_token = EXCLUDED.access_token,
			    updated_at = now()
		RETURNING ` + itemColumns

	it, err := scanItem(r.db.QueryRowContext(ctx, query, id, userID, bankName, accessToken))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert item: %w", err)
	}
	return it, nil
}

func (r *ItemRepository) ListByUserID(ctx context.Context, userID int64) ([]*plaid.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*plaid.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
