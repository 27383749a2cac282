package dao

import (
	"context"
	"database/sql"
	"strings"

	"yu-marketplace-backend/model"
)

// Sort vocabulary accepted by ListQuery. Every ordering carries
// id ASC as secondary key so equal rows come back in a stable order.
const (
	SortNewest      = "newest"
	SortPriceAsc    = "price_asc"
	SortPriceDesc   = "price_desc"
	SortCategoryAsc = "category_asc"
)

// ListQuery is the shared predicate for List and Count: both must see
// the same filter so the page arithmetic stays consistent.
type ListQuery struct {
	Category string // exact match, case-insensitive
	Search   string // substring over item name OR seller username, case-insensitive
	Sort     string
	Limit    int
	Offset   int
}

func (q ListQuery) where() (string, []any) {
	var clauses []string
	var args []any
	if q.Category != "" {
		clauses = append(clauses, "LOWER(i.category) = LOWER(?)")
		args = append(args, q.Category)
	}
	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		clauses = append(clauses, "(LOWER(i.name) LIKE ? OR LOWER(COALESCE(u.username, '')) LIKE ?)")
		args = append(args, like, like)
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (q ListQuery) orderBy() string {
	switch q.Sort {
	case SortPriceAsc:
		return " ORDER BY i.price ASC, i.id ASC"
	case SortPriceDesc:
		return " ORDER BY i.price DESC, i.id ASC"
	case SortCategoryAsc:
		return " ORDER BY i.category ASC, i.id ASC"
	default:
		return " ORDER BY i.created_at DESC, i.id ASC"
	}
}

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `i.id, i.name, i.price, i.category, i.image_url, i.seller_id, COALESCE(u.username, ''), i.location, i.description, i.created_at`

func (r *ItemRepository) Insert(ctx context.Context, item *model.Item) error {
	query := `INSERT INTO items (id, name, price, category, image_url, seller_id, location, description, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.Price, item.Category, item.ImageURL, item.SellerID, item.Location, item.Description, item.CreatedAt)
	return err
}

func (r *ItemRepository) Update(ctx context.Context, item *model.Item) error {
	query := `UPDATE items SET name = ?, price = ?, category = ?, image_url = ?, location = ?, description = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, item.Name, item.Price, item.Category, item.ImageURL, item.Location, item.Description, item.ID)
	return err
}

// Delete removes the listing only. Messages referencing it stay in
// place; the inbox skips them once the item join stops resolving.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	return err
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items i LEFT JOIN users u ON i.seller_id = u.id WHERE i.id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var item model.Item
	if err := scanItem(row, &item); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) List(ctx context.Context, q ListQuery) ([]model.Item, error) {
	where, args := q.where()
	query := `SELECT ` + itemColumns + ` FROM items i LEFT JOIN users u ON i.seller_id = u.id` + where + q.orderBy() + ` LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// Count shares the List predicate so total_pages matches what List
// would actually return.
func (r *ItemRepository) Count(ctx context.Context, q ListQuery) (int, error) {
	where, args := q.where()
	query := `SELECT COUNT(*) FROM items i LEFT JOIN users u ON i.seller_id = u.id` + where

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ItemRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items i LEFT JOIN users u ON i.seller_id = u.id WHERE i.seller_id = ? ORDER BY i.created_at DESC, i.id ASC`
	rows, err := r.db.QueryContext(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner, item *model.Item) error {
	var imageURL, location, description sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.Price, &item.Category, &imageURL, &item.SellerID, &item.SellerName, &location, &description, &item.CreatedAt)
	if err != nil {
		return err
	}
	item.ImageURL = imageURL.String
	item.Location = location.String
	item.Description = description.String
	return nil
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := scanItem(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
