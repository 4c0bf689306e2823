package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matheob255/life-hub/internal/core"

	_ "modernc.org/sqlite"
)

// timeLayout is how timestamps are persisted. Nanosecond precision keeps
// UpdatedAt strictly increasing across back-to-back toggles.
const timeLayout = time.RFC3339Nano

// SQLiteStore is the durable Store implementation.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the database at dbPath,
// applies pragmas and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// WAL for concurrent reads; foreign_keys must be on for the cascade
	// delete policy to hold.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// mapWriteErr translates driver errors into the store taxonomy.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "FOREIGN KEY constraint") {
		return fmt.Errorf("%w: %v", core.ErrConstraint, err)
	}
	return err
}

func (s *SQLiteStore) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return core.Category{}, core.ErrEmptyName
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, icon, color, display_order, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.Name, c.Icon, c.Color, c.DisplayOrder, c.CreatedAt.Format(timeLayout))
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", mapWriteErr(err))
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("category insert id: %w", err)
	}

	slog.InfoContext(ctx, "Category created", "id", c.ID, "name", c.Name)
	return c, nil
}

func (s *SQLiteStore) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, icon, color, display_order, created_at
		FROM categories ORDER BY display_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.DisplayOrder, &createdAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *SQLiteStore) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", mapWriteErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	slog.InfoContext(ctx, "Category deleted", "id", id)
	return nil
}

func (s *SQLiteStore) SubcategoryCounts(ctx context.Context) (map[int64]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, COUNT(*) FROM subcategories GROUP BY category_id
	`)
	if err != nil {
		return nil, fmt.Errorf("count subcategories: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan subcategory count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (s *SQLiteStore) CreateSubcategory(ctx context.Context, sub core.Subcategory) (core.Subcategory, error) {
	if strings.TrimSpace(sub.Name) == "" {
		return core.Subcategory{}, core.ErrEmptyName
	}
	if _, err := core.ParseMode(string(sub.Mode)); err != nil {
		return core.Subcategory{}, err
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	columns, err := encodeColumns(sub.Columns)
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("encode column spec: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO subcategories (category_id, name, icon, mode, columns, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sub.CategoryID, sub.Name, sub.Icon, string(sub.Mode), columns, sub.CreatedAt.Format(timeLayout))
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("insert subcategory: %w", mapWriteErr(err))
	}
	sub.ID, err = res.LastInsertId()
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("subcategory insert id: %w", err)
	}

	slog.InfoContext(ctx, "Subcategory created",
		"id", sub.ID, "category_id", sub.CategoryID, "name", sub.Name, "mode", sub.Mode)
	return sub, nil
}

const subcategoryCols = `id, category_id, name, icon, mode, columns, created_at`

func scanSubcategory(scanner interface{ Scan(dest ...any) error }) (core.Subcategory, error) {
	var sub core.Subcategory
	var mode, createdAt string
	var columns sql.NullString
	err := scanner.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.Icon, &mode, &columns, &createdAt)
	if err != nil {
		return core.Subcategory{}, err
	}
	sub.Mode = core.Mode(mode)
	sub.Columns = decodeColumns(columns.String)
	sub.CreatedAt = parseTime(createdAt)
	return sub, nil
}

func (s *SQLiteStore) GetSubcategory(ctx context.Context, id int64) (core.Subcategory, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+subcategoryCols+` FROM subcategories WHERE id = ?`, id)
	sub, err := scanSubcategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Subcategory{}, fmt.Errorf("subcategory %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("get subcategory: %w", err)
	}
	return sub, nil
}

func (s *SQLiteStore) ListSubcategories(ctx context.Context, categoryID int64) ([]core.Subcategory, error) {
	return s.querySubcategories(ctx,
		`SELECT `+subcategoryCols+` FROM subcategories WHERE category_id = ? ORDER BY id`, categoryID)
}

func (s *SQLiteStore) ListSubcategoriesByMode(ctx context.Context, mode core.Mode) ([]core.Subcategory, error) {
	return s.querySubcategories(ctx,
		`SELECT `+subcategoryCols+` FROM subcategories WHERE mode = ? ORDER BY id`, string(mode))
}

func (s *SQLiteStore) querySubcategories(ctx context.Context, query string, arg any) ([]core.Subcategory, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var subs []core.Subcategory
	for rows.Next() {
		sub, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *SQLiteStore) DeleteSubcategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subcategories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", mapWriteErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("subcategory %d: %w", id, core.ErrNotFound)
	}
	slog.InfoContext(ctx, "Subcategory deleted", "id", id)
	return nil
}

func (s *SQLiteStore) CreateItem(ctx context.Context, item core.Item) (core.Item, error) {
	if strings.TrimSpace(item.Title) == "" {
		return core.Item{}, core.ErrEmptyTitle
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO items (subcategory_id, title, description, value, date,
		                   completed, urgency, transaction_type, amount,
		                   created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.SubcategoryID, item.Title,
		nullable(item.Description), nullable(item.Value), nullable(item.Date),
		boolToInt(item.Completed), nullable(string(item.Urgency)),
		nullable(string(item.Transaction)), nullable(item.Amount),
		item.CreatedAt.Format(timeLayout), item.UpdatedAt.Format(timeLayout))
	if err != nil {
		return core.Item{}, fmt.Errorf("insert item: %w", mapWriteErr(err))
	}
	item.ID, err = res.LastInsertId()
	if err != nil {
		return core.Item{}, fmt.Errorf("item insert id: %w", err)
	}

	slog.InfoContext(ctx, "Item created",
		"id", item.ID, "subcategory_id", item.SubcategoryID, "title", item.Title)
	return item, nil
}

const itemCols = `id, subcategory_id, title, description, value, date,
	completed, urgency, transaction_type, amount, created_at, updated_at`

func scanItem(scanner interface{ Scan(dest ...any) error }) (core.Item, error) {
	var it core.Item
	var description, value, date, urgency, txType, amount sql.NullString
	var completed int
	var createdAt, updatedAt string
	err := scanner.Scan(&it.ID, &it.SubcategoryID, &it.Title,
		&description, &value, &date, &completed, &urgency, &txType, &amount,
		&createdAt, &updatedAt)
	if err != nil {
		return core.Item{}, err
	}
	it.Description = description.String
	it.Value = value.String
	it.Date = date.String
	it.Completed = completed != 0
	it.Urgency = core.Urgency(urgency.String)
	it.Transaction = core.TransactionType(txType.String)
	it.Amount = amount.String
	it.CreatedAt = parseTime(createdAt)
	it.UpdatedAt = parseTime(updatedAt)
	return it, nil
}

func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (core.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemCols+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Item{}, fmt.Errorf("item %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Item{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func (s *SQLiteStore) ListItems(ctx context.Context, subcategoryID int64) ([]core.Item, error) {
	return s.queryItems(ctx,
		`SELECT `+itemCols+` FROM items WHERE subcategory_id = ? ORDER BY id`, subcategoryID)
}

func (s *SQLiteStore) ListItemsByValue(ctx context.Context, subcategoryID int64, value string) ([]core.Item, error) {
	return s.queryItems(ctx,
		`SELECT `+itemCols+` FROM items WHERE subcategory_id = ? AND value = ? ORDER BY id`,
		subcategoryID, value)
}

func (s *SQLiteStore) queryItems(ctx context.Context, query string, args ...any) ([]core.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []core.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) UpdateItem(ctx context.Context, id int64, patch core.ItemPatch) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().Format(timeLayout)}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return core.ErrEmptyTitle
		}
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullable(*patch.Description))
	}
	if patch.Value != nil {
		sets = append(sets, "value = ?")
		args = append(args, nullable(*patch.Value))
	}
	if patch.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, nullable(*patch.Date))
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolToInt(*patch.Completed))
	}
	if patch.Urgency != nil {
		sets = append(sets, "urgency = ?")
		args = append(args, nullable(string(*patch.Urgency)))
	}
	if patch.Transaction != nil {
		sets = append(sets, "transaction_type = ?")
		args = append(args, nullable(string(*patch.Transaction)))
	}
	if patch.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, nullable(*patch.Amount))
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update item: %w", mapWriteErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("item %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", mapWriteErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("item %d: %w", id, core.ErrNotFound)
	}
	slog.InfoContext(ctx, "Item deleted", "id", id)
	return nil
}

func encodeColumns(cols []core.Column) (sql.NullString, error) {
	if len(cols) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(cols)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// decodeColumns is total: a malformed stored spec degrades to no spec, it
// never blocks reading the subcategory.
func decodeColumns(raw string) []core.Column {
	if raw == "" {
		return nil
	}
	var cols []core.Column
	if err := json.Unmarshal([]byte(raw), &cols); err != nil {
		return nil
	}
	return cols
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
