package repository

import (
	"context"
	"database/sql"

	"github.com/evharten/workshop-booking/internal/model"
)

// CategoryRepo provides CRUD operations for workshop categories.  Slug
// uniqueness is backed by a unique index; callers generate candidate slugs
// and probe with SlugExists before inserting.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo returns a new CategoryRepo bound to the given database.
func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `id, name, slug, description, image_url, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }, c *model.Category) error {
	return row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts a new category and populates the generated id and
// timestamps on the provided record.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	const q = `INSERT INTO categories (name, slug, description, image_url) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Slug, c.Description, c.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT ` + categoryCols + ` FROM categories WHERE id = ?`
	return scanCategory(r.db.QueryRowContext(ctx, sel, c.ID), c)
}

// GetByID returns the category with the given id or ErrCategoryNotFound.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (model.Category, error) {
	const q = `SELECT ` + categoryCols + ` FROM categories WHERE id = ?`
	var c model.Category
	if err := scanCategory(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
		if err == sql.ErrNoRows {
			return model.Category{}, ErrCategoryNotFound
		}
		return model.Category{}, err
	}
	return c, nil
}

// GetBySlug returns the category with the given slug or ErrCategoryNotFound.
func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (model.Category, error) {
	const q = `SELECT ` + categoryCols + ` FROM categories WHERE slug = ?`
	var c model.Category
	if err := scanCategory(r.db.QueryRowContext(ctx, q, slug), &c); err != nil {
		if err == sql.ErrNoRows {
			return model.Category{}, ErrCategoryNotFound
		}
		return model.Category{}, err
	}
	return c, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	const q = `SELECT ` + categoryCols + ` FROM categories ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a category.  Returns
// ErrCategoryNotFound when the id does not exist.
func (r *CategoryRepo) Update(ctx context.Context, c *model.Category) error {
	const q = `UPDATE categories SET name = ?, slug = ?, description = ?, image_url = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Slug, c.Description, c.ImageURL, c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op update;
		// probe existence to disambiguate.
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a category.  It refuses with ErrConflict while any session
// still references the category.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	var sessions int
	const cnt = `SELECT COUNT(*) FROM sessions WHERE category_id = ?`
	if err := r.db.QueryRowContext(ctx, cnt, id).Scan(&sessions); err != nil {
		return err
	}
	if sessions > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM categories WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// SlugExists reports whether any category already uses the given slug,
// optionally ignoring one id (the category being edited).
func (r *CategoryRepo) SlugExists(ctx context.Context, slug string, ignoreID uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM categories WHERE slug = ? AND id <> ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, slug, ignoreID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
