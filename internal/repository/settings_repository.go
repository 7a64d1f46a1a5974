package repository

import (
	"context"
	"database/sql"

	"github.com/evharten/workshop-booking/internal/model"
)

// SettingsRepo reads and writes the singleton site settings row (id=1) and
// its ordered slider images.  The row is seeded by the initial migration,
// so Get never has to create it.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo returns a new SettingsRepo bound to the given database.
func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// settingsID is the fixed primary key of the singleton row.
const settingsID = 1

// Get loads the settings row.
func (r *SettingsRepo) Get(ctx context.Context) (model.Settings, error) {
	const q = `SELECT id, logo_url, email, telephone, address, kvk, iban,
		facebook_url, instagram_url, youtube_url,
		contact_label, contact_url,
		privacy_label, privacy_url, privacy_content,
		refund_label, refund_url, refund_content, updated_at
		FROM site_settings WHERE id = ?`
	var s model.Settings
	err := r.db.QueryRowContext(ctx, q, settingsID).Scan(
		&s.ID, &s.LogoURL, &s.Email, &s.Telephone, &s.Address, &s.KVK, &s.IBAN,
		&s.FacebookURL, &s.InstagramURL, &s.YoutubeURL,
		&s.ContactLabel, &s.ContactURL,
		&s.PrivacyLabel, &s.PrivacyURL, &s.PrivacyContent,
		&s.RefundLabel, &s.RefundURL, &s.RefundContent, &s.UpdatedAt,
	)
	if err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

// Save rewrites the settings row.
func (r *SettingsRepo) Save(ctx context.Context, s *model.Settings) error {
	const q = `UPDATE site_settings SET logo_url = ?, email = ?, telephone = ?, address = ?, kvk = ?, iban = ?,
		facebook_url = ?, instagram_url = ?, youtube_url = ?,
		contact_label = ?, contact_url = ?,
		privacy_label = ?, privacy_url = ?, privacy_content = ?,
		refund_label = ?, refund_url = ?, refund_content = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		s.LogoURL, s.Email, s.Telephone, s.Address, s.KVK, s.IBAN,
		s.FacebookURL, s.InstagramURL, s.YoutubeURL,
		s.ContactLabel, s.ContactURL,
		s.PrivacyLabel, s.PrivacyURL, s.PrivacyContent,
		s.RefundLabel, s.RefundURL, s.RefundContent,
		settingsID,
	)
	return err
}

// SliderImages returns the slider images ordered by position.
func (r *SettingsRepo) SliderImages(ctx context.Context) ([]model.SliderImage, error) {
	const q = `SELECT id, settings_id, url, position FROM slider_images
		WHERE settings_id = ? ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, q, settingsID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.SliderImage
	for rows.Next() {
		var img model.SliderImage
		if err := rows.Scan(&img.ID, &img.SettingsID, &img.URL, &img.Position); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

// ReplaceSliderImages swaps the full ordered image list in one transaction;
// positions are assigned from the slice order.
func (r *SettingsRepo) ReplaceSliderImages(ctx context.Context, urls []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM slider_images WHERE settings_id = ?`, settingsID); err != nil {
		return err
	}
	const ins = `INSERT INTO slider_images (settings_id, url, position) VALUES (?, ?, ?)`
	for i, u := range urls {
		if _, err := tx.ExecContext(ctx, ins, settingsID, u, i); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
