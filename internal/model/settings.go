package model

import "time"

// Settings is the single site-wide configuration record (row id=1).  It is
// edited only through the admin API and read on every public settings
// request.  There is no process-wide cache beyond the request-scoped read;
// the response cache middleware absorbs repeated reads.
type Settings struct {
	ID             uint64    `json:"id"`
	LogoURL        *string   `json:"logo_url"`
	Email          string    `json:"email"`
	Telephone      string    `json:"telephone"`
	Address        string    `json:"address"`
	KVK            string    `json:"kvk"`
	IBAN           string    `json:"iban"`
	FacebookURL    string    `json:"facebook_url"`
	InstagramURL   string    `json:"instagram_url"`
	YoutubeURL     string    `json:"youtube_url"`
	ContactLabel   string    `json:"contact_label"`
	ContactURL     string    `json:"contact_url"`
	PrivacyLabel   string    `json:"privacy_label"`
	PrivacyURL     string    `json:"privacy_url"`
	PrivacyContent *string   `json:"privacy_content"`
	RefundLabel    string    `json:"refund_label"`
	RefundURL      string    `json:"refund_url"`
	RefundContent  *string   `json:"refund_content"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SliderImage is one image of the ordered home-page slider, owned by the
// settings record.
type SliderImage struct {
	ID         uint64 `json:"id"`
	SettingsID uint64 `json:"-"`
	URL        string `json:"url"`
	Position   int    `json:"position"`
}
