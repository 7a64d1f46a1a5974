package model

import "time"

// Category is a type of workshop offered on the site (e.g. a craft theme).
// Sessions reference a category; a category cannot be deleted while any
// session still points at it.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name, also the source of the slug.
//  Slug        – URL-safe unique identifier derived from the name.
//  Description – sanitized HTML description (nullable).
//  ImageURL    – cover image URL (nullable).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Category struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
