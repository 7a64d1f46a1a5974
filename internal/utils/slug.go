package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
)

// maxSlugAttempts bounds the uniqueness retry loop.  Category names repeat
// rarely, so hitting the cap means something is wrong and we fail instead
// of probing forever.
const maxSlugAttempts = 50

// ErrSlugExhausted is returned when no free slug could be found within
// maxSlugAttempts tries.
var ErrSlugExhausted = errors.New("could not generate a unique slug")

// UniqueSlug derives a URL-safe slug from name and appends a numeric suffix
// ("-2", "-3", ...) until exists reports the candidate as free.  The exists
// callback is typically CategoryRepo.SlugExists.
func UniqueSlug(ctx context.Context, name string, exists func(ctx context.Context, candidate string) (bool, error)) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "category"
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", ErrSlugExhausted
}
