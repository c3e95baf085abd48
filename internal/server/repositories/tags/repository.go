// Package tags persists the tag set of each secret record.
package tags

import "context"

type Repository interface {
	// Add inserts one tag and reports whether a row was actually added;
	// an existing tag is left alone.
	Add(ctx context.Context, secretID, content string) (bool, error)
	// Remove deletes one tag and reports whether it existed.
	Remove(ctx context.Context, secretID, content string) (bool, error)
	DeleteAll(ctx context.Context, secretID string) error
	ListBySecret(ctx context.Context, secretID string) ([]string, error)
	// ListByOwner returns the tags of every record owned by ownerID, keyed
	// by secret id.
	ListByOwner(ctx context.Context, ownerID string) (map[string][]string, error)
}
